// Command assess runs a single risk assessment and prints the result as JSON.
// With no flags it geolocates by IP; -city/-country select a place manually.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"io"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/time/rate"

	"github.com/epidemicwatch/risk-service/internal/adapter/geocode"
	"github.com/epidemicwatch/risk-service/internal/adapter/geoip"
	"github.com/epidemicwatch/risk-service/internal/adapter/openaq"
	"github.com/epidemicwatch/risk-service/internal/adapter/openmeteo"
	"github.com/epidemicwatch/risk-service/internal/config"
	"github.com/epidemicwatch/risk-service/internal/observability"
	"github.com/epidemicwatch/risk-service/internal/predict"
)

func main() {
	city := flag.String("city", "", "city to assess (geolocates by IP when empty)")
	country := flag.String("country", "", "country for the city lookup")
	verbose := flag.Bool("v", false, "log upstream activity to stderr")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if *verbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	metrics := observability.NewMetrics()

	newLimiter := func() *rate.Limiter {
		return rate.NewLimiter(rate.Limit(cfg.UpstreamRPS), cfg.UpstreamBurst)
	}

	predictor := predict.New(
		geoip.NewClient(cfg.GeoIPBaseURL, cfg.UpstreamTimeout, newLimiter(), metrics, logger),
		geocode.NewClient(cfg.GeocodeBaseURL, cfg.UpstreamTimeout, newLimiter(), metrics, logger),
		openmeteo.NewClient(cfg.WeatherBaseURL, cfg.UpstreamTimeout, newLimiter(), metrics, logger),
		openaq.NewClient(cfg.AirQualityBaseURL, cfg.UpstreamTimeout, newLimiter(), metrics, logger),
		cfg.EpidemicRegions,
		logger,
		metrics,
	)

	prediction := predictor.Assess(context.Background(), predict.Query{City: *city, Country: *country})

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(prediction); err != nil {
		slog.Error("encode result", "error", err)
		os.Exit(1)
	}
}

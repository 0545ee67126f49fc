package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/time/rate"

	"github.com/epidemicwatch/risk-service/internal/adapter/diseasesh"
	"github.com/epidemicwatch/risk-service/internal/adapter/geocode"
	"github.com/epidemicwatch/risk-service/internal/adapter/geoip"
	"github.com/epidemicwatch/risk-service/internal/adapter/httpapi"
	kafkaadapter "github.com/epidemicwatch/risk-service/internal/adapter/kafka"
	"github.com/epidemicwatch/risk-service/internal/adapter/openaq"
	"github.com/epidemicwatch/risk-service/internal/adapter/openmeteo"
	"github.com/epidemicwatch/risk-service/internal/alert"
	"github.com/epidemicwatch/risk-service/internal/config"
	"github.com/epidemicwatch/risk-service/internal/observability"
	"github.com/epidemicwatch/risk-service/internal/poller"
	"github.com/epidemicwatch/risk-service/internal/predict"
)

func main() {
	// Optional .env for local development; real deployments set the
	// environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	store := alert.NewStore(cfg.AlertStorePath, logger)
	logger.Info("alert store opened", "path", cfg.AlertStorePath, "alerts", store.Len())

	newLimiter := func() *rate.Limiter {
		return rate.NewLimiter(rate.Limit(cfg.UpstreamRPS), cfg.UpstreamBurst)
	}

	locator := geoip.NewClient(cfg.GeoIPBaseURL, cfg.UpstreamTimeout, newLimiter(), metrics, logger)
	geocoder := geocode.NewClient(cfg.GeocodeBaseURL, cfg.UpstreamTimeout, newLimiter(), metrics, logger)
	weather := openmeteo.NewClient(cfg.WeatherBaseURL, cfg.UpstreamTimeout, newLimiter(), metrics, logger)
	air := openaq.NewClient(cfg.AirQualityBaseURL, cfg.UpstreamTimeout, newLimiter(), metrics, logger)
	caseFeed := diseasesh.NewClient(cfg.CaseFeedBaseURL, cfg.UpstreamTimeout, newLimiter(), metrics, logger)

	predictor := predict.New(locator, geocoder, weather, air, cfg.EpidemicRegions, logger, metrics)

	// Alert export is feature-flagged via KAFKA_ENABLED.
	var sink poller.AlertSink
	var kafkaWriter *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		kafkaWriter = kafkaadapter.NewWriter(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
		sink = kafkaWriter
		logger.Info("kafka alert export enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	} else {
		logger.Info("kafka alert export disabled")
	}

	p := poller.New(caseFeed, store, sink, cfg.AlertThresholds, cfg.PollInterval, logger, metrics)

	creds := httpapi.Credentials{Username: cfg.AdminUser, Password: cfg.AdminPassword}
	srv := httpapi.NewServer(cfg.HTTPAddr, predictor, p, store, p, creds, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := p.Start(ctx); err != nil {
		logger.Error("poller start error", "error", err)
		os.Exit(1)
	}

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	p.Stop()
	if kafkaWriter != nil {
		if err := kafkaWriter.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}

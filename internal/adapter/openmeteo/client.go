// Package openmeteo fetches current weather conditions from the Open-Meteo
// forecast API.
package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/epidemicwatch/risk-service/internal/domain"
	"github.com/epidemicwatch/risk-service/internal/observability"
)

// Client implements predict.WeatherSource.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a weather client.
func NewClient(baseURL string, timeout time.Duration, limiter *rate.Limiter, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    limiter,
		metrics:    metrics,
		logger:     logger,
	}
}

// response fields are pointers so missing upstream values stay absent and
// the reading normalizer's defaults apply.
type response struct {
	Current struct {
		Temperature *float64 `json:"temperature_2m"`
		Humidity    *float64 `json:"relative_humidity_2m"`
		WindSpeed   *float64 `json:"wind_speed_10m"`
		CloudCover  *float64 `json:"cloud_cover"`
	} `json:"current"`
}

// CurrentWeather fetches current conditions at the given coordinates.
func (c *Client) CurrentWeather(ctx context.Context, lat, lon float64) (domain.EnvironmentReading, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return domain.EnvironmentReading{}, fmt.Errorf("rate limit wait: %w", err)
	}

	params := url.Values{
		"latitude":      {strconv.FormatFloat(lat, 'f', 4, 64)},
		"longitude":     {strconv.FormatFloat(lon, 'f', 4, 64)},
		"current":       {"temperature_2m,relative_humidity_2m,wind_speed_10m,cloud_cover"},
		"forecast_days": {"1"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/forecast?"+params.Encode(), nil)
	if err != nil {
		return domain.EnvironmentReading{}, fmt.Errorf("create request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.UpstreamDuration.WithLabelValues("weather").Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.UpstreamRequests.WithLabelValues("weather", "error").Inc()
		return domain.EnvironmentReading{}, fmt.Errorf("weather request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.metrics.UpstreamRequests.WithLabelValues("weather", "error").Inc()
		return domain.EnvironmentReading{}, fmt.Errorf("weather API error: status %d: %s", resp.StatusCode, body)
	}

	var r response
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		c.metrics.UpstreamRequests.WithLabelValues("weather", "error").Inc()
		return domain.EnvironmentReading{}, fmt.Errorf("decode response: %w", err)
	}

	c.metrics.UpstreamRequests.WithLabelValues("weather", "success").Inc()
	return domain.EnvironmentReading{
		TemperatureC: r.Current.Temperature,
		HumidityPct:  r.Current.Humidity,
		WindSpeedKmh: r.Current.WindSpeed,
		CloudPct:     r.Current.CloudCover,
	}, nil
}

// Package geoip resolves the caller's approximate location from an
// ipapi.co-style geolocation-by-IP endpoint.
package geoip

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/epidemicwatch/risk-service/internal/observability"
	"github.com/epidemicwatch/risk-service/internal/predict"
)

// Client implements predict.LocationSource.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a geolocation client.
func NewClient(baseURL string, timeout time.Duration, limiter *rate.Limiter, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    limiter,
		metrics:    metrics,
		logger:     logger,
	}
}

type response struct {
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	City        string  `json:"city"`
	Region      string  `json:"region"`
	CountryName string  `json:"country_name"`
}

// Locate resolves the service's public IP to a location.
func (c *Client) Locate(ctx context.Context) (predict.Location, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return predict.Location{}, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/json/", nil)
	if err != nil {
		return predict.Location{}, fmt.Errorf("create request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.UpstreamDuration.WithLabelValues("geoip").Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.UpstreamRequests.WithLabelValues("geoip", "error").Inc()
		return predict.Location{}, fmt.Errorf("geoip request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.metrics.UpstreamRequests.WithLabelValues("geoip", "error").Inc()
		return predict.Location{}, fmt.Errorf("geoip API error: status %d: %s", resp.StatusCode, body)
	}

	var r response
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		c.metrics.UpstreamRequests.WithLabelValues("geoip", "error").Inc()
		return predict.Location{}, fmt.Errorf("decode response: %w", err)
	}

	c.metrics.UpstreamRequests.WithLabelValues("geoip", "success").Inc()
	return predict.Location{
		Latitude:  r.Latitude,
		Longitude: r.Longitude,
		City:      r.City,
		Region:    r.Region,
		Country:   r.CountryName,
	}, nil
}

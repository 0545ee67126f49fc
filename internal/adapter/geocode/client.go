// Package geocode converts manually entered city/country names to
// coordinates via a geocode.maps.co-style search endpoint.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/epidemicwatch/risk-service/internal/observability"
)

// ErrNoResults indicates the search returned no candidate places.
var ErrNoResults = errors.New("geocode: no results")

// Client implements predict.Geocoder.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a geocoding client.
func NewClient(baseURL string, timeout time.Duration, limiter *rate.Limiter, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    limiter,
		metrics:    metrics,
		logger:     logger,
	}
}

// result entries carry coordinates as strings in this API.
type result struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Geocode resolves "city, country" to coordinates, taking the first match.
func (c *Client) Geocode(ctx context.Context, city, country string) (float64, float64, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, 0, fmt.Errorf("rate limit wait: %w", err)
	}

	params := url.Values{
		"q":     {city + ", " + country},
		"limit": {"1"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return 0, 0, fmt.Errorf("create request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.UpstreamDuration.WithLabelValues("geocode").Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.UpstreamRequests.WithLabelValues("geocode", "error").Inc()
		return 0, 0, fmt.Errorf("geocode request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.metrics.UpstreamRequests.WithLabelValues("geocode", "error").Inc()
		return 0, 0, fmt.Errorf("geocode API error: status %d: %s", resp.StatusCode, body)
	}

	var results []result
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		c.metrics.UpstreamRequests.WithLabelValues("geocode", "error").Inc()
		return 0, 0, fmt.Errorf("decode response: %w", err)
	}

	if len(results) == 0 {
		c.metrics.UpstreamRequests.WithLabelValues("geocode", "fallback").Inc()
		return 0, 0, ErrNoResults
	}

	lat, errLat := strconv.ParseFloat(results[0].Lat, 64)
	lon, errLon := strconv.ParseFloat(results[0].Lon, 64)
	if errLat != nil || errLon != nil {
		c.metrics.UpstreamRequests.WithLabelValues("geocode", "error").Inc()
		return 0, 0, fmt.Errorf("geocode: malformed coordinates %q,%q", results[0].Lat, results[0].Lon)
	}

	c.metrics.UpstreamRequests.WithLabelValues("geocode", "success").Inc()
	return lat, lon, nil
}

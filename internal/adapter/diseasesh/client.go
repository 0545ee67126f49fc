// Package diseasesh fetches per-country case counts from a disease.sh-style
// feed for the auto-alert poller.
package diseasesh

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/epidemicwatch/risk-service/internal/alert"
	"github.com/epidemicwatch/risk-service/internal/observability"
)

// Client implements poller.CaseFeed.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a case-feed client.
func NewClient(baseURL string, timeout time.Duration, limiter *rate.Limiter, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    limiter,
		metrics:    metrics,
		logger:     logger,
	}
}

// Countries fetches the full per-country case-count feed.
func (c *Client) Countries(ctx context.Context) ([]alert.CountryStats, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v3/covid-19/countries", nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.UpstreamDuration.WithLabelValues("case_feed").Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.UpstreamRequests.WithLabelValues("case_feed", "error").Inc()
		return nil, fmt.Errorf("case feed request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.metrics.UpstreamRequests.WithLabelValues("case_feed", "error").Inc()
		return nil, fmt.Errorf("case feed API error: status %d: %s", resp.StatusCode, body)
	}

	var countries []alert.CountryStats
	if err := json.NewDecoder(resp.Body).Decode(&countries); err != nil {
		c.metrics.UpstreamRequests.WithLabelValues("case_feed", "error").Inc()
		return nil, fmt.Errorf("decode response: %w", err)
	}

	c.metrics.UpstreamRequests.WithLabelValues("case_feed", "success").Inc()
	return countries, nil
}

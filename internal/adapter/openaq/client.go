// Package openaq fetches nearest-station particulate measurements from an
// OpenAQ-style locations endpoint and converts them to a composite AQI.
package openaq

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

// searchRadiusMeters bounds the nearest-station lookup.
const searchRadiusMeters = 10000

// Client implements predict.AirQualitySource.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates an air-quality client.
func NewClient(baseURL string, timeout time.Duration, limiter *rate.Limiter, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    limiter,
		metrics:    metrics,
		logger:     logger,
	}
}

type measurement struct {
	Value float64 `json:"value"`
}

type parameter struct {
	Parameter string       `json:"parameter"`
	Latest    *measurement `json:"latest"`
	Averages  *measurement `json:"averages"`
}

type station struct {
	LastUpdated string      `json:"lastUpdated"`
	Parameters  []parameter `json:"parameters"`
}

type response struct {
	Results []station `json:"results"`
}

// noStationAirQuality is returned when no reporting station is within range
// or the nearest station carries no particulate readings.
func noStationAirQuality() domain.AirQuality {
	return domain.AirQuality{AQI: 35, PM25: 18, PM10: 25, Description: domain.AQIDescription(35)}
}

// Nearest fetches the closest station's pm2.5/pm10 readings and derives the
// composite AQI. A reachable API with no usable station is not an error; the
// documented substitute values are returned instead.
func (c *Client) Nearest(ctx context.Context, lat, lon float64) (domain.AirQuality, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return domain.AirQuality{}, fmt.Errorf("rate limit wait: %w", err)
	}

	coords := strconv.FormatFloat(lat, 'f', 4, 64) + "," + strconv.FormatFloat(lon, 'f', 4, 64)
	params := url.Values{
		"coordinates": {coords},
		"radius":      {strconv.Itoa(searchRadiusMeters)},
		"limit":       {"1"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v2/locations?"+params.Encode(), nil)
	if err != nil {
		return domain.AirQuality{}, fmt.Errorf("create request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.UpstreamDuration.WithLabelValues("air_quality").Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.UpstreamRequests.WithLabelValues("air_quality", "error").Inc()
		return domain.AirQuality{}, fmt.Errorf("air quality request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.metrics.UpstreamRequests.WithLabelValues("air_quality", "error").Inc()
		return domain.AirQuality{}, fmt.Errorf("air quality API error: status %d: %s", resp.StatusCode, body)
	}

	var r response
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		c.metrics.UpstreamRequests.WithLabelValues("air_quality", "error").Inc()
		return domain.AirQuality{}, fmt.Errorf("decode response: %w", err)
	}

	if len(r.Results) == 0 {
		c.metrics.UpstreamRequests.WithLabelValues("air_quality", "fallback").Inc()
		return noStationAirQuality(), nil
	}

	st := r.Results[0]
	pm25 := st.parameterValue("pm25")
	pm10 := st.parameterValue("pm10")

	aqi := domain.CompositeAQI(pm25, pm10)
	if aqi == 0 {
		// Station exists but reports no particulates.
		c.metrics.UpstreamRequests.WithLabelValues("air_quality", "fallback").Inc()
		return noStationAirQuality(), nil
	}

	c.metrics.UpstreamRequests.WithLabelValues("air_quality", "success").Inc()
	return domain.AirQuality{
		AQI:         aqi,
		PM25:        pm25,
		PM10:        pm10,
		Description: domain.AQIDescription(aqi),
	}, nil
}

// parameterValue returns the named parameter's reading. Stations that
// reported recently carry values under "latest"; stale stations only expose
// long-run "averages".
func (s station) parameterValue(name string) float64 {
	for _, p := range s.Parameters {
		if p.Parameter != name {
			continue
		}
		if s.LastUpdated != "" && p.Latest != nil {
			return p.Latest.Value
		}
		if p.Averages != nil {
			return p.Averages.Value
		}
	}
	return 0
}

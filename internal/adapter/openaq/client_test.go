package openaq_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/epidemicwatch/risk-service/internal/adapter/openaq"
	"github.com/epidemicwatch/risk-service/internal/observability"
)

func newTestClient(serverURL string) *openaq.Client {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return openaq.NewClient(serverURL, 5*time.Second, rate.NewLimiter(rate.Inf, 1), observability.NewMetricsForTesting(), logger)
}

func TestNearest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/locations", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "19.0760,72.8777", q.Get("coordinates"))
		assert.Equal(t, "10000", q.Get("radius"))
		assert.Equal(t, "1", q.Get("limit"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"results": [{
				"lastUpdated": "2026-08-29T10:00:00Z",
				"parameters": [
					{"parameter": "pm25", "latest": {"value": 40.0}, "averages": {"value": 55.0}},
					{"parameter": "pm10", "latest": {"value": 80.0}, "averages": {"value": 90.0}}
				]
			}]
		}`))
	}))
	defer server.Close()

	air, err := newTestClient(server.URL).Nearest(context.Background(), 19.0760, 72.8777)

	require.NoError(t, err)
	assert.Equal(t, 40.0, air.PM25)
	assert.Equal(t, 80.0, air.PM10)
	// pm2.5 at 40 maps to 111.5 on the EPA scale and dominates pm10 at 80.
	assert.InDelta(t, 111.5, air.AQI, 1e-9)
	assert.NotEmpty(t, air.Description)
}

func TestNearest_StaleStationUsesAverages(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"results": [{
				"lastUpdated": "",
				"parameters": [
					{"parameter": "pm25", "averages": {"value": 12.0}}
				]
			}]
		}`))
	}))
	defer server.Close()

	air, err := newTestClient(server.URL).Nearest(context.Background(), 19.0760, 72.8777)

	require.NoError(t, err)
	assert.Equal(t, 12.0, air.PM25)
	assert.Zero(t, air.PM10)
	assert.Greater(t, air.AQI, 0.0)
}

func TestNearest_NoStation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": []}`))
	}))
	defer server.Close()

	air, err := newTestClient(server.URL).Nearest(context.Background(), 19.0760, 72.8777)

	require.NoError(t, err)
	assert.Equal(t, 35.0, air.AQI)
	assert.Equal(t, 18.0, air.PM25)
	assert.Equal(t, 25.0, air.PM10)
}

func TestNearest_StationWithoutParticulates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"results": [{
				"lastUpdated": "2026-08-29T10:00:00Z",
				"parameters": [{"parameter": "no2", "latest": {"value": 30.0}}]
			}]
		}`))
	}))
	defer server.Close()

	air, err := newTestClient(server.URL).Nearest(context.Background(), 19.0760, 72.8777)

	require.NoError(t, err)
	assert.Equal(t, 35.0, air.AQI)
}

func TestNearest_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Nearest(context.Background(), 19.0760, 72.8777)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 403")
}

package diseasesh_test

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

	"github.com/epidemicwatch/risk-service/internal/adapter/diseasesh"
	"github.com/epidemicwatch/risk-service/internal/alert"
	"github.com/epidemicwatch/risk-service/internal/observability"
)

func newTestClient(serverURL string) *diseasesh.Client {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return diseasesh.NewClient(serverURL, 5*time.Second, rate.NewLimiter(rate.Inf, 1), observability.NewMetricsForTesting(), logger)
}

func TestCountries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3/covid-19/countries", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"country": "India", "cases": 1000, "todayCases": 200, "deaths": 30, "todayDeaths": 1},
			{"country": "France", "cases": 500, "todayCases": 5, "deaths": 10, "todayDeaths": 0}
		]`))
	}))
	defer server.Close()

	countries, err := newTestClient(server.URL).Countries(context.Background())

	require.NoError(t, err)
	require.Len(t, countries, 2)
	assert.Equal(t, alert.CountryStats{
		Country: "India", Cases: 1000, TodayCases: 200, Deaths: 30, TodayDeaths: 1,
	}, countries[0])
}

func TestCountries_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Countries(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 503")
}

func TestCountries_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not": "a list"}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Countries(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "alerts.json", cfg.AlertStorePath)
	assert.Equal(t, 30*time.Second, cfg.PollInterval)
	assert.Equal(t, "https://ipapi.co", cfg.GeoIPBaseURL)
	assert.Equal(t, "https://disease.sh", cfg.CaseFeedBaseURL)
	assert.Equal(t, []string{"india", "pakistan", "bangladesh", "thailand", "indonesia"}, cfg.EpidemicRegions)
	assert.Equal(t, "admin", cfg.AdminUser)
	assert.False(t, cfg.KafkaEnabled)
	assert.InDelta(t, 15.0, cfg.AlertThresholds.TriggerCaseRate, 1e-9)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("POLL_INTERVAL", "1m")
	t.Setenv("EPIDEMIC_REGIONS", "france, germany ,")
	t.Setenv("ALERT_HIGH_CASE_RATE", "40")
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.HTTPAddr)
	assert.Equal(t, time.Minute, cfg.PollInterval)
	assert.Equal(t, []string{"france", "germany"}, cfg.EpidemicRegions)
	assert.InDelta(t, 40.0, cfg.AlertThresholds.HighCaseRate, 1e-9)
	assert.True(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad poll interval", "POLL_INTERVAL", "not-a-duration"},
		{"negative shutdown timeout", "SHUTDOWN_TIMEOUT", "-5s"},
		{"poll interval below minimum", "POLL_INTERVAL", "500ms"},
		{"zero upstream rps", "UPSTREAM_RPS", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

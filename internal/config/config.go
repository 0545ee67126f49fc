package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/epidemicwatch/risk-service/internal/alert"
	"github.com/epidemicwatch/risk-service/internal/domain"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Alert subsystem.
	AlertStorePath  string
	PollInterval    time.Duration
	AlertThresholds alert.Thresholds

	// Upstream services the prediction flow depends on.
	GeoIPBaseURL      string
	GeocodeBaseURL    string
	WeatherBaseURL    string
	AirQualityBaseURL string
	CaseFeedBaseURL   string
	UpstreamTimeout   time.Duration
	UpstreamRPS       float64
	UpstreamBurst     int

	// Epidemic gate region tokens (lowercased substrings of country names).
	EpidemicRegions []string

	// Demo admin credentials for the dashboard endpoints. Not a security
	// boundary; mirrors the original single hardcoded credential pair.
	AdminUser     string
	AdminPassword string

	// Optional Kafka alert export.
	KafkaEnabled bool
	KafkaBrokers []string
	KafkaTopic   string
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	pollInterval, err := parseDuration("POLL_INTERVAL", 30*time.Second)
	if err != nil {
		return nil, err
	}

	upstreamTimeout, err := parseDuration("UPSTREAM_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	kafkaEnabled := envOrDefault("KAFKA_ENABLED", "false") == "true"

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		AlertStorePath:  envOrDefault("ALERT_STORE_PATH", "alerts.json"),
		PollInterval:    pollInterval,
		AlertThresholds: loadThresholds(),

		GeoIPBaseURL:      envOrDefault("GEOIP_BASE_URL", "https://ipapi.co"),
		GeocodeBaseURL:    envOrDefault("GEOCODE_BASE_URL", "https://geocode.maps.co"),
		WeatherBaseURL:    envOrDefault("WEATHER_BASE_URL", "https://api.open-meteo.com"),
		AirQualityBaseURL: envOrDefault("AIR_QUALITY_BASE_URL", "https://api.openaq.org"),
		CaseFeedBaseURL:   envOrDefault("CASE_FEED_BASE_URL", "https://disease.sh"),
		UpstreamTimeout:   upstreamTimeout,
		UpstreamRPS:       envFloat("UPSTREAM_RPS", 2),
		UpstreamBurst:     envInt("UPSTREAM_BURST", 4),

		EpidemicRegions: parseList(os.Getenv("EPIDEMIC_REGIONS"), domain.DefaultEpidemicRegions()),

		AdminUser:     envOrDefault("ADMIN_USER", "admin"),
		AdminPassword: envOrDefault("ADMIN_PASSWORD", "epidemic@123"),

		KafkaEnabled: kafkaEnabled,
		KafkaBrokers: parseList(os.Getenv("KAFKA_BROKERS"), []string{"localhost:9092"}),
		KafkaTopic:   envOrDefault("KAFKA_TOPIC", "epidemic-alerts"),
	}

	if cfg.AlertStorePath == "" {
		return nil, errors.New("ALERT_STORE_PATH is required")
	}
	if cfg.PollInterval < time.Second {
		return nil, errors.New("POLL_INTERVAL must be at least 1s")
	}
	if cfg.UpstreamRPS <= 0 || cfg.UpstreamBurst <= 0 {
		return nil, errors.New("UPSTREAM_RPS and UPSTREAM_BURST must be positive")
	}
	if len(cfg.EpidemicRegions) == 0 {
		return nil, errors.New("EPIDEMIC_REGIONS must not be empty")
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is not set")
	}

	return cfg, nil
}

func loadThresholds() alert.Thresholds {
	th := alert.DefaultThresholds()
	th.TriggerCaseRate = envFloat("ALERT_TRIGGER_CASE_RATE", th.TriggerCaseRate)
	th.TriggerDeathRate = envFloat("ALERT_TRIGGER_DEATH_RATE", th.TriggerDeathRate)
	th.HighCaseRate = envFloat("ALERT_HIGH_CASE_RATE", th.HighCaseRate)
	th.HighDeathRate = envFloat("ALERT_HIGH_DEATH_RATE", th.HighDeathRate)
	th.ModerateCaseRate = envFloat("ALERT_MODERATE_CASE_RATE", th.ModerateCaseRate)
	th.ModerateDeathRate = envFloat("ALERT_MODERATE_DEATH_RATE", th.ModerateDeathRate)
	return th
}

func envOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func parseDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, errors.New("invalid " + key)
	}
	return d, nil
}

// parseList splits a comma-separated value, trimming whitespace and dropping
// empty entries. An empty input returns the fallback.
func parseList(csv string, fallback []string) []string {
	if strings.TrimSpace(csv) == "" {
		return fallback
	}
	parts := strings.Split(csv, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

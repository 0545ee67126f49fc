package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPollutantAQI(t *testing.T) {
	tests := []struct {
		name      string
		value     float64
		pollutant Pollutant
		expected  float64
	}{
		{"pm25 zero", 0, PollutantPM25, 0},
		{"pm25 first breakpoint", 12, PollutantPM25, 50},
		{"pm25 worked example", 40, PollutantPM25, 111.5},
		{"pm25 second breakpoint", 35.4, PollutantPM25, 100},
		{"pm25 above top breakpoint", 75.4, PollutantPM25, 200},
		{"pm10 zero", 0, PollutantPM10, 0},
		{"pm10 first breakpoint", 54, PollutantPM10, 50},
		{"pm10 mid band", 104, PollutantPM10, 100},
		{"pm10 above top breakpoint", 204, PollutantPM10, 200},
		{"unknown pollutant", 100, Pollutant("o3"), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, PollutantAQI(tt.value, tt.pollutant), 1e-9)
		})
	}
}

func TestCompositeAQI(t *testing.T) {
	t.Run("takes max across pollutants", func(t *testing.T) {
		// pm25 40 → 111.5, pm10 60 → 56
		assert.InDelta(t, 111.5, CompositeAQI(40, 60), 1e-9)
	})

	t.Run("pm10 can dominate", func(t *testing.T) {
		// pm25 5 → 20.83, pm10 154 → 150
		assert.InDelta(t, 150, CompositeAQI(5, 154), 1e-9)
	})
}

func TestAQIDescription(t *testing.T) {
	tests := []struct {
		aqi      float64
		expected string
	}{
		{0, "Good"},
		{50, "Good"},
		{51, "Moderate"},
		{100, "Moderate"},
		{111.5, "Unhealthy for Sensitive"},
		{175, "Unhealthy"},
		{250, "Very Unhealthy"},
		{400, "Hazardous"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, AQIDescription(tt.aqi), "aqi %v", tt.aqi)
	}
}

package alert

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/epidemicwatch/risk-service/internal/domain"
)

func TestAnalyzeCountries(t *testing.T) {
	th := DefaultThresholds()

	t.Run("case rate trigger", func(t *testing.T) {
		// 200/1000 = 20% case increase, 0.5% death rate.
		countries := []CountryStats{{Country: "Atlantis", Cases: 1000, TodayCases: 200, Deaths: 5}}

		alerts := AnalyzeCountries(countries, th)

		require.Len(t, alerts, 1)
		assert.Equal(t, "COVID-19", alerts[0].Disease)
		assert.Equal(t, "Atlantis", alerts[0].Region)
		assert.Equal(t, domain.SeverityModerate, alerts[0].Severity)
		assert.InDelta(t, 20.0, alerts[0].RiskPercentage, 1e-9)
		assert.Equal(t, OriginAuto, alerts[0].Origin)
		assert.Contains(t, alerts[0].Message, "Case increase rate of 20.0%")
	})

	t.Run("death rate trigger", func(t *testing.T) {
		// 0% case increase, 26/1000 = 2.6% death rate -> Moderate.
		countries := []CountryStats{{Country: "Erewhon", Cases: 1000, Deaths: 26}}

		alerts := AnalyzeCountries(countries, th)

		require.Len(t, alerts, 1)
		assert.Equal(t, domain.SeverityModerate, alerts[0].Severity)
		assert.InDelta(t, 26.0, alerts[0].RiskPercentage, 1e-9) // deathRate*10
		assert.Contains(t, alerts[0].Message, "Death rate of 2.60%")
	})

	t.Run("below thresholds fires nothing", func(t *testing.T) {
		countries := []CountryStats{{Country: "Quietland", Cases: 10000, TodayCases: 100, Deaths: 50}}
		assert.Empty(t, AnalyzeCountries(countries, th))
	})

	t.Run("zero cases skipped", func(t *testing.T) {
		countries := []CountryStats{{Country: "Empty", Cases: 0, TodayCases: 10, Deaths: 10}}
		assert.Empty(t, AnalyzeCountries(countries, th))
	})

	t.Run("samples only first ten entries", func(t *testing.T) {
		countries := make([]CountryStats, 0, 12)
		for i := 0; i < 12; i++ {
			countries = append(countries, CountryStats{Country: "Hot", Cases: 100, TodayCases: 30})
		}

		alerts := AnalyzeCountries(countries, th)
		assert.Len(t, alerts, 10)
	})
}

func TestSeverityFromRates(t *testing.T) {
	th := DefaultThresholds()

	tests := []struct {
		name      string
		caseRate  float64
		deathRate float64
		expected  domain.Severity
	}{
		{"high by case rate", 26, 0, domain.SeverityHigh},
		{"high by death rate", 0, 3.1, domain.SeverityHigh},
		{"moderate by case rate", 19, 0, domain.SeverityModerate},
		{"moderate by death rate", 0, 2.6, domain.SeverityModerate},
		{"low", 16, 2.1, domain.SeverityLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, severityFromRates(tt.caseRate, tt.deathRate, th))
		})
	}
}

func TestAnalyzeCountries_Timestamps(t *testing.T) {
	fixed := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(fixed))
	defer SetClock(nil)

	alerts := AnalyzeCountries([]CountryStats{{Country: "Atlantis", Cases: 100, TodayCases: 30}}, DefaultThresholds())

	require.Len(t, alerts, 1)
	assert.Equal(t, fixed, alerts[0].Timestamp)
	assert.NotEmpty(t, alerts[0].ID)
}

func TestDemoAlerts(t *testing.T) {
	alerts := DemoAlerts()

	require.Len(t, alerts, 2)
	assert.Equal(t, "Dengue", alerts[0].Disease)
	assert.Equal(t, domain.SeverityHigh, alerts[0].Severity)
	assert.Equal(t, "Influenza", alerts[1].Disease)
	assert.Equal(t, domain.SeverityModerate, alerts[1].Severity)
	assert.NotEqual(t, alerts[0].ID, alerts[1].ID)
}

func TestManualRiskPercentage(t *testing.T) {
	assert.Equal(t, 15.0, ManualRiskPercentage(domain.SeverityLow))
	assert.Equal(t, 35.0, ManualRiskPercentage(domain.SeverityModerate))
	assert.Equal(t, 65.0, ManualRiskPercentage(domain.SeverityHigh))
	assert.Equal(t, 30.0, ManualRiskPercentage(domain.Severity("Weird")))
}

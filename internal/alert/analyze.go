package alert

import (
	"fmt"
	"strings"

	"github.com/epidemicwatch/risk-service/internal/domain"
)

// CountryStats is one entry of the external case-count feed.
type CountryStats struct {
	Country     string `json:"country"`
	Cases       int64  `json:"cases"`
	TodayCases  int64  `json:"todayCases"`
	Deaths      int64  `json:"deaths"`
	TodayDeaths int64  `json:"todayDeaths"`
}

// Thresholds holds the rate cutoffs for synthesizing alerts from the feed.
// The defaults are hand-tuned demo values; deployments may override them.
type Thresholds struct {
	TriggerCaseRate   float64 // percent, case-increase rate that opens an alert
	TriggerDeathRate  float64 // percent
	HighCaseRate      float64
	HighDeathRate     float64
	ModerateCaseRate  float64
	ModerateDeathRate float64
}

// DefaultThresholds returns the standard alerting cutoffs.
func DefaultThresholds() Thresholds {
	return Thresholds{
		TriggerCaseRate:   15,
		TriggerDeathRate:  2,
		HighCaseRate:      25,
		HighDeathRate:     3,
		ModerateCaseRate:  18,
		ModerateDeathRate: 2.5,
	}
}

// sampleSize bounds how many feed entries one analysis pass inspects.
const sampleSize = 10

// AnalyzeCountries samples the first entries of the feed, computes naive
// day-over-day case and death rate percentages, and synthesizes an alert for
// each region whose rates exceed the trigger thresholds. Regions with zero
// total cases are skipped.
func AnalyzeCountries(countries []CountryStats, th Thresholds) []Alert {
	n := len(countries)
	if n > sampleSize {
		n = sampleSize
	}

	alerts := make([]Alert, 0, n)
	for _, c := range countries[:n] {
		if c.Cases <= 0 {
			continue
		}

		caseRate := float64(c.TodayCases) / float64(c.Cases) * 100
		deathRate := float64(c.Deaths) / float64(c.Cases) * 100

		if caseRate <= th.TriggerCaseRate && deathRate <= th.TriggerDeathRate {
			continue
		}

		severity := severityFromRates(caseRate, deathRate, th)
		risk := caseRate
		if deathRate*10 > risk {
			risk = deathRate * 10
		}

		alerts = append(alerts, Alert{
			ID:             NewID(),
			Disease:        "COVID-19",
			Region:         c.Country,
			Severity:       severity,
			RiskPercentage: risk,
			Timestamp:      clock.Now(),
			Message:        alertMessage(c.Country, severity, caseRate, deathRate, th),
			Origin:         OriginAuto,
		})
	}
	return alerts
}

func severityFromRates(caseRate, deathRate float64, th Thresholds) domain.Severity {
	switch {
	case caseRate > th.HighCaseRate || deathRate > th.HighDeathRate:
		return domain.SeverityHigh
	case caseRate > th.ModerateCaseRate || deathRate > th.ModerateDeathRate:
		return domain.SeverityModerate
	default:
		return domain.SeverityLow
	}
}

func alertMessage(country string, severity domain.Severity, caseRate, deathRate float64, th Thresholds) string {
	factors := make([]string, 0, 2)
	if caseRate > th.TriggerCaseRate {
		factors = append(factors, fmt.Sprintf("Case increase rate of %.1f%%", caseRate))
	}
	if deathRate > th.TriggerDeathRate {
		factors = append(factors, fmt.Sprintf("Death rate of %.2f%%", deathRate))
	}

	return fmt.Sprintf("⚠️ %s showing concerning %s risk indicators. %s. Monitoring recommended.",
		country, strings.ToLower(string(severity)), strings.Join(factors, " and "))
}

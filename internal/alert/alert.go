package alert

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/epidemicwatch/risk-service/internal/domain"
)

// Origin records how an alert was created.
type Origin string

const (
	OriginAuto   Origin = "auto"
	OriginManual Origin = "manual"
)

// Alert is one entry of the bounded alert list.
type Alert struct {
	ID             string          `json:"id"`
	Disease        string          `json:"disease"`
	Region         string          `json:"region"`
	Severity       domain.Severity `json:"severity"`
	RiskPercentage float64         `json:"risk_percentage"`
	Timestamp      time.Time       `json:"timestamp"`
	Message        string          `json:"message"`
	Origin         Origin          `json:"origin"`
}

// NewID returns a generation-time unique alert identifier.
func NewID() string {
	return uuid.NewString()
}

// ManualRiskPercentage maps a manually selected severity to the fixed risk
// percentage shown on the dashboard.
func ManualRiskPercentage(severity domain.Severity) float64 {
	switch severity {
	case domain.SeverityLow:
		return 15
	case domain.SeverityModerate:
		return 35
	case domain.SeverityHigh:
		return 65
	default:
		return 30
	}
}

// NewManualAlert builds an operator-created alert. The risk percentage is
// fixed per severity; an empty message gets a standard one.
func NewManualAlert(disease, region string, severity domain.Severity, message string) Alert {
	if message == "" {
		message = fmt.Sprintf("Manual alert issued for %s in %s.", disease, region)
	}
	return Alert{
		ID:             NewID(),
		Disease:        disease,
		Region:         region,
		Severity:       severity,
		RiskPercentage: ManualRiskPercentage(severity),
		Timestamp:      clock.Now(),
		Message:        message,
		Origin:         OriginManual,
	}
}

// clock is the package-level time source for alert timestamps.
var clock clockwork.Clock = clockwork.NewRealClock()

// SetClock swaps the time source. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}

// DemoAlerts returns the two fixed alerts substituted when a manually
// triggered refresh cannot reach the case-count feed.
func DemoAlerts() []Alert {
	now := clock.Now()
	return []Alert{
		{
			ID:             NewID(),
			Disease:        "Dengue",
			Region:         "Southeast Asia",
			Severity:       domain.SeverityHigh,
			RiskPercentage: 28,
			Timestamp:      now,
			Message:        "⚠️ High transmission rates detected in Southeast Asia. Warm humid conditions ideal for mosquito breeding.",
			Origin:         OriginManual,
		},
		{
			ID:             NewID(),
			Disease:        "Influenza",
			Region:         "North America",
			Severity:       domain.SeverityModerate,
			RiskPercentage: 18,
			Timestamp:      now,
			Message:        "⚠️ Moderate flu activity detected. Cold season conditions favor transmission.",
			Origin:         OriginManual,
		},
	}
}

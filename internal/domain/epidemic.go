package domain

import (
	"strings"
	"time"
)

// EpidemicStatus is the result of the epidemic gate check.
type EpidemicStatus struct {
	Active    bool      `json:"active"`
	Score     float64   `json:"score"`
	Location  string    `json:"location"`
	CheckedAt time.Time `json:"checked_at"`
}

// DefaultEpidemicRegions returns the standard region token allow-list.
// These tokens are demo constants from the original model, not derived from
// surveillance data; deployments should treat them as configuration.
func DefaultEpidemicRegions() []string {
	return []string{"india", "pakistan", "bangladesh", "thailand", "indonesia"}
}

// CheckEpidemic flags an active epidemic when the score exceeds 50 and the
// lowercased country name contains one of the region tokens. The location
// label is "city, country" as displayed to users.
func CheckEpidemic(city, country string, score float64, regions []string) EpidemicStatus {
	lowered := strings.ToLower(country)

	active := false
	if score > 50 {
		for _, token := range regions {
			if strings.Contains(lowered, token) {
				active = true
				break
			}
		}
	}

	return EpidemicStatus{
		Active:    active,
		Score:     score,
		Location:  city + ", " + country,
		CheckedAt: clock.Now(),
	}
}

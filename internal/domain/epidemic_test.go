package domain

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
)

func TestCheckEpidemic(t *testing.T) {
	regions := DefaultEpidemicRegions()

	tests := []struct {
		name    string
		country string
		score   float64
		active  bool
	}{
		{"listed region above threshold", "India", 55, true},
		{"unlisted region high score", "France", 90, false},
		{"listed region at threshold", "India", 50, false},
		{"listed region low score", "Bangladesh", 20, false},
		{"token substring match", "Republic of Indonesia", 80, true},
		{"case insensitive", "PAKISTAN", 51, true},
		{"empty country", "", 99, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := CheckEpidemic("Delhi", tt.country, tt.score, regions)
			assert.Equal(t, tt.active, status.Active)
			assert.Equal(t, tt.score, status.Score)
		})
	}
}

func TestCheckEpidemic_StatusFields(t *testing.T) {
	fixed := time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(fixed))
	defer SetClock(nil)

	status := CheckEpidemic("Dhaka", "Bangladesh", 62, DefaultEpidemicRegions())

	assert.True(t, status.Active)
	assert.Equal(t, "Dhaka, Bangladesh", status.Location)
	assert.Equal(t, fixed, status.CheckedAt)
}

func TestCheckEpidemic_CustomRegions(t *testing.T) {
	status := CheckEpidemic("Paris", "France", 90, []string{"france"})
	assert.True(t, status.Active)

	status = CheckEpidemic("Delhi", "India", 90, []string{"france"})
	assert.False(t, status.Active)
}

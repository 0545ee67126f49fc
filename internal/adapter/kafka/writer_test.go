package kafka

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/epidemicwatch/risk-service/internal/alert"
	"github.com/epidemicwatch/risk-service/internal/domain"
)

func TestSerializeToMessage(t *testing.T) {
	a := alert.Alert{
		ID:             "a-1",
		Disease:        "Dengue",
		Region:         "Thailand",
		Severity:       domain.SeverityHigh,
		RiskPercentage: 28,
		Timestamp:      time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Message:        "test",
		Origin:         alert.OriginAuto,
	}

	msg, err := serializeToMessage(a)
	require.NoError(t, err)

	assert.Equal(t, []byte("Thailand"), msg.Key)

	var decoded alert.Alert
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, a, decoded)

	headers := map[string]string{}
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, "High", headers["severity"])
	assert.Equal(t, "auto", headers["origin"])
	assert.Equal(t, "2025-06-01T12:00:00Z", headers["created_at"])
}

// Package kafka exports accepted alerts to a Kafka topic for downstream
// consumers. The export is optional and feature-flagged; the alert store
// remains the source of truth.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/epidemicwatch/risk-service/internal/alert"
)

// Writer produces alert records to a Kafka topic.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the alert export topic.
func NewWriter(brokers []string, topic string, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// Publish serializes and writes one alert to the export topic.
func (w *Writer) Publish(ctx context.Context, a alert.Alert) error {
	msg, err := serializeToMessage(a)
	if err != nil {
		return err
	}
	return w.writer.WriteMessages(ctx, msg)
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals an alert into a Kafka message keyed by region
// so per-region ordering is preserved.
func serializeToMessage(a alert.Alert) (kafkago.Message, error) {
	data, err := json.Marshal(a)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize alert: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(a.Region),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "severity", Value: []byte(a.Severity)},
			{Key: "origin", Value: []byte(a.Origin)},
			{Key: "created_at", Value: []byte(a.Timestamp.Format(time.RFC3339))},
		},
	}, nil
}

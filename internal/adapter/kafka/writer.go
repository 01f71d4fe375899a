// Package kafka publishes completed prediction batches to a Kafka topic for
// downstream consumers such as the notification service.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/stormsignal/suspension-pipeline/internal/config"
	"github.com/stormsignal/suspension-pipeline/internal/domain"
)

// Writer produces prediction messages to a Kafka topic.
// It implements pipeline.PredictionWriter.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured prediction topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// WritePredictions serializes and publishes a prediction batch in a single
// WriteMessages call.
func (w *Writer) WritePredictions(ctx context.Context, predictions []domain.Prediction) error {
	if len(predictions) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(predictions))
	for i := range predictions {
		msg, err := serializeToMessage(predictions[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return err
	}
	w.logger.Info("predictions published", "topic", w.writer.Topic, "count", len(predictions))
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a prediction into a Kafka message keyed by
// (date, unit) so topic compaction keeps the latest prediction per key.
func serializeToMessage(p domain.Prediction) (kafkago.Message, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize prediction: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(p.Date + "|" + p.Unit),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "risk_tier", Value: []byte(p.RiskTier.Tier)},
			{Key: "model_version", Value: []byte(p.ClassifierVersion)},
		},
	}, nil
}

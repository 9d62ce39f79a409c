// Package kafka publishes season reports to a Kafka topic for downstream
// renderers.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/gsod-seasons/internal/config"
	"github.com/couchcryptid/gsod-seasons/internal/domain"
)

// messageWriter is the subset of *kafkago.Writer the sink uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Writer produces one message per season report.
// It implements pipeline.ReportSink.
type Writer struct {
	writer messageWriter
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured sink topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSinkTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// Name identifies the sink in logs and metrics.
func (w *Writer) Name() string { return "kafka" }

// Emit serializes and publishes all reports in a single WriteMessages call.
func (w *Writer) Emit(ctx context.Context, reports []domain.SeasonReport) error {
	if len(reports) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(reports))
	for i := range reports {
		msg, err := serializeToMessage(reports[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("publish season reports: %w", err)
	}
	w.logger.Debug("season reports published", "count", len(msgs))
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a SeasonReport into a Kafka message keyed by
// station and season, so re-runs overwrite on compacted topics.
func serializeToMessage(report domain.SeasonReport) (kafkago.Message, error) {
	data, err := json.Marshal(report)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize season report: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(report.Key()),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "season", Value: []byte(report.Season.String())},
			{Key: "reducer", Value: []byte(report.Reducer.String())},
			{Key: "generated_at", Value: []byte(report.GeneratedAt.Format(time.RFC3339))},
		},
	}, nil
}

package kafka

import (
	"context"
	"log/slog"
	"time"

	"github.com/couchcryptid/buoy-fetch/internal/config"
	"github.com/couchcryptid/buoy-fetch/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Writer publishes each finished document to a Kafka topic.
// It implements pipeline.Loader.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.KafkaBrokers...),
		Topic:                  cfg.KafkaTopic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
		WriteTimeout:           cfg.FetchTimeout,
	}
	return &Writer{writer: w, logger: logger}
}

// Name identifies the sink in logs and metrics.
func (w *Writer) Name() string { return "kafka" }

// Load publishes doc keyed by station id, so every document for a station
// lands on the same partition in fetch order.
func (w *Writer) Load(ctx context.Context, doc *domain.OutputDocument) error {
	msg, err := serializeToMessage(doc)
	if err != nil {
		return err
	}
	if err := w.writer.WriteMessages(ctx, msg); err != nil {
		return err
	}
	w.logger.Info("published document", "topic", w.writer.Topic, "buoy_id", doc.BuoyID)
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage renders a document as a Kafka message.
func serializeToMessage(doc *domain.OutputDocument) (kafkago.Message, error) {
	data, err := domain.SerializeDocument(doc)
	if err != nil {
		return kafkago.Message{}, err
	}
	return kafkago.Message{
		Key:   []byte(doc.BuoyID),
		Value: data,
		Time:  doc.FetchTime,
		Headers: []kafkago.Header{
			{Key: "station_id", Value: []byte(doc.BuoyID)},
			{Key: "fetch_time", Value: []byte(doc.FetchTime.Format(time.RFC3339))},
		},
	}, nil
}

// Package kafka publishes document-indexed notifications to a single
// topic, one message per call. There is no batch-publish path and no
// consumer side: internal/events calls Publish exactly once per location
// merged into the index, so there is never a backlog of events to batch,
// and nothing in this engine ever reads from the topic it writes to.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/riverrun/contextual-search/pkg/config"
	"github.com/segmentio/kafka-go"
)

// Event is a document-indexed notification. Key is the crawled/indexed
// location, used for partition hashing so a location's events land on a
// consistent partition; Value is JSON-serialised on publish.
type Event struct {
	Key   string
	Value any
}

// Producer publishes JSON-encoded Events to cfg.IndexedTopic.
type Producer struct {
	writer *kafka.Writer
	logger *slog.Logger
}

// NewProducer creates a Producer for topic. BatchSize/BatchTimeout still
// apply even though every call publishes a single Event: kafka-go's writer
// buffers internally regardless of call-site batching, so a short timeout
// keeps a lone event from waiting on a batch that will never fill.
func NewProducer(cfg config.KafkaConfig, topic string) *Producer {
	w := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchSize:    100,
		BatchTimeout: 10 * time.Millisecond,
		MaxAttempts:  3,
		RequiredAcks: kafka.RequireAll,
		Async:        false,
	}
	return &Producer{
		writer: w,
		logger: slog.Default().With("component", "kafka-producer", "topic", topic),
	}
}

// Publish serialises a single indexed-location event and writes it to
// Kafka synchronously, blocking until the broker acknowledges it.
func (p *Producer) Publish(ctx context.Context, event Event) error {
	value, err := json.Marshal(event.Value)
	if err != nil {
		return fmt.Errorf("marshaling event value: %w", err)
	}
	msg := kafka.Message{
		Key:   []byte(event.Key),
		Value: value,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("failed to publish message",
			"key", event.Key,
			"error", err,
		)
		return fmt.Errorf("publishing to kafka: %w", err)
	}
	p.logger.Debug("message published",
		"key", event.Key,
		"value_size", len(value),
	)
	return nil
}

// Close flushes pending writes and closes the underlying Kafka writer.
func (p *Producer) Close() error {
	return p.writer.Close()
}

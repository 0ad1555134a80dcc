// Package events publishes "document indexed" notifications to Kafka as
// crawl tasks complete. Publishing is fire-and-forget: a failure to
// publish is logged but never aborts or retries the indexing task that
// triggered it, since the shared index is already the durable record of
// what was indexed.
package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/riverrun/contextual-search/pkg/config"
	"github.com/riverrun/contextual-search/pkg/kafka"
)

// Indexed is the event body published each time a location is merged into
// the shared index.
type Indexed struct {
	Location  string    `json:"location"`
	WordCount int       `json:"wordCount"`
	IndexedAt time.Time `json:"indexedAt"`
}

// Publisher implements crawler.EventPublisher on top of a Kafka producer.
// A nil Publisher is valid and every method on it is a no-op, matching the
// "disabled when unconfigured" default.
type Publisher struct {
	producer *kafka.Producer
	log      *slog.Logger
}

// New returns a Publisher for cfg's indexed-document topic, or nil if no
// brokers are configured.
func New(cfg config.KafkaConfig) *Publisher {
	if len(cfg.Brokers) == 0 {
		return nil
	}
	return &Publisher{
		producer: kafka.NewProducer(cfg, cfg.IndexedTopic),
		log:      slog.Default().With("component", "events"),
	}
}

// PublishIndexed publishes an Indexed event for location, which contributed
// wordCount terms (including duplicates) to the index. Errors are logged,
// never returned, so a broker outage cannot fail a crawl task. The publish
// is synchronous: the calling worker waits until the broker acknowledges the
// event or the producer gives up.
func (p *Publisher) PublishIndexed(ctx context.Context, location string, wordCount int) {
	if p == nil {
		return
	}
	event := kafka.Event{
		Key: location,
		Value: Indexed{
			Location:  location,
			WordCount: wordCount,
			IndexedAt: time.Now().UTC(),
		},
	}
	if err := p.producer.Publish(ctx, event); err != nil {
		p.log.Warn("failed to publish indexed event", "location", location, "error", err)
	}
}

// Close releases the underlying Kafka writer. Safe to call on a nil
// Publisher.
func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	return p.producer.Close()
}

package events

import (
	"context"
	"testing"

	"github.com/riverrun/contextual-search/pkg/config"
)

func TestNewReturnsNilWithoutBrokers(t *testing.T) {
	p := New(config.KafkaConfig{})
	if p != nil {
		t.Errorf("New() = %v, want nil when no brokers are configured", p)
	}
}

func TestNilPublisherMethodsAreNoOps(t *testing.T) {
	var p *Publisher

	// None of these must panic on a nil receiver.
	p.PublishIndexed(context.Background(), "http://example.com", 42)
	if err := p.Close(); err != nil {
		t.Errorf("Close() on nil Publisher = %v, want nil", err)
	}
}

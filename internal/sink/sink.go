// Package sink delivers generated events to external stores. The
// simulator core only ever sees these interfaces; transport details stay
// here.
package sink

import (
	"context"
	"fmt"

	"github.com/pkkumari/esyanpse-ecommerce-analytics/internal/config"
	"github.com/pkkumari/esyanpse-ecommerce-analytics/internal/event"
)

// Publisher delivers events one at a time (streaming mode).
type Publisher interface {
	Publish(ctx context.Context, e event.Event) error
	Close() error
}

// BatchWriter delivers events in batches (backfill mode).
type BatchWriter interface {
	Deliver(ctx context.Context, events []event.Event) error
	Close() error
}

// Sink is a destination usable by both generator variants.
type Sink interface {
	Publisher
	BatchWriter
}

// Open builds the sink selected by the configuration.
func Open(cfg config.Sink) (Sink, error) {
	switch cfg.Kind {
	case "stdout":
		return Stdout(), nil
	case "file":
		return OpenFile(cfg.Path)
	case "kafka":
		return NewKafka(cfg.Brokers, cfg.Topic), nil
	default:
		return nil, fmt.Errorf("unknown sink kind %q", cfg.Kind)
	}
}

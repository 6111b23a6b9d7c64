package sink

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"github.com/pkkumari/esyanpse-ecommerce-analytics/internal/event"
)

// Kafka publishes events to a Kafka topic. Messages are keyed by user id
// so one user's journey lands on one partition in order.
type Kafka struct {
	writer *kafka.Writer
}

func NewKafka(brokers []string, topic string) *Kafka {
	return &Kafka{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

// Publish sends a single event.
func (k *Kafka) Publish(ctx context.Context, e event.Event) error {
	msg, err := message(e)
	if err != nil {
		return err
	}
	if err := k.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publishing event %s: %w", e.ID, err)
	}
	return nil
}

// Deliver sends a batch of events in one write.
func (k *Kafka) Deliver(ctx context.Context, events []event.Event) error {
	if len(events) == 0 {
		return nil
	}
	msgs := make([]kafka.Message, 0, len(events))
	for _, e := range events {
		msg, err := message(e)
		if err != nil {
			return err
		}
		msgs = append(msgs, msg)
	}
	if err := k.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("delivering %d events: %w", len(events), err)
	}
	return nil
}

func message(e event.Event) (kafka.Message, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("encoding event %s: %w", e.ID, err)
	}
	return kafka.Message{Key: []byte(e.UserID), Value: data}, nil
}

func (k *Kafka) Close() error {
	return k.writer.Close()
}

// Package kafka publishes relayed outbox events to the event topic.
package kafka

import (
	"context"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// EventPublisher writes events synchronously with full acks; the outbox
// worker relies on the error to decide whether to mark the event
// published.
type EventPublisher struct {
	writer *kafka.Writer
}

func NewEventPublisher(brokers []string, topic string) *EventPublisher {
	return &EventPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
		},
	}
}

// Publish sends one event. The aggregate id is the message key so all
// events of one aggregate land on the same partition, in order.
func (p *EventPublisher) Publish(ctx context.Context, eventType, aggregateID, payload string) error {
	msg := kafka.Message{
		Key:   []byte(aggregateID),
		Value: []byte(payload),
		Time:  time.Now(),
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(eventType)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish event %s: %w", eventType, err)
	}
	return nil
}

func (p *EventPublisher) Close() error {
	return p.writer.Close()
}

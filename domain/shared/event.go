package shared

import (
	"fmt"
	"time"
)

// DomainEvent is a fact recorded by an aggregate when its state changes.
// Events are collected by the unit of work, stored in the outbox table
// within the same transaction, and relayed asynchronously.
type DomainEvent interface {
	EventName() string
	OccurredOn() time.Time
	AggregateID() string
	// Payload returns the event body for serialization into the outbox.
	Payload() map[string]interface{}
}

// ValidateEvent rejects structurally incomplete events before they are
// written to the outbox.
func ValidateEvent(event DomainEvent) error {
	if event == nil {
		return fmt.Errorf("event cannot be nil")
	}
	if event.EventName() == "" {
		return fmt.Errorf("event name cannot be empty")
	}
	if event.AggregateID() == "" {
		return fmt.Errorf("aggregate ID cannot be empty")
	}
	if event.OccurredOn().IsZero() {
		return fmt.Errorf("occurred on time cannot be zero")
	}
	return nil
}

package order

import (
	"time"

	"shopcore/domain/shared"
)

// Event names published through the outbox.
const (
	EventPlaced    = "order.placed"
	EventPaid      = "order.paid"
	EventCancelled = "order.cancelled"
)

type event struct {
	name        string
	aggregateID string
	occurredOn  time.Time
	payload     map[string]interface{}
}

func (e event) EventName() string               { return e.name }
func (e event) OccurredOn() time.Time           { return e.occurredOn }
func (e event) AggregateID() string             { return e.aggregateID }
func (e event) Payload() map[string]interface{} { return e.payload }

func newPlacedEvent(o *Order) shared.DomainEvent {
	return event{
		name:        EventPlaced,
		aggregateID: o.ID,
		occurredOn:  time.Now(),
		payload: map[string]interface{}{
			"order_id":     o.ID,
			"order_number": o.Number,
			"user_id":      o.UserID,
			"total_amount": o.TotalAmount.String(),
			"payment_type": string(o.PaymentType),
		},
	}
}

func newPaidEvent(o *Order) shared.DomainEvent {
	return event{
		name:        EventPaid,
		aggregateID: o.ID,
		occurredOn:  time.Now(),
		payload: map[string]interface{}{
			"order_id":     o.ID,
			"order_number": o.Number,
			"total_amount": o.TotalAmount.String(),
		},
	}
}

func newCancelledEvent(o *Order, reason string) shared.DomainEvent {
	return event{
		name:        EventCancelled,
		aggregateID: o.ID,
		occurredOn:  time.Now(),
		payload: map[string]interface{}{
			"order_id":     o.ID,
			"order_number": o.Number,
			"reason":       reason,
		},
	}
}

var _ shared.DomainEvent = event{}

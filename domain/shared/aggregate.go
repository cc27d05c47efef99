package shared

// EventRecorder is implemented by entities that record domain events as
// their state changes. The unit of work pulls recorded events inside the
// transaction and persists them to the outbox.
type EventRecorder interface {
	AggregateID() string
	PullEvents() []DomainEvent
}

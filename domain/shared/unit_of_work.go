package shared

import "context"

// UnitOfWork manages a transactional boundary and collects domain events
// from registered entities. Every write performed through repositories
// inside Execute shares one database transaction. Register must be
// called with the context passed to the Execute closure; the recorder
// list lives in that context, so one UnitOfWork instance can serve
// concurrent transactions.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(ctx context.Context) error) error
	Register(ctx context.Context, recorder EventRecorder)
}

// OutboxRepository persists domain events for asynchronous relay.
type OutboxRepository interface {
	SaveEvent(ctx context.Context, event DomainEvent) error
}

package mysql

import (
	"context"
	"fmt"

	"shopcore/domain/shared"
	"shopcore/infrastructure/persistence"
	"shopcore/infrastructure/persistence/retry"

	"gorm.io/gorm"
)

// UnitOfWork wraps workflow steps in a single database transaction,
// collects domain events from registered entities, and writes them to
// the outbox table before commit. Retryable failures (deadlocks,
// optimistic-lock conflicts) re-run the whole function.
//
// The recorder list is carried in the transaction context, not on the
// struct, so one instance serves concurrent requests without their
// events bleeding into each other's transactions.
type UnitOfWork struct {
	db          *gorm.DB
	outbox      *OutboxRepository
	retryConfig retry.Config
}

func NewUnitOfWork(db *gorm.DB) *UnitOfWork {
	return &UnitOfWork{
		db:          db,
		outbox:      NewOutboxRepository(db),
		retryConfig: retry.DefaultConfig,
	}
}

// SetRetryConfig overrides the default transaction retry settings.
func (u *UnitOfWork) SetRetryConfig(config retry.Config) {
	u.retryConfig = config
}

// eventCollector accumulates the recorders registered during one
// Execute attempt. A transaction is driven by a single goroutine.
type eventCollector struct {
	recorders []shared.EventRecorder
}

type collectorKey struct{}

func collectorFromContext(ctx context.Context) (*eventCollector, bool) {
	collector, ok := ctx.Value(collectorKey{}).(*eventCollector)
	return collector, ok
}

// Execute begins a transaction, injects it into the context for the
// repositories, runs fn, saves pulled events to the outbox, and commits.
// Any error rolls everything back; retryable errors re-run fn with a
// fresh collector.
func (u *UnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	executeOnce := func(ctx context.Context) error {
		tx := u.db.WithContext(ctx).Begin()
		if tx.Error != nil {
			return fmt.Errorf("failed to begin transaction: %w", tx.Error)
		}

		collector := &eventCollector{}
		txCtx := persistence.ContextWithTx(ctx, tx)
		txCtx = context.WithValue(txCtx, collectorKey{}, collector)

		if err := fn(txCtx); err != nil {
			tx.Rollback()
			return err
		}

		for _, recorder := range collector.recorders {
			for _, event := range recorder.PullEvents() {
				if err := u.outbox.SaveEvent(txCtx, event); err != nil {
					tx.Rollback()
					return fmt.Errorf("failed to save event to outbox: %w", err)
				}
			}
		}

		if err := tx.Commit().Error; err != nil {
			return fmt.Errorf("failed to commit transaction: %w", err)
		}
		return nil
	}

	return retry.Execute(ctx, u.retryConfig, executeOnce)
}

// Register adds an entity whose events should be flushed to the outbox
// when the transaction commits. ctx must be the context handed to the
// Execute closure; outside a transaction the call is a no-op.
func (u *UnitOfWork) Register(ctx context.Context, recorder shared.EventRecorder) {
	if collector, ok := collectorFromContext(ctx); ok {
		collector.recorders = append(collector.recorders, recorder)
	}
}

var _ shared.UnitOfWork = (*UnitOfWork)(nil)

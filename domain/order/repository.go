package order

import "context"

// Repository persists orders and their items together. Items are only
// ever written as part of their order.
type Repository interface {
	// Create inserts the order header and all items.
	Create(ctx context.Context, o *Order) error

	// Update persists the mutable fields (status, payment status,
	// cancellation fields) guarded by the optimistic-lock version.
	// Returns ErrConcurrentModification when the version does not match.
	Update(ctx context.Context, o *Order) error

	FindByID(ctx context.Context, id string) (*Order, error)
	FindByNumber(ctx context.Context, number string) (*Order, error)
	ExistsByNumber(ctx context.Context, number string) (bool, error)
	ListByUser(ctx context.Context, userID string, page, pageSize int) ([]*Order, int64, error)
}

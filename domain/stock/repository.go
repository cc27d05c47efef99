package stock

import "context"

// Repository is intentionally append-only: no update or delete methods
// exist, preserving the ledger as an audit trail.
type Repository interface {
	Append(ctx context.Context, m *Movement) error
	ListByProduct(ctx context.Context, productID string, limit int) ([]*Movement, error)
	ListByReference(ctx context.Context, refType ReferenceType, refID string) ([]*Movement, error)
}

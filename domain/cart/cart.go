// Package cart holds per-user shopping cart items.
package cart

import (
	"context"
	"errors"
	"time"
)

var ErrItemNotFound = errors.New("cart item not found")

// Item is one product in a user's cart. Quantity is always >= 1.
type Item struct {
	ID        string
	UserID    string
	ProductID string
	Quantity  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Repository interface {
	Upsert(ctx context.Context, item *Item) error
	UpdateQuantity(ctx context.Context, userID, productID string, quantity int) error
	Remove(ctx context.Context, userID, productID string) error
	// RemoveProducts deletes the given products from the user's cart.
	// Called inside the order transaction after a successful checkout.
	RemoveProducts(ctx context.Context, userID string, productIDs []string) error
	ListByUser(ctx context.Context, userID string) ([]*Item, error)
	Clear(ctx context.Context, userID string) error
}

// Package review holds product reviews. One review per user per product.
package review

import (
	"context"
	"errors"
	"time"
)

var (
	ErrReviewNotFound  = errors.New("review not found")
	ErrAlreadyReviewed = errors.New("product already reviewed by this user")
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
)

type Review struct {
	ID        string
	ProductID string
	UserID    string
	Rating    int // 1..5
	Comment   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate enforces the rating bounds.
func (r *Review) Validate() error {
	if r.Rating < 1 || r.Rating > 5 {
		return ErrInvalidRating
	}
	return nil
}

type Repository interface {
	Create(ctx context.Context, r *Review) error
	FindByID(ctx context.Context, id string) (*Review, error)
	FindByUserAndProduct(ctx context.Context, userID, productID string) (*Review, error)
	ListByProduct(ctx context.Context, productID string) ([]*Review, error)
	Delete(ctx context.Context, id string) error
}

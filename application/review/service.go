// Package review manages product reviews.
package review

import (
	"context"
	"time"

	"shopcore/domain/catalog"
	"shopcore/domain/review"

	"github.com/google/uuid"
)

type Service struct {
	reviewRepo  review.Repository
	productRepo catalog.ProductRepository
}

func NewService(reviewRepo review.Repository, productRepo catalog.ProductRepository) *Service {
	return &Service{reviewRepo: reviewRepo, productRepo: productRepo}
}

type CreateReviewRequest struct {
	ProductID string `json:"-"`
	UserID    string `json:"-"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Comment   string `json:"comment"`
}

func (s *Service) Create(ctx context.Context, req CreateReviewRequest) (*review.Review, error) {
	if _, err := s.productRepo.FindByID(ctx, req.ProductID); err != nil {
		return nil, err
	}

	now := time.Now()
	r := &review.Review{
		ID:        uuid.New().String(),
		ProductID: req.ProductID,
		UserID:    req.UserID,
		Rating:    req.Rating,
		Comment:   req.Comment,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if err := s.reviewRepo.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Service) ListByProduct(ctx context.Context, productID string) ([]*review.Review, error) {
	return s.reviewRepo.ListByProduct(ctx, productID)
}

// DeleteOwn removes the caller's review; deleting someone else's is a
// not-found.
func (s *Service) DeleteOwn(ctx context.Context, userID, reviewID string) error {
	r, err := s.reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if r.UserID != userID {
		return review.ErrReviewNotFound
	}
	return s.reviewRepo.Delete(ctx, reviewID)
}

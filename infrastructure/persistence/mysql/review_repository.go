package mysql

import (
	"context"
	"errors"
	"fmt"

	"shopcore/domain/review"
	"shopcore/infrastructure/persistence"
	"shopcore/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *ReviewRepository) Create(ctx context.Context, rev *review.Review) error {
	if err := r.getDB(ctx).Create(po.FromReview(rev)).Error; err != nil {
		// The (product, user) unique index enforces one review per user.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return review.ErrAlreadyReviewed
		}
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

func (r *ReviewRepository) FindByID(ctx context.Context, id string) (*review.Review, error) {
	var reviewPO po.ReviewPO
	err := r.getDB(ctx).First(&reviewPO, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, review.ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to find review: %w", err)
	}
	return reviewPO.ToDomain(), nil
}

func (r *ReviewRepository) FindByUserAndProduct(ctx context.Context, userID, productID string) (*review.Review, error) {
	var reviewPO po.ReviewPO
	err := r.getDB(ctx).
		First(&reviewPO, "user_id = ? AND product_id = ?", userID, productID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, review.ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to find review: %w", err)
	}
	return reviewPO.ToDomain(), nil
}

func (r *ReviewRepository) ListByProduct(ctx context.Context, productID string) ([]*review.Review, error) {
	var reviewPOs []po.ReviewPO
	err := r.getDB(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&reviewPOs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	reviews := make([]*review.Review, len(reviewPOs))
	for i := range reviewPOs {
		reviews[i] = reviewPOs[i].ToDomain()
	}
	return reviews, nil
}

func (r *ReviewRepository) Delete(ctx context.Context, id string) error {
	result := r.getDB(ctx).Delete(&po.ReviewPO{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete review: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return review.ErrReviewNotFound
	}
	return nil
}

var _ review.Repository = (*ReviewRepository)(nil)

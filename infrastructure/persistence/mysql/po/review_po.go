package po

import (
	"time"

	"shopcore/domain/review"
)

type ReviewPO struct {
	ID        string    `gorm:"primaryKey;size:64"`
	ProductID string    `gorm:"size:64;uniqueIndex:idx_reviews_product_user;not null"`
	UserID    string    `gorm:"size:64;uniqueIndex:idx_reviews_product_user;not null"`
	Rating    int       `gorm:"not null"`
	Comment   string    `gorm:"size:2000"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (ReviewPO) TableName() string { return "reviews" }

func FromReview(r *review.Review) *ReviewPO {
	return &ReviewPO{
		ID:        r.ID,
		ProductID: r.ProductID,
		UserID:    r.UserID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func (po *ReviewPO) ToDomain() *review.Review {
	return &review.Review{
		ID:        po.ID,
		ProductID: po.ProductID,
		UserID:    po.UserID,
		Rating:    po.Rating,
		Comment:   po.Comment,
		CreatedAt: po.CreatedAt,
		UpdatedAt: po.UpdatedAt,
	}
}

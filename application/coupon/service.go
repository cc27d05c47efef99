// Package coupon handles coupon administration and the public
// auto-apply listing. Discount application itself happens inside the
// order workflow.
package coupon

import (
	"context"
	"strings"
	"time"

	"shopcore/domain/coupon"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Service struct {
	repo coupon.Repository
}

func NewService(repo coupon.Repository) *Service {
	return &Service{repo: repo}
}

type CreateCouponRequest struct {
	Code           string     `json:"code" binding:"required"`
	DiscountType   string     `json:"discount_type" binding:"required,oneof=PERCENTAGE FIXED"`
	DiscountValue  string     `json:"discount_value" binding:"required"`
	MinOrderAmount string     `json:"min_order_amount"`
	MaxDiscount    string     `json:"max_discount"`
	Quantity       *int       `json:"quantity"` // nil means unlimited
	StartsAt       time.Time  `json:"starts_at"`
	ExpiresAt      *time.Time `json:"expires_at"`
	IsAutoApply    bool       `json:"is_auto_apply"`
}

func (s *Service) Create(ctx context.Context, req CreateCouponRequest) (*coupon.Coupon, error) {
	value, err := decimal.NewFromString(req.DiscountValue)
	if err != nil {
		return nil, err
	}

	minAmount := decimal.Zero
	if req.MinOrderAmount != "" {
		if minAmount, err = decimal.NewFromString(req.MinOrderAmount); err != nil {
			return nil, err
		}
	}
	maxDiscount := decimal.Zero
	if req.MaxDiscount != "" {
		if maxDiscount, err = decimal.NewFromString(req.MaxDiscount); err != nil {
			return nil, err
		}
	}

	quantity := coupon.UnlimitedQuantity
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	startsAt := req.StartsAt
	if startsAt.IsZero() {
		startsAt = time.Now()
	}
	var expiresAt time.Time
	if req.ExpiresAt != nil {
		expiresAt = *req.ExpiresAt
	}

	now := time.Now()
	c := &coupon.Coupon{
		ID:             uuid.New().String(),
		Code:           strings.ToUpper(strings.TrimSpace(req.Code)),
		DiscountType:   coupon.DiscountType(req.DiscountType),
		DiscountValue:  value,
		MinOrderAmount: minAmount,
		MaxDiscount:    maxDiscount,
		Quantity:       quantity,
		StartsAt:       startsAt,
		ExpiresAt:      expiresAt,
		IsActive:       true,
		IsAutoApply:    req.IsAutoApply,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) Get(ctx context.Context, id string) (*coupon.Coupon, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *Service) GetByCode(ctx context.Context, code string) (*coupon.Coupon, error) {
	return s.repo.FindByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
}

func (s *Service) List(ctx context.Context, activeOnly bool) ([]*coupon.Coupon, error) {
	return s.repo.List(ctx, activeOnly)
}

// ListAutoApply returns the auto-apply coupons currently valid for the
// given subtotal, for display at checkout.
func (s *Service) ListAutoApply(ctx context.Context, subtotal decimal.Decimal) ([]*coupon.Coupon, error) {
	coupons, err := s.repo.ListAutoApply(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	valid := coupons[:0]
	for _, c := range coupons {
		if c.Validate(subtotal, now) == coupon.RejectionNone {
			valid = append(valid, c)
		}
	}
	return valid, nil
}

func (s *Service) Deactivate(ctx context.Context, id string) error {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	c.IsActive = false
	return s.repo.Update(ctx, c)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

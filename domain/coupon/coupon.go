// Package coupon holds discount rules and the pure discount arithmetic
// used by the order workflow.
package coupon

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrCouponNotFound  = errors.New("coupon not found")
	ErrCouponExhausted = errors.New("coupon has no remaining uses")
	ErrDuplicateCode   = errors.New("coupon code already exists")
)

// DiscountType selects how a coupon's value is interpreted.
type DiscountType string

const (
	DiscountPercentage DiscountType = "PERCENTAGE"
	DiscountFixed      DiscountType = "FIXED"
)

// UnlimitedQuantity marks a coupon with no usage limit.
const UnlimitedQuantity = -1

// Coupon is a discount rule identified by its code.
type Coupon struct {
	ID             string
	Code           string
	DiscountType   DiscountType
	DiscountValue  decimal.Decimal
	MinOrderAmount decimal.Decimal
	MaxDiscount    decimal.Decimal // zero means uncapped
	Quantity       int             // remaining uses, UnlimitedQuantity for no limit
	StartsAt       time.Time
	ExpiresAt      time.Time
	IsActive       bool
	IsAutoApply    bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// RejectionReason explains why a coupon was not applied to an order.
type RejectionReason string

const (
	RejectionNone         RejectionReason = ""
	RejectionNotFound     RejectionReason = "NOT_FOUND"
	RejectionInactive     RejectionReason = "INACTIVE"
	RejectionNotStarted   RejectionReason = "NOT_STARTED"
	RejectionExpired      RejectionReason = "EXPIRED"
	RejectionExhausted    RejectionReason = "EXHAUSTED"
	RejectionBelowMinimum RejectionReason = "BELOW_MINIMUM"
)

// Validate checks whether the coupon is applicable to an order with the
// given subtotal at the given time. It returns the reason it cannot be
// applied, or RejectionNone when it can.
func (c *Coupon) Validate(subtotal decimal.Decimal, now time.Time) RejectionReason {
	if !c.IsActive {
		return RejectionInactive
	}
	if now.Before(c.StartsAt) {
		return RejectionNotStarted
	}
	if !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt) {
		return RejectionExpired
	}
	if c.Quantity == 0 {
		return RejectionExhausted
	}
	if subtotal.LessThan(c.MinOrderAmount) {
		return RejectionBelowMinimum
	}
	return RejectionNone
}

// ComputeDiscount returns the discount amount the coupon grants on the
// given subtotal. Percentage discounts are clamped to MaxDiscount when a
// cap is set; fixed discounts never exceed the subtotal so a total can
// never go negative. The function has no side effects.
func ComputeDiscount(c *Coupon, subtotal decimal.Decimal) decimal.Decimal {
	var discount decimal.Decimal
	switch c.DiscountType {
	case DiscountPercentage:
		discount = subtotal.Mul(c.DiscountValue).Div(decimal.NewFromInt(100))
		if c.MaxDiscount.IsPositive() && discount.GreaterThan(c.MaxDiscount) {
			discount = c.MaxDiscount
		}
	case DiscountFixed:
		discount = c.DiscountValue
	default:
		return decimal.Zero
	}
	if discount.GreaterThan(subtotal) {
		discount = subtotal
	}
	if discount.IsNegative() {
		return decimal.Zero
	}
	return discount.Round(2)
}

package po

import (
	"time"

	"shopcore/domain/coupon"

	"github.com/shopspring/decimal"
)

type CouponPO struct {
	ID             string          `gorm:"primaryKey;size:64"`
	Code           string          `gorm:"size:50;uniqueIndex;not null"`
	DiscountType   string          `gorm:"size:20;not null"`
	DiscountValue  decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	MinOrderAmount decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	MaxDiscount    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Quantity       int             `gorm:"not null;default:-1"`
	StartsAt       time.Time       `gorm:"not null"`
	ExpiresAt      time.Time
	IsActive       bool      `gorm:"not null;default:true"`
	IsAutoApply    bool      `gorm:"not null;default:false"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}

func (CouponPO) TableName() string { return "coupons" }

func FromCoupon(c *coupon.Coupon) *CouponPO {
	return &CouponPO{
		ID:             c.ID,
		Code:           c.Code,
		DiscountType:   string(c.DiscountType),
		DiscountValue:  c.DiscountValue,
		MinOrderAmount: c.MinOrderAmount,
		MaxDiscount:    c.MaxDiscount,
		Quantity:       c.Quantity,
		StartsAt:       c.StartsAt,
		ExpiresAt:      c.ExpiresAt,
		IsActive:       c.IsActive,
		IsAutoApply:    c.IsAutoApply,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

func (po *CouponPO) ToDomain() *coupon.Coupon {
	return &coupon.Coupon{
		ID:             po.ID,
		Code:           po.Code,
		DiscountType:   coupon.DiscountType(po.DiscountType),
		DiscountValue:  po.DiscountValue,
		MinOrderAmount: po.MinOrderAmount,
		MaxDiscount:    po.MaxDiscount,
		Quantity:       po.Quantity,
		StartsAt:       po.StartsAt,
		ExpiresAt:      po.ExpiresAt,
		IsActive:       po.IsActive,
		IsAutoApply:    po.IsAutoApply,
		CreatedAt:      po.CreatedAt,
		UpdatedAt:      po.UpdatedAt,
	}
}

package coupon

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestComputeDiscount(t *testing.T) {
	tests := []struct {
		name     string
		coupon   *Coupon
		subtotal string
		want     string
	}{
		{
			name:     "percentage without cap",
			coupon:   &Coupon{DiscountType: DiscountPercentage, DiscountValue: dec("10")},
			subtotal: "200.00",
			want:     "20",
		},
		{
			name:     "percentage clamped to max discount",
			coupon:   &Coupon{DiscountType: DiscountPercentage, DiscountValue: dec("10"), MaxDiscount: dec("20.00")},
			subtotal: "250.00",
			want:     "20",
		},
		{
			name:     "percentage below cap unaffected",
			coupon:   &Coupon{DiscountType: DiscountPercentage, DiscountValue: dec("10"), MaxDiscount: dec("20.00")},
			subtotal: "150.00",
			want:     "15",
		},
		{
			name:     "zero max discount means uncapped",
			coupon:   &Coupon{DiscountType: DiscountPercentage, DiscountValue: dec("50")},
			subtotal: "1000.00",
			want:     "500",
		},
		{
			name:     "fixed discount",
			coupon:   &Coupon{DiscountType: DiscountFixed, DiscountValue: dec("30.00")},
			subtotal: "100.00",
			want:     "30",
		},
		{
			name:     "fixed discount clamped to subtotal",
			coupon:   &Coupon{DiscountType: DiscountFixed, DiscountValue: dec("150.00")},
			subtotal: "100.00",
			want:     "100",
		},
		{
			name:     "unknown type grants nothing",
			coupon:   &Coupon{DiscountType: "BOGOF", DiscountValue: dec("10")},
			subtotal: "100.00",
			want:     "0",
		},
		{
			name:     "fractional percentage rounds to cents",
			coupon:   &Coupon{DiscountType: DiscountPercentage, DiscountValue: dec("7.5")},
			subtotal: "99.99",
			want:     "7.5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeDiscount(tt.coupon, dec(tt.subtotal))
			assert.True(t, got.Equal(dec(tt.want)), "got %s, want %s", got, tt.want)
		})
	}
}

func TestValidate(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	base := Coupon{
		Code:          "SAVE10",
		DiscountType:  DiscountPercentage,
		DiscountValue: dec("10"),
		StartsAt:      now.AddDate(0, -1, 0),
		ExpiresAt:     now.AddDate(0, 1, 0),
		Quantity:      5,
		IsActive:      true,
	}

	tests := []struct {
		name     string
		mutate   func(*Coupon)
		subtotal string
		want     RejectionReason
	}{
		{"valid coupon", func(c *Coupon) {}, "100.00", RejectionNone},
		{"inactive", func(c *Coupon) { c.IsActive = false }, "100.00", RejectionInactive},
		{"not started", func(c *Coupon) { c.StartsAt = now.AddDate(0, 0, 1) }, "100.00", RejectionNotStarted},
		{"expired", func(c *Coupon) { c.ExpiresAt = now.AddDate(0, 0, -1) }, "100.00", RejectionExpired},
		{"exhausted", func(c *Coupon) { c.Quantity = 0 }, "100.00", RejectionExhausted},
		{"unlimited quantity passes", func(c *Coupon) { c.Quantity = UnlimitedQuantity }, "100.00", RejectionNone},
		{"below minimum", func(c *Coupon) { c.MinOrderAmount = dec("500.00") }, "100.00", RejectionBelowMinimum},
		{"at minimum passes", func(c *Coupon) { c.MinOrderAmount = dec("100.00") }, "100.00", RejectionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base
			tt.mutate(&c)
			assert.Equal(t, tt.want, c.Validate(dec(tt.subtotal), now))
		})
	}
}

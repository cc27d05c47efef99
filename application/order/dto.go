package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderRequest carries the checkout input. Coupon codes are
// processed best-effort: each one either applies or comes back with a
// rejection reason.
type CreateOrderRequest struct {
	UserID      string             `json:"-"`
	AddressID   string             `json:"address_id" binding:"required"`
	PaymentType string             `json:"payment_type" binding:"required,oneof=CASH BANK_TRANSFER"`
	CouponCodes []string           `json:"coupon_codes"`
	Items       []OrderItemRequest `json:"items" binding:"required,min=1"`
}

type OrderItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// CouponResult reports what happened to one supplied coupon code.
// Exactly one of DiscountAmount / RejectionReason is meaningful,
// selected by Applied.
type CouponResult struct {
	Code            string          `json:"code"`
	Applied         bool            `json:"applied"`
	DiscountAmount  decimal.Decimal `json:"discount_amount,omitempty"`
	RejectionReason string          `json:"rejection_reason,omitempty"`
}

type CreateOrderResponse struct {
	Order         *OrderResponse `json:"order"`
	CouponResults []CouponResult `json:"coupon_results"`
}

type OrderResponse struct {
	ID             string              `json:"id"`
	Number         string              `json:"number"`
	UserID         string              `json:"user_id"`
	AddressID      string              `json:"address_id"`
	Items          []OrderItemResponse `json:"items"`
	Subtotal       decimal.Decimal     `json:"subtotal"`
	CouponDiscount decimal.Decimal     `json:"coupon_discount"`
	DeliveryCharge decimal.Decimal     `json:"delivery_charge"`
	TotalAmount    decimal.Decimal     `json:"total_amount"`
	Status         string              `json:"status"`
	PaymentType    string              `json:"payment_type"`
	PaymentStatus  string              `json:"payment_status"`
	AppliedCoupons []string            `json:"applied_coupons,omitempty"`
	CancelReason   string              `json:"cancel_reason,omitempty"`
	CancelledAt    *time.Time          `json:"cancelled_at,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

type OrderItemResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

type CancelOrderRequest struct {
	UserID  string `json:"-"`
	OrderID string `json:"-"`
	Reason  string `json:"reason" binding:"required"`
}

type ListOrdersResponse struct {
	Orders   []*OrderResponse `json:"orders"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
}

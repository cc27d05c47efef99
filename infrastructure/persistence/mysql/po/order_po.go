package po

import (
	"strings"
	"time"

	"shopcore/domain/order"

	"github.com/shopspring/decimal"
)

type OrderPO struct {
	ID             string          `gorm:"primaryKey;size:64"`
	Number         string          `gorm:"size:8;uniqueIndex;not null"`
	UserID         string          `gorm:"size:64;index;not null"`
	AddressID      string          `gorm:"size:64;not null"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CouponDiscount decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	DeliveryCharge decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Status         string          `gorm:"size:20;not null"`
	PaymentType    string          `gorm:"size:20;not null"`
	PaymentStatus  string          `gorm:"size:20;not null"`
	AppliedCoupons string          `gorm:"size:500"` // comma-joined codes
	CancelReason   string          `gorm:"size:500"`
	CancelledAt    *time.Time
	IsActive       bool      `gorm:"not null;default:true"`
	Version        int       `gorm:"not null;default:0"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}

func (OrderPO) TableName() string { return "orders" }

type OrderItemPO struct {
	ID          string          `gorm:"primaryKey;size:64"`
	OrderID     string          `gorm:"size:64;index;not null"`
	ProductID   string          `gorm:"size:64;not null"`
	ProductName string          `gorm:"size:255;not null"`
	Quantity    int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	LineTotal   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
}

func (OrderItemPO) TableName() string { return "order_items" }

func FromOrder(o *order.Order) (*OrderPO, []OrderItemPO) {
	orderPO := &OrderPO{
		ID:             o.ID,
		Number:         o.Number,
		UserID:         o.UserID,
		AddressID:      o.AddressID,
		Subtotal:       o.Subtotal,
		CouponDiscount: o.CouponDiscount,
		DeliveryCharge: o.DeliveryCharge,
		TotalAmount:    o.TotalAmount,
		Status:         string(o.Status),
		PaymentType:    string(o.PaymentType),
		PaymentStatus:  string(o.PaymentStatus),
		AppliedCoupons: strings.Join(o.AppliedCoupons, ","),
		CancelReason:   o.CancelReason,
		CancelledAt:    o.CancelledAt,
		IsActive:       o.IsActive,
		Version:        o.Version,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}

	itemPOs := make([]OrderItemPO, len(o.Items))
	for i, item := range o.Items {
		itemPOs[i] = OrderItemPO{
			ID:          item.ID,
			OrderID:     o.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			LineTotal:   item.LineTotal,
		}
	}
	return orderPO, itemPOs
}

func (po *OrderPO) ToDomain(itemPOs []OrderItemPO) *order.Order {
	items := make([]order.Item, len(itemPOs))
	for i, itemPO := range itemPOs {
		items[i] = order.Item{
			ID:          itemPO.ID,
			ProductID:   itemPO.ProductID,
			ProductName: itemPO.ProductName,
			Quantity:    itemPO.Quantity,
			UnitPrice:   itemPO.UnitPrice,
			LineTotal:   itemPO.LineTotal,
		}
	}

	var coupons []string
	if po.AppliedCoupons != "" {
		coupons = strings.Split(po.AppliedCoupons, ",")
	}

	return &order.Order{
		ID:             po.ID,
		Number:         po.Number,
		UserID:         po.UserID,
		AddressID:      po.AddressID,
		Items:          items,
		Subtotal:       po.Subtotal,
		CouponDiscount: po.CouponDiscount,
		DeliveryCharge: po.DeliveryCharge,
		TotalAmount:    po.TotalAmount,
		Status:         order.Status(po.Status),
		PaymentType:    order.PaymentType(po.PaymentType),
		PaymentStatus:  order.PaymentStatus(po.PaymentStatus),
		AppliedCoupons: coupons,
		CancelReason:   po.CancelReason,
		CancelledAt:    po.CancelledAt,
		IsActive:       po.IsActive,
		Version:        po.Version,
		CreatedAt:      po.CreatedAt,
		UpdatedAt:      po.UpdatedAt,
	}
}

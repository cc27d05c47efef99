package po

import (
	"time"

	"shopcore/domain/cart"
)

type CartItemPO struct {
	ID        string    `gorm:"primaryKey;size:64"`
	UserID    string    `gorm:"size:64;uniqueIndex:idx_cart_user_product;not null"`
	ProductID string    `gorm:"size:64;uniqueIndex:idx_cart_user_product;not null"`
	Quantity  int       `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (CartItemPO) TableName() string { return "cart_items" }

func FromCartItem(item *cart.Item) *CartItemPO {
	return &CartItemPO{
		ID:        item.ID,
		UserID:    item.UserID,
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
}

func (po *CartItemPO) ToDomain() *cart.Item {
	return &cart.Item{
		ID:        po.ID,
		UserID:    po.UserID,
		ProductID: po.ProductID,
		Quantity:  po.Quantity,
		CreatedAt: po.CreatedAt,
		UpdatedAt: po.UpdatedAt,
	}
}

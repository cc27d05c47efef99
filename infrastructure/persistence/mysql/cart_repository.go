package mysql

import (
	"context"
	"fmt"

	"shopcore/domain/cart"
	"shopcore/infrastructure/persistence"
	"shopcore/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{db: db}
}

func (r *CartRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// Upsert adds the item or, if the product is already in the cart, adds
// the quantities together.
func (r *CartRepository) Upsert(ctx context.Context, item *cart.Item) error {
	err := r.getDB(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity": gorm.Expr("quantity + ?", item.Quantity),
		}),
	}).Create(po.FromCartItem(item)).Error
	if err != nil {
		return fmt.Errorf("failed to upsert cart item: %w", err)
	}
	return nil
}

func (r *CartRepository) UpdateQuantity(ctx context.Context, userID, productID string, quantity int) error {
	result := r.getDB(ctx).Model(&po.CartItemPO{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Update("quantity", quantity)
	if result.Error != nil {
		return fmt.Errorf("failed to update cart quantity: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return cart.ErrItemNotFound
	}
	return nil
}

func (r *CartRepository) Remove(ctx context.Context, userID, productID string) error {
	result := r.getDB(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&po.CartItemPO{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove cart item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return cart.ErrItemNotFound
	}
	return nil
}

// RemoveProducts clears ordered products from the cart. Missing rows are
// not an error; the user may have emptied the cart concurrently.
func (r *CartRepository) RemoveProducts(ctx context.Context, userID string, productIDs []string) error {
	if len(productIDs) == 0 {
		return nil
	}
	err := r.getDB(ctx).
		Where("user_id = ? AND product_id IN ?", userID, productIDs).
		Delete(&po.CartItemPO{}).Error
	if err != nil {
		return fmt.Errorf("failed to remove cart items: %w", err)
	}
	return nil
}

func (r *CartRepository) ListByUser(ctx context.Context, userID string) ([]*cart.Item, error) {
	var itemPOs []po.CartItemPO
	err := r.getDB(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&itemPOs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list cart items: %w", err)
	}

	items := make([]*cart.Item, len(itemPOs))
	for i := range itemPOs {
		items[i] = itemPOs[i].ToDomain()
	}
	return items, nil
}

func (r *CartRepository) Clear(ctx context.Context, userID string) error {
	err := r.getDB(ctx).
		Where("user_id = ?", userID).
		Delete(&po.CartItemPO{}).Error
	if err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

var _ cart.Repository = (*CartRepository)(nil)

package mysql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"shopcore/domain/order"
	"shopcore/infrastructure/persistence"
	"shopcore/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// Create inserts the order header and all its items. Callers run this
// inside a unit of work so header and items commit together.
func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	db := r.getDB(ctx)

	orderPO, itemPOs := po.FromOrder(o)
	if err := db.Create(orderPO).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	if len(itemPOs) > 0 {
		if err := db.Create(&itemPOs).Error; err != nil {
			return fmt.Errorf("failed to create order items: %w", err)
		}
	}
	return nil
}

// Update writes the mutable order fields guarded by the version column.
// A version mismatch means another writer got there first.
func (r *OrderRepository) Update(ctx context.Context, o *order.Order) error {
	orderPO, _ := po.FromOrder(o)

	result := r.getDB(ctx).Model(&po.OrderPO{}).
		Where("id = ? AND version = ?", o.ID, o.Version).
		Updates(map[string]interface{}{
			"status":         orderPO.Status,
			"payment_status": orderPO.PaymentStatus,
			"cancel_reason":  orderPO.CancelReason,
			"cancelled_at":   orderPO.CancelledAt,
			"is_active":      orderPO.IsActive,
			"version":        o.Version + 1,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update order: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.getDB(ctx).Model(&po.OrderPO{}).Where("id = ?", o.ID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check order: %w", err)
		}
		if count == 0 {
			return order.ErrOrderNotFound
		}
		return order.ErrConcurrentModification
	}

	o.BumpVersion()
	return nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*order.Order, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *OrderRepository) FindByNumber(ctx context.Context, number string) (*order.Order, error) {
	return r.findOne(ctx, "number = ?", strings.TrimSpace(number))
}

func (r *OrderRepository) findOne(ctx context.Context, query string, arg string) (*order.Order, error) {
	db := r.getDB(ctx)

	var orderPO po.OrderPO
	err := db.First(&orderPO, query, arg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to find order: %w", err)
	}

	itemPOs, err := r.loadItems(db, orderPO.ID)
	if err != nil {
		return nil, err
	}
	return orderPO.ToDomain(itemPOs), nil
}

func (r *OrderRepository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	var count int64
	err := r.getDB(ctx).Model(&po.OrderPO{}).
		Where("number = ?", number).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check order number: %w", err)
	}
	return count > 0, nil
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID string, page, pageSize int) ([]*order.Order, int64, error) {
	db := r.getDB(ctx)

	base := db.Model(&po.OrderPO{}).Where("user_id = ?", userID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	var orderPOs []po.OrderPO
	err := base.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&orderPOs).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}

	orders := make([]*order.Order, len(orderPOs))
	for i := range orderPOs {
		itemPOs, err := r.loadItems(db, orderPOs[i].ID)
		if err != nil {
			return nil, 0, err
		}
		orders[i] = orderPOs[i].ToDomain(itemPOs)
	}
	return orders, total, nil
}

func (r *OrderRepository) loadItems(db *gorm.DB, orderID string) ([]po.OrderItemPO, error) {
	var itemPOs []po.OrderItemPO
	if err := db.Where("order_id = ?", orderID).Find(&itemPOs).Error; err != nil {
		return nil, fmt.Errorf("failed to load order items: %w", err)
	}
	return itemPOs, nil
}

var _ order.Repository = (*OrderRepository)(nil)

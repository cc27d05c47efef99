package mysql

import (
	"context"
	"fmt"

	"shopcore/domain/stock"
	"shopcore/infrastructure/persistence"
	"shopcore/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

// StockMovementRepository only inserts and reads; the ledger has no
// update or delete path.
type StockMovementRepository struct {
	db *gorm.DB
}

func NewStockMovementRepository(db *gorm.DB) *StockMovementRepository {
	return &StockMovementRepository{db: db}
}

func (r *StockMovementRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *StockMovementRepository) Append(ctx context.Context, m *stock.Movement) error {
	if err := r.getDB(ctx).Create(po.FromMovement(m)).Error; err != nil {
		return fmt.Errorf("failed to append stock movement: %w", err)
	}
	return nil
}

func (r *StockMovementRepository) ListByProduct(ctx context.Context, productID string, limit int) ([]*stock.Movement, error) {
	if limit < 1 {
		limit = 50
	}

	var movementPOs []po.StockMovementPO
	err := r.getDB(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Limit(limit).
		Find(&movementPOs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list stock movements: %w", err)
	}
	return toMovements(movementPOs), nil
}

func (r *StockMovementRepository) ListByReference(ctx context.Context, refType stock.ReferenceType, refID string) ([]*stock.Movement, error) {
	var movementPOs []po.StockMovementPO
	err := r.getDB(ctx).
		Where("reference_type = ? AND reference_id = ?", string(refType), refID).
		Order("created_at ASC").
		Find(&movementPOs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list stock movements: %w", err)
	}
	return toMovements(movementPOs), nil
}

func toMovements(movementPOs []po.StockMovementPO) []*stock.Movement {
	movements := make([]*stock.Movement, len(movementPOs))
	for i := range movementPOs {
		movements[i] = movementPOs[i].ToDomain()
	}
	return movements
}

var _ stock.Repository = (*StockMovementRepository)(nil)

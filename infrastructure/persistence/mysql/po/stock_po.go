package po

import (
	"time"

	"shopcore/domain/stock"

	"github.com/shopspring/decimal"
)

// StockMovementPO rows are insert-only. The product reference is a plain
// ID plus a denormalized name, deliberately without a foreign key, so
// ledger entries outlive the products they describe.
type StockMovementPO struct {
	ID            string          `gorm:"primaryKey;size:64"`
	ProductID     string          `gorm:"size:64;index;not null"`
	ProductName   string          `gorm:"size:255;not null"`
	QuantityDelta int             `gorm:"not null"`
	PreviousStock int             `gorm:"not null"`
	NewStock      int             `gorm:"not null"`
	ReferenceType string          `gorm:"size:20;index:idx_stock_movements_ref;not null"`
	ReferenceID   string          `gorm:"size:64;index:idx_stock_movements_ref;not null"`
	UnitCost      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Reason        string          `gorm:"size:500"`
	ActorID       string          `gorm:"size:64"`
	CreatedAt     time.Time       `gorm:"autoCreateTime;index"`
}

func (StockMovementPO) TableName() string { return "stock_movements" }

func FromMovement(m *stock.Movement) *StockMovementPO {
	return &StockMovementPO{
		ID:            m.ID,
		ProductID:     m.ProductID,
		ProductName:   m.ProductName,
		QuantityDelta: m.QuantityDelta,
		PreviousStock: m.PreviousStock,
		NewStock:      m.NewStock,
		ReferenceType: string(m.ReferenceType),
		ReferenceID:   m.ReferenceID,
		UnitCost:      m.UnitCost,
		Reason:        m.Reason,
		ActorID:       m.ActorID,
		CreatedAt:     m.CreatedAt,
	}
}

func (po *StockMovementPO) ToDomain() *stock.Movement {
	return &stock.Movement{
		ID:            po.ID,
		ProductID:     po.ProductID,
		ProductName:   po.ProductName,
		QuantityDelta: po.QuantityDelta,
		PreviousStock: po.PreviousStock,
		NewStock:      po.NewStock,
		ReferenceType: stock.ReferenceType(po.ReferenceType),
		ReferenceID:   po.ReferenceID,
		UnitCost:      po.UnitCost,
		Reason:        po.Reason,
		ActorID:       po.ActorID,
		CreatedAt:     po.CreatedAt,
	}
}

// Package stock defines the append-only stock movement ledger. A
// movement is written for every stock quantity change and is never
// updated or deleted afterwards.
package stock

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReferenceType classifies what caused a stock movement.
type ReferenceType string

const (
	ReferenceSale         ReferenceType = "SALE"
	ReferenceCancellation ReferenceType = "CANCELLATION"
	ReferenceAdjustment   ReferenceType = "ADJUSTMENT"
)

// Movement is one ledger entry. ProductName is denormalized so the entry
// survives product deletion; the ledger carries no cascading foreign key.
type Movement struct {
	ID            string
	ProductID     string
	ProductName   string
	QuantityDelta int // negative for sales, positive for restores
	PreviousStock int
	NewStock      int
	ReferenceType ReferenceType
	ReferenceID   string
	UnitCost      decimal.Decimal
	Reason        string
	ActorID       string
	CreatedAt     time.Time
}

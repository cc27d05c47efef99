// Package catalog holds the product catalog entities: products and the
// category, manufacturer and publisher references they carry.
//
// Product stock quantity is never changed through this package. All
// stock mutations go through the order workflow so that every change is
// paired with a stock ledger entry.
package catalog

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrProductNotFound      = errors.New("product not found")
	ErrInsufficientStock    = errors.New("insufficient stock")
	ErrProductInactive      = errors.New("product is not active")
	ErrCategoryNotFound     = errors.New("category not found")
	ErrManufacturerNotFound = errors.New("manufacturer not found")
	ErrPublisherNotFound    = errors.New("publisher not found")
	ErrDuplicateSlug        = errors.New("slug already exists")
)

// Product is a catalog entry. Price is the live price; orders snapshot
// it at creation time and never re-read it.
type Product struct {
	ID             string
	Name           string
	Slug           string
	Description    string
	Price          decimal.Decimal
	UnitCost       decimal.Decimal
	StockQuantity  int
	CategoryID     string
	ManufacturerID string
	PublisherID    string
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Available reports whether the product can be sold in the given quantity
// based on the stock value loaded with it. The authoritative check is the
// conditional decrement performed at order time.
func (p *Product) Available(quantity int) bool {
	return p.IsActive && quantity > 0 && p.StockQuantity >= quantity
}

type Category struct {
	ID        string
	Name      string
	Slug      string
	ParentID  string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Manufacturer struct {
	ID        string
	Name      string
	Country   string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Publisher struct {
	ID        string
	Name      string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Package po holds the persistence objects: plain structs mapped to
// tables. No business logic and no GORM associations live here;
// relationships are carried as plain ID columns.
package po

import (
	"time"

	"shopcore/domain/catalog"

	"github.com/shopspring/decimal"
)

type ProductPO struct {
	ID             string          `gorm:"primaryKey;size:64"`
	Name           string          `gorm:"size:255;not null"`
	Slug           string          `gorm:"size:255;uniqueIndex;not null"`
	Description    string          `gorm:"type:text"`
	Price          decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	UnitCost       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	StockQuantity  int             `gorm:"not null;default:0"`
	CategoryID     string          `gorm:"size:64;index"`
	ManufacturerID string          `gorm:"size:64;index"`
	PublisherID    string          `gorm:"size:64;index"`
	IsActive       bool            `gorm:"not null;default:true"`
	CreatedAt      time.Time       `gorm:"autoCreateTime"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime"`
}

func (ProductPO) TableName() string { return "products" }

func FromProduct(p *catalog.Product) *ProductPO {
	return &ProductPO{
		ID:             p.ID,
		Name:           p.Name,
		Slug:           p.Slug,
		Description:    p.Description,
		Price:          p.Price,
		UnitCost:       p.UnitCost,
		StockQuantity:  p.StockQuantity,
		CategoryID:     p.CategoryID,
		ManufacturerID: p.ManufacturerID,
		PublisherID:    p.PublisherID,
		IsActive:       p.IsActive,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func (po *ProductPO) ToDomain() *catalog.Product {
	return &catalog.Product{
		ID:             po.ID,
		Name:           po.Name,
		Slug:           po.Slug,
		Description:    po.Description,
		Price:          po.Price,
		UnitCost:       po.UnitCost,
		StockQuantity:  po.StockQuantity,
		CategoryID:     po.CategoryID,
		ManufacturerID: po.ManufacturerID,
		PublisherID:    po.PublisherID,
		IsActive:       po.IsActive,
		CreatedAt:      po.CreatedAt,
		UpdatedAt:      po.UpdatedAt,
	}
}

type CategoryPO struct {
	ID        string    `gorm:"primaryKey;size:64"`
	Name      string    `gorm:"size:255;not null"`
	Slug      string    `gorm:"size:255;uniqueIndex;not null"`
	ParentID  string    `gorm:"size:64;index"`
	IsActive  bool      `gorm:"not null;default:true"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (CategoryPO) TableName() string { return "categories" }

func FromCategory(c *catalog.Category) *CategoryPO {
	return &CategoryPO{
		ID: c.ID, Name: c.Name, Slug: c.Slug, ParentID: c.ParentID,
		IsActive: c.IsActive, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt,
	}
}

func (po *CategoryPO) ToDomain() *catalog.Category {
	return &catalog.Category{
		ID: po.ID, Name: po.Name, Slug: po.Slug, ParentID: po.ParentID,
		IsActive: po.IsActive, CreatedAt: po.CreatedAt, UpdatedAt: po.UpdatedAt,
	}
}

type ManufacturerPO struct {
	ID        string    `gorm:"primaryKey;size:64"`
	Name      string    `gorm:"size:255;not null"`
	Country   string    `gorm:"size:100"`
	IsActive  bool      `gorm:"not null;default:true"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (ManufacturerPO) TableName() string { return "manufacturers" }

func FromManufacturer(m *catalog.Manufacturer) *ManufacturerPO {
	return &ManufacturerPO{
		ID: m.ID, Name: m.Name, Country: m.Country,
		IsActive: m.IsActive, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt,
	}
}

func (po *ManufacturerPO) ToDomain() *catalog.Manufacturer {
	return &catalog.Manufacturer{
		ID: po.ID, Name: po.Name, Country: po.Country,
		IsActive: po.IsActive, CreatedAt: po.CreatedAt, UpdatedAt: po.UpdatedAt,
	}
}

type PublisherPO struct {
	ID        string    `gorm:"primaryKey;size:64"`
	Name      string    `gorm:"size:255;not null"`
	IsActive  bool      `gorm:"not null;default:true"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (PublisherPO) TableName() string { return "publishers" }

func FromPublisher(p *catalog.Publisher) *PublisherPO {
	return &PublisherPO{
		ID: p.ID, Name: p.Name,
		IsActive: p.IsActive, CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt,
	}
}

func (po *PublisherPO) ToDomain() *catalog.Publisher {
	return &catalog.Publisher{
		ID: po.ID, Name: po.Name,
		IsActive: po.IsActive, CreatedAt: po.CreatedAt, UpdatedAt: po.UpdatedAt,
	}
}

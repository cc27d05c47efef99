package mysql

import (
	"context"
	"errors"
	"fmt"

	"shopcore/domain/catalog"
	"shopcore/infrastructure/persistence"
	"shopcore/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *ProductRepository) Create(ctx context.Context, p *catalog.Product) error {
	if err := r.getDB(ctx).Create(po.FromProduct(p)).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return catalog.ErrDuplicateSlug
		}
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func (r *ProductRepository) Update(ctx context.Context, p *catalog.Product) error {
	result := r.getDB(ctx).Model(&po.ProductPO{}).
		Where("id = ?", p.ID).
		Updates(map[string]interface{}{
			"name":            p.Name,
			"slug":            p.Slug,
			"description":     p.Description,
			"price":           p.Price,
			"unit_cost":       p.UnitCost,
			"category_id":     p.CategoryID,
			"manufacturer_id": p.ManufacturerID,
			"publisher_id":    p.PublisherID,
			"is_active":       p.IsActive,
		})
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return catalog.ErrDuplicateSlug
		}
		return fmt.Errorf("failed to update product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return catalog.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*catalog.Product, error) {
	var productPO po.ProductPO
	err := r.getDB(ctx).First(&productPO, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	return productPO.ToDomain(), nil
}

func (r *ProductRepository) List(ctx context.Context, filter catalog.ListFilter) ([]*catalog.Product, int64, error) {
	db := r.getDB(ctx).Model(&po.ProductPO{})

	if filter.CategoryID != "" {
		db = db.Where("category_id = ?", filter.CategoryID)
	}
	if filter.ManufacturerID != "" {
		db = db.Where("manufacturer_id = ?", filter.ManufacturerID)
	}
	if filter.PublisherID != "" {
		db = db.Where("publisher_id = ?", filter.PublisherID)
	}
	if filter.ActiveOnly {
		db = db.Where("is_active = ?", true)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	var productPOs []po.ProductPO
	err := db.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&productPOs).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}

	products := make([]*catalog.Product, len(productPOs))
	for i := range productPOs {
		products[i] = productPOs[i].ToDomain()
	}
	return products, total, nil
}

func (r *ProductRepository) Deactivate(ctx context.Context, id string) error {
	result := r.getDB(ctx).Model(&po.ProductPO{}).
		Where("id = ?", id).
		Update("is_active", false)
	if result.Error != nil {
		return fmt.Errorf("failed to deactivate product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return catalog.ErrProductNotFound
	}
	return nil
}

// DecrementStock runs a single conditional UPDATE so two concurrent
// orders can never drive stock below zero. The new stock level is read
// back afterwards; inside a transaction that read sees the decremented
// row.
func (r *ProductRepository) DecrementStock(ctx context.Context, productID string, quantity int) (int, error) {
	db := r.getDB(ctx)

	result := db.Model(&po.ProductPO{}).
		Where("id = ? AND stock_quantity >= ?", productID, quantity).
		Update("stock_quantity", gorm.Expr("stock_quantity - ?", quantity))
	if result.Error != nil {
		return 0, fmt.Errorf("failed to decrement stock: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := db.Model(&po.ProductPO{}).Where("id = ?", productID).Count(&count).Error; err != nil {
			return 0, fmt.Errorf("failed to check product: %w", err)
		}
		if count == 0 {
			return 0, catalog.ErrProductNotFound
		}
		return 0, catalog.ErrInsufficientStock
	}

	return r.readStock(db, productID)
}

// IncrementStock restores stock on cancellation.
func (r *ProductRepository) IncrementStock(ctx context.Context, productID string, quantity int) (int, error) {
	db := r.getDB(ctx)

	result := db.Model(&po.ProductPO{}).
		Where("id = ?", productID).
		Update("stock_quantity", gorm.Expr("stock_quantity + ?", quantity))
	if result.Error != nil {
		return 0, fmt.Errorf("failed to increment stock: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return 0, catalog.ErrProductNotFound
	}

	return r.readStock(db, productID)
}

func (r *ProductRepository) readStock(db *gorm.DB, productID string) (int, error) {
	var stock int
	err := db.Model(&po.ProductPO{}).
		Where("id = ?", productID).
		Select("stock_quantity").
		Scan(&stock).Error
	if err != nil {
		return 0, fmt.Errorf("failed to read stock: %w", err)
	}
	return stock, nil
}

var _ catalog.ProductRepository = (*ProductRepository)(nil)

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

// CategoryRepository, ManufacturerRepository and PublisherRepository are
// simple lookup tables with the same shape; they share no code on
// purpose to keep the PO mapping explicit.

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *CategoryRepository) Create(ctx context.Context, c *catalog.Category) error {
	if err := r.getDB(ctx).Create(po.FromCategory(c)).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return catalog.ErrDuplicateSlug
		}
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

func (r *CategoryRepository) Update(ctx context.Context, c *catalog.Category) error {
	result := r.getDB(ctx).Model(&po.CategoryPO{}).
		Where("id = ?", c.ID).
		Updates(map[string]interface{}{
			"name":      c.Name,
			"slug":      c.Slug,
			"parent_id": c.ParentID,
			"is_active": c.IsActive,
		})
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return catalog.ErrDuplicateSlug
		}
		return fmt.Errorf("failed to update category: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return catalog.ErrCategoryNotFound
	}
	return nil
}

func (r *CategoryRepository) FindByID(ctx context.Context, id string) (*catalog.Category, error) {
	var categoryPO po.CategoryPO
	err := r.getDB(ctx).First(&categoryPO, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	return categoryPO.ToDomain(), nil
}

func (r *CategoryRepository) List(ctx context.Context, activeOnly bool) ([]*catalog.Category, error) {
	db := r.getDB(ctx).Model(&po.CategoryPO{})
	if activeOnly {
		db = db.Where("is_active = ?", true)
	}

	var categoryPOs []po.CategoryPO
	if err := db.Order("name ASC").Find(&categoryPOs).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	categories := make([]*catalog.Category, len(categoryPOs))
	for i := range categoryPOs {
		categories[i] = categoryPOs[i].ToDomain()
	}
	return categories, nil
}

func (r *CategoryRepository) Deactivate(ctx context.Context, id string) error {
	result := r.getDB(ctx).Model(&po.CategoryPO{}).
		Where("id = ?", id).
		Update("is_active", false)
	if result.Error != nil {
		return fmt.Errorf("failed to deactivate category: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return catalog.ErrCategoryNotFound
	}
	return nil
}

type ManufacturerRepository struct {
	db *gorm.DB
}

func NewManufacturerRepository(db *gorm.DB) *ManufacturerRepository {
	return &ManufacturerRepository{db: db}
}

func (r *ManufacturerRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *ManufacturerRepository) Create(ctx context.Context, m *catalog.Manufacturer) error {
	if err := r.getDB(ctx).Create(po.FromManufacturer(m)).Error; err != nil {
		return fmt.Errorf("failed to create manufacturer: %w", err)
	}
	return nil
}

func (r *ManufacturerRepository) Update(ctx context.Context, m *catalog.Manufacturer) error {
	result := r.getDB(ctx).Model(&po.ManufacturerPO{}).
		Where("id = ?", m.ID).
		Updates(map[string]interface{}{
			"name":      m.Name,
			"country":   m.Country,
			"is_active": m.IsActive,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update manufacturer: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return catalog.ErrManufacturerNotFound
	}
	return nil
}

func (r *ManufacturerRepository) FindByID(ctx context.Context, id string) (*catalog.Manufacturer, error) {
	var manufacturerPO po.ManufacturerPO
	err := r.getDB(ctx).First(&manufacturerPO, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrManufacturerNotFound
		}
		return nil, fmt.Errorf("failed to find manufacturer: %w", err)
	}
	return manufacturerPO.ToDomain(), nil
}

func (r *ManufacturerRepository) List(ctx context.Context, activeOnly bool) ([]*catalog.Manufacturer, error) {
	db := r.getDB(ctx).Model(&po.ManufacturerPO{})
	if activeOnly {
		db = db.Where("is_active = ?", true)
	}

	var manufacturerPOs []po.ManufacturerPO
	if err := db.Order("name ASC").Find(&manufacturerPOs).Error; err != nil {
		return nil, fmt.Errorf("failed to list manufacturers: %w", err)
	}

	manufacturers := make([]*catalog.Manufacturer, len(manufacturerPOs))
	for i := range manufacturerPOs {
		manufacturers[i] = manufacturerPOs[i].ToDomain()
	}
	return manufacturers, nil
}

func (r *ManufacturerRepository) Deactivate(ctx context.Context, id string) error {
	result := r.getDB(ctx).Model(&po.ManufacturerPO{}).
		Where("id = ?", id).
		Update("is_active", false)
	if result.Error != nil {
		return fmt.Errorf("failed to deactivate manufacturer: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return catalog.ErrManufacturerNotFound
	}
	return nil
}

type PublisherRepository struct {
	db *gorm.DB
}

func NewPublisherRepository(db *gorm.DB) *PublisherRepository {
	return &PublisherRepository{db: db}
}

func (r *PublisherRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *PublisherRepository) Create(ctx context.Context, p *catalog.Publisher) error {
	if err := r.getDB(ctx).Create(po.FromPublisher(p)).Error; err != nil {
		return fmt.Errorf("failed to create publisher: %w", err)
	}
	return nil
}

func (r *PublisherRepository) Update(ctx context.Context, p *catalog.Publisher) error {
	result := r.getDB(ctx).Model(&po.PublisherPO{}).
		Where("id = ?", p.ID).
		Updates(map[string]interface{}{
			"name":      p.Name,
			"is_active": p.IsActive,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update publisher: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return catalog.ErrPublisherNotFound
	}
	return nil
}

func (r *PublisherRepository) FindByID(ctx context.Context, id string) (*catalog.Publisher, error) {
	var publisherPO po.PublisherPO
	err := r.getDB(ctx).First(&publisherPO, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrPublisherNotFound
		}
		return nil, fmt.Errorf("failed to find publisher: %w", err)
	}
	return publisherPO.ToDomain(), nil
}

func (r *PublisherRepository) List(ctx context.Context, activeOnly bool) ([]*catalog.Publisher, error) {
	db := r.getDB(ctx).Model(&po.PublisherPO{})
	if activeOnly {
		db = db.Where("is_active = ?", true)
	}

	var publisherPOs []po.PublisherPO
	if err := db.Order("name ASC").Find(&publisherPOs).Error; err != nil {
		return nil, fmt.Errorf("failed to list publishers: %w", err)
	}

	publishers := make([]*catalog.Publisher, len(publisherPOs))
	for i := range publisherPOs {
		publishers[i] = publisherPOs[i].ToDomain()
	}
	return publishers, nil
}

func (r *PublisherRepository) Deactivate(ctx context.Context, id string) error {
	result := r.getDB(ctx).Model(&po.PublisherPO{}).
		Where("id = ?", id).
		Update("is_active", false)
	if result.Error != nil {
		return fmt.Errorf("failed to deactivate publisher: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return catalog.ErrPublisherNotFound
	}
	return nil
}

var (
	_ catalog.CategoryRepository     = (*CategoryRepository)(nil)
	_ catalog.ManufacturerRepository = (*ManufacturerRepository)(nil)
	_ catalog.PublisherRepository    = (*PublisherRepository)(nil)
)

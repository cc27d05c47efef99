// Package catalog orchestrates product, category, manufacturer and
// publisher administration. Stock is deliberately absent from the update
// path; it only moves through the order workflow and manual adjustments,
// both of which write ledger entries.
package catalog

import (
	"context"
	"time"

	"shopcore/domain/catalog"
	"shopcore/domain/shared"
	"shopcore/domain/stock"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Service struct {
	productRepo      catalog.ProductRepository
	categoryRepo     catalog.CategoryRepository
	manufacturerRepo catalog.ManufacturerRepository
	publisherRepo    catalog.PublisherRepository
	stockRepo        stock.Repository
	uow              shared.UnitOfWork
}

func NewService(
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
	manufacturerRepo catalog.ManufacturerRepository,
	publisherRepo catalog.PublisherRepository,
	stockRepo stock.Repository,
	uow shared.UnitOfWork,
) *Service {
	return &Service{
		productRepo:      productRepo,
		categoryRepo:     categoryRepo,
		manufacturerRepo: manufacturerRepo,
		publisherRepo:    publisherRepo,
		stockRepo:        stockRepo,
		uow:              uow,
	}
}

type CreateProductRequest struct {
	Name           string `json:"name" binding:"required"`
	Slug           string `json:"slug" binding:"required"`
	Description    string `json:"description"`
	Price          string `json:"price" binding:"required"`
	UnitCost       string `json:"unit_cost"`
	InitialStock   int    `json:"initial_stock" binding:"min=0"`
	CategoryID     string `json:"category_id"`
	ManufacturerID string `json:"manufacturer_id"`
	PublisherID    string `json:"publisher_id"`
}

type UpdateProductRequest struct {
	ID             string `json:"-"`
	Name           string `json:"name" binding:"required"`
	Slug           string `json:"slug" binding:"required"`
	Description    string `json:"description"`
	Price          string `json:"price" binding:"required"`
	UnitCost       string `json:"unit_cost"`
	CategoryID     string `json:"category_id"`
	ManufacturerID string `json:"manufacturer_id"`
	PublisherID    string `json:"publisher_id"`
	IsActive       bool   `json:"is_active"`
}

// AdjustStockRequest is a manual correction, e.g. after a warehouse
// count. It goes through the same ledger discipline as sales.
type AdjustStockRequest struct {
	ProductID string `json:"-"`
	ActorID   string `json:"-"`
	Delta     int    `json:"delta" binding:"required"`
	Reason    string `json:"reason" binding:"required"`
}

// CreateProduct registers the product and, when it starts with stock, an
// initial ADJUSTMENT ledger entry, in one transaction.
func (s *Service) CreateProduct(ctx context.Context, req CreateProductRequest, actorID string) (*catalog.Product, error) {
	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		return nil, err
	}
	unitCost := decimal.Zero
	if req.UnitCost != "" {
		if unitCost, err = decimal.NewFromString(req.UnitCost); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	product := &catalog.Product{
		ID:             uuid.New().String(),
		Name:           req.Name,
		Slug:           req.Slug,
		Description:    req.Description,
		Price:          price,
		UnitCost:       unitCost,
		StockQuantity:  req.InitialStock,
		CategoryID:     req.CategoryID,
		ManufacturerID: req.ManufacturerID,
		PublisherID:    req.PublisherID,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err = s.uow.Execute(ctx, func(txCtx context.Context) error {
		if err := s.productRepo.Create(txCtx, product); err != nil {
			return err
		}
		if req.InitialStock > 0 {
			return s.stockRepo.Append(txCtx, &stock.Movement{
				ID:            uuid.New().String(),
				ProductID:     product.ID,
				ProductName:   product.Name,
				QuantityDelta: req.InitialStock,
				PreviousStock: 0,
				NewStock:      req.InitialStock,
				ReferenceType: stock.ReferenceAdjustment,
				ReferenceID:   product.ID,
				UnitCost:      unitCost,
				Reason:        "initial stock",
				ActorID:       actorID,
				CreatedAt:     now,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (s *Service) UpdateProduct(ctx context.Context, req UpdateProductRequest) (*catalog.Product, error) {
	product, err := s.productRepo.FindByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		return nil, err
	}
	if req.UnitCost != "" {
		if product.UnitCost, err = decimal.NewFromString(req.UnitCost); err != nil {
			return nil, err
		}
	}

	product.Name = req.Name
	product.Slug = req.Slug
	product.Description = req.Description
	product.Price = price
	product.CategoryID = req.CategoryID
	product.ManufacturerID = req.ManufacturerID
	product.PublisherID = req.PublisherID
	product.IsActive = req.IsActive

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// AdjustStock applies a signed manual stock correction with its
// ADJUSTMENT movement in one transaction.
func (s *Service) AdjustStock(ctx context.Context, req AdjustStockRequest) (*stock.Movement, error) {
	var movement *stock.Movement

	err := s.uow.Execute(ctx, func(txCtx context.Context) error {
		product, err := s.productRepo.FindByID(txCtx, req.ProductID)
		if err != nil {
			return err
		}

		var newStock int
		if req.Delta >= 0 {
			newStock, err = s.productRepo.IncrementStock(txCtx, req.ProductID, req.Delta)
		} else {
			newStock, err = s.productRepo.DecrementStock(txCtx, req.ProductID, -req.Delta)
		}
		if err != nil {
			return err
		}

		movement = &stock.Movement{
			ID:            uuid.New().String(),
			ProductID:     product.ID,
			ProductName:   product.Name,
			QuantityDelta: req.Delta,
			PreviousStock: newStock - req.Delta,
			NewStock:      newStock,
			ReferenceType: stock.ReferenceAdjustment,
			ReferenceID:   product.ID,
			UnitCost:      product.UnitCost,
			Reason:        req.Reason,
			ActorID:       req.ActorID,
			CreatedAt:     time.Now(),
		}
		return s.stockRepo.Append(txCtx, movement)
	})
	if err != nil {
		return nil, err
	}
	return movement, nil
}

func (s *Service) GetProduct(ctx context.Context, id string) (*catalog.Product, error) {
	return s.productRepo.FindByID(ctx, id)
}

func (s *Service) ListProducts(ctx context.Context, filter catalog.ListFilter) ([]*catalog.Product, int64, error) {
	return s.productRepo.List(ctx, filter)
}

func (s *Service) DeactivateProduct(ctx context.Context, id string) error {
	return s.productRepo.Deactivate(ctx, id)
}

func (s *Service) ListMovements(ctx context.Context, productID string, limit int) ([]*stock.Movement, error) {
	return s.stockRepo.ListByProduct(ctx, productID, limit)
}

func (s *Service) CreateCategory(ctx context.Context, name, slug, parentID string) (*catalog.Category, error) {
	now := time.Now()
	category := &catalog.Category{
		ID: uuid.New().String(), Name: name, Slug: slug, ParentID: parentID,
		IsActive: true, CreatedAt: now, UpdatedAt: now,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *Service) ListCategories(ctx context.Context, activeOnly bool) ([]*catalog.Category, error) {
	return s.categoryRepo.List(ctx, activeOnly)
}

func (s *Service) DeactivateCategory(ctx context.Context, id string) error {
	return s.categoryRepo.Deactivate(ctx, id)
}

func (s *Service) CreateManufacturer(ctx context.Context, name, country string) (*catalog.Manufacturer, error) {
	now := time.Now()
	manufacturer := &catalog.Manufacturer{
		ID: uuid.New().String(), Name: name, Country: country,
		IsActive: true, CreatedAt: now, UpdatedAt: now,
	}
	if err := s.manufacturerRepo.Create(ctx, manufacturer); err != nil {
		return nil, err
	}
	return manufacturer, nil
}

func (s *Service) ListManufacturers(ctx context.Context, activeOnly bool) ([]*catalog.Manufacturer, error) {
	return s.manufacturerRepo.List(ctx, activeOnly)
}

func (s *Service) CreatePublisher(ctx context.Context, name string) (*catalog.Publisher, error) {
	now := time.Now()
	publisher := &catalog.Publisher{
		ID: uuid.New().String(), Name: name,
		IsActive: true, CreatedAt: now, UpdatedAt: now,
	}
	if err := s.publisherRepo.Create(ctx, publisher); err != nil {
		return nil, err
	}
	return publisher, nil
}

func (s *Service) ListPublishers(ctx context.Context, activeOnly bool) ([]*catalog.Publisher, error) {
	return s.publisherRepo.List(ctx, activeOnly)
}

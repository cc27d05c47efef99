// Package cart manages the per-user shopping cart.
package cart

import (
	"context"
	"time"

	"shopcore/domain/cart"
	"shopcore/domain/catalog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Service struct {
	cartRepo    cart.Repository
	productRepo catalog.ProductRepository
}

func NewService(cartRepo cart.Repository, productRepo catalog.ProductRepository) *Service {
	return &Service{cartRepo: cartRepo, productRepo: productRepo}
}

// CartLine is a cart item joined with its current product data. Prices
// here are informational; the order snapshot happens at checkout.
type CartLine struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
	InStock     bool            `json:"in_stock"`
}

type CartView struct {
	Lines    []CartLine      `json:"lines"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

func (s *Service) Add(ctx context.Context, userID, productID string, quantity int) error {
	if quantity < 1 {
		return cart.ErrItemNotFound
	}
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return err
	}
	if !product.IsActive {
		return catalog.ErrProductInactive
	}

	now := time.Now()
	return s.cartRepo.Upsert(ctx, &cart.Item{
		ID:        uuid.New().String(),
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func (s *Service) UpdateQuantity(ctx context.Context, userID, productID string, quantity int) error {
	if quantity < 1 {
		return s.cartRepo.Remove(ctx, userID, productID)
	}
	return s.cartRepo.UpdateQuantity(ctx, userID, productID, quantity)
}

func (s *Service) Remove(ctx context.Context, userID, productID string) error {
	return s.cartRepo.Remove(ctx, userID, productID)
}

func (s *Service) Clear(ctx context.Context, userID string) error {
	return s.cartRepo.Clear(ctx, userID)
}

// View joins cart items with live product data.
func (s *Service) View(ctx context.Context, userID string) (*CartView, error) {
	items, err := s.cartRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	view := &CartView{Subtotal: decimal.Zero}
	for _, item := range items {
		product, err := s.productRepo.FindByID(ctx, item.ProductID)
		if err != nil {
			// Product rows are never deleted; surface other failures.
			return nil, err
		}
		lineTotal := product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		view.Lines = append(view.Lines, CartLine{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    item.Quantity,
			UnitPrice:   product.Price,
			LineTotal:   lineTotal,
			InStock:     product.Available(item.Quantity),
		})
		view.Subtotal = view.Subtotal.Add(lineTotal)
	}
	return view, nil
}

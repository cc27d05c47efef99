package catalog

import "context"

// ListFilter narrows product listings.
type ListFilter struct {
	CategoryID     string
	ManufacturerID string
	PublisherID    string
	ActiveOnly     bool
	Page           int
	PageSize       int
}

// ProductRepository persists products.
//
/// DecrementStock and IncrementStock are conditional, atomic updates: the
// decrement applies only while enough stock remains and reports whether a
// row was changed. They are the only stock mutation paths.
type ProductRepository interface {
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error
	FindByID(ctx context.Context, id string) (*Product, error)
	List(ctx context.Context, filter ListFilter) ([]*Product, int64, error)
	Deactivate(ctx context.Context, id string) error

	// DecrementStock subtracts quantity from the product's stock if and
	// only if stock_quantity >= quantity, returning the stock value after
	// the decrement. Returns ErrInsufficientStock when the floor
	// condition fails.
	DecrementStock(ctx context.Context, productID string, quantity int) (newStock int, err error)

	// IncrementStock adds quantity back (cancellation restore) and
	// returns the stock value after the increment.
	IncrementStock(ctx context.Context, productID string, quantity int) (newStock int, err error)
}

type CategoryRepository interface {
	Create(ctx context.Context, c *Category) error
	Update(ctx context.Context, c *Category) error
	FindByID(ctx context.Context, id string) (*Category, error)
	List(ctx context.Context, activeOnly bool) ([]*Category, error)
	Deactivate(ctx context.Context, id string) error
}

type ManufacturerRepository interface {
	Create(ctx context.Context, m *Manufacturer) error
	Update(ctx context.Context, m *Manufacturer) error
	FindByID(ctx context.Context, id string) (*Manufacturer, error)
	List(ctx context.Context, activeOnly bool) ([]*Manufacturer, error)
	Deactivate(ctx context.Context, id string) error
}

type PublisherRepository interface {
	Create(ctx context.Context, p *Publisher) error
	Update(ctx context.Context, p *Publisher) error
	FindByID(ctx context.Context, id string) (*Publisher, error)
	List(ctx context.Context, activeOnly bool) ([]*Publisher, error)
	Deactivate(ctx context.Context, id string) error
}

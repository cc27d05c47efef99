package coupon

import "context"

type Repository interface {
	Create(ctx context.Context, c *Coupon) error
	Update(ctx context.Context, c *Coupon) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Coupon, error)
	FindByCode(ctx context.Context, code string) (*Coupon, error)
	List(ctx context.Context, activeOnly bool) ([]*Coupon, error)
	ListAutoApply(ctx context.Context) ([]*Coupon, error)

	// DecrementQuantity atomically consumes one use of the coupon. The
	// update applies only while quantity > 0; unlimited coupons are left
	// untouched. Returns ErrCouponExhausted if no use could be consumed
	// from a limited coupon.
	DecrementQuantity(ctx context.Context, id string) error
}

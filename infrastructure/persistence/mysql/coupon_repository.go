package mysql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"shopcore/domain/coupon"
	"shopcore/infrastructure/persistence"
	"shopcore/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

type CouponRepository struct {
	db *gorm.DB
}

func NewCouponRepository(db *gorm.DB) *CouponRepository {
	return &CouponRepository{db: db}
}

func (r *CouponRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *CouponRepository) Create(ctx context.Context, c *coupon.Coupon) error {
	if err := r.getDB(ctx).Create(po.FromCoupon(c)).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return coupon.ErrDuplicateCode
		}
		return fmt.Errorf("failed to create coupon: %w", err)
	}
	return nil
}

func (r *CouponRepository) Update(ctx context.Context, c *coupon.Coupon) error {
	result := r.getDB(ctx).Model(&po.CouponPO{}).
		Where("id = ?", c.ID).
		Updates(map[string]interface{}{
			"code":             c.Code,
			"discount_type":    string(c.DiscountType),
			"discount_value":   c.DiscountValue,
			"min_order_amount": c.MinOrderAmount,
			"max_discount":     c.MaxDiscount,
			"quantity":         c.Quantity,
			"starts_at":        c.StartsAt,
			"expires_at":       c.ExpiresAt,
			"is_active":        c.IsActive,
			"is_auto_apply":    c.IsAutoApply,
		})
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return coupon.ErrDuplicateCode
		}
		return fmt.Errorf("failed to update coupon: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return coupon.ErrCouponNotFound
	}
	return nil
}

func (r *CouponRepository) Delete(ctx context.Context, id string) error {
	result := r.getDB(ctx).Delete(&po.CouponPO{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete coupon: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return coupon.ErrCouponNotFound
	}
	return nil
}

func (r *CouponRepository) FindByID(ctx context.Context, id string) (*coupon.Coupon, error) {
	var couponPO po.CouponPO
	err := r.getDB(ctx).First(&couponPO, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, coupon.ErrCouponNotFound
		}
		return nil, fmt.Errorf("failed to find coupon: %w", err)
	}
	return couponPO.ToDomain(), nil
}

func (r *CouponRepository) FindByCode(ctx context.Context, code string) (*coupon.Coupon, error) {
	var couponPO po.CouponPO
	err := r.getDB(ctx).First(&couponPO, "code = ?", strings.TrimSpace(code)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, coupon.ErrCouponNotFound
		}
		return nil, fmt.Errorf("failed to find coupon: %w", err)
	}
	return couponPO.ToDomain(), nil
}

func (r *CouponRepository) List(ctx context.Context, activeOnly bool) ([]*coupon.Coupon, error) {
	db := r.getDB(ctx).Model(&po.CouponPO{})
	if activeOnly {
		db = db.Where("is_active = ?", true)
	}

	var couponPOs []po.CouponPO
	if err := db.Order("created_at DESC").Find(&couponPOs).Error; err != nil {
		return nil, fmt.Errorf("failed to list coupons: %w", err)
	}

	coupons := make([]*coupon.Coupon, len(couponPOs))
	for i := range couponPOs {
		coupons[i] = couponPOs[i].ToDomain()
	}
	return coupons, nil
}

// ListAutoApply returns active auto-apply coupons that have started.
// Expiry is left to Validate since a zero expires_at means no expiry.
func (r *CouponRepository) ListAutoApply(ctx context.Context) ([]*coupon.Coupon, error) {
	var couponPOs []po.CouponPO
	err := r.getDB(ctx).
		Where("is_auto_apply = ? AND is_active = ?", true, true).
		Where("starts_at <= ?", time.Now()).
		Order("created_at DESC").
		Find(&couponPOs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list auto-apply coupons: %w", err)
	}

	coupons := make([]*coupon.Coupon, len(couponPOs))
	for i := range couponPOs {
		coupons[i] = couponPOs[i].ToDomain()
	}
	return coupons, nil
}

// DecrementQuantity consumes one use with a conditional UPDATE. The
// quantity > 0 guard stops the counter at zero under concurrency;
// unlimited coupons (quantity = -1) are never touched.
func (r *CouponRepository) DecrementQuantity(ctx context.Context, id string) error {
	db := r.getDB(ctx)

	var couponPO po.CouponPO
	if err := db.First(&couponPO, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return coupon.ErrCouponNotFound
		}
		return fmt.Errorf("failed to find coupon: %w", err)
	}
	if couponPO.Quantity == coupon.UnlimitedQuantity {
		return nil
	}

	result := db.Model(&po.CouponPO{}).
		Where("id = ? AND quantity > 0", id).
		Update("quantity", gorm.Expr("quantity - 1"))
	if result.Error != nil {
		return fmt.Errorf("failed to decrement coupon quantity: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return coupon.ErrCouponExhausted
	}
	return nil
}

var _ coupon.Repository = (*CouponRepository)(nil)

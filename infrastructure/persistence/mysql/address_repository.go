package mysql

import (
	"context"
	"errors"
	"fmt"

	"shopcore/domain/customer"
	"shopcore/infrastructure/persistence"
	"shopcore/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

type AddressRepository struct {
	db *gorm.DB
}

func NewAddressRepository(db *gorm.DB) *AddressRepository {
	return &AddressRepository{db: db}
}

func (r *AddressRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *AddressRepository) Create(ctx context.Context, a *customer.Address) error {
	if err := r.getDB(ctx).Create(po.FromAddress(a)).Error; err != nil {
		return fmt.Errorf("failed to create address: %w", err)
	}
	return nil
}

func (r *AddressRepository) Update(ctx context.Context, a *customer.Address) error {
	result := r.getDB(ctx).Model(&po.AddressPO{}).
		Where("id = ?", a.ID).
		Updates(map[string]interface{}{
			"label":       a.Label,
			"line1":       a.Line1,
			"line2":       a.Line2,
			"city":        a.City,
			"postal_code": a.PostalCode,
			"phone":       a.Phone,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update address: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return customer.ErrAddressNotFound
	}
	return nil
}

func (r *AddressRepository) FindByID(ctx context.Context, id string) (*customer.Address, error) {
	var addressPO po.AddressPO
	err := r.getDB(ctx).First(&addressPO, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, customer.ErrAddressNotFound
		}
		return nil, fmt.Errorf("failed to find address: %w", err)
	}
	return addressPO.ToDomain(), nil
}

func (r *AddressRepository) ListByUser(ctx context.Context, userID string) ([]*customer.Address, error) {
	var addressPOs []po.AddressPO
	err := r.getDB(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("is_default DESC, created_at DESC").
		Find(&addressPOs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list addresses: %w", err)
	}

	addresses := make([]*customer.Address, len(addressPOs))
	for i := range addressPOs {
		addresses[i] = addressPOs[i].ToDomain()
	}
	return addresses, nil
}

// SetDefault flips the flag in one transaction so exactly one address
// stays default per user.
func (r *AddressRepository) SetDefault(ctx context.Context, userID, addressID string) error {
	run := func(tx *gorm.DB) error {
		if err := tx.Model(&po.AddressPO{}).
			Where("user_id = ?", userID).
			Update("is_default", false).Error; err != nil {
			return fmt.Errorf("failed to clear default addresses: %w", err)
		}

		result := tx.Model(&po.AddressPO{}).
			Where("id = ? AND user_id = ?", addressID, userID).
			Update("is_default", true)
		if result.Error != nil {
			return fmt.Errorf("failed to set default address: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return customer.ErrAddressNotFound
		}
		return nil
	}

	if tx := persistence.TxFromContext(ctx); tx != nil {
		return run(tx)
	}
	return r.db.WithContext(ctx).Transaction(run)
}

func (r *AddressRepository) Deactivate(ctx context.Context, id string) error {
	result := r.getDB(ctx).Model(&po.AddressPO{}).
		Where("id = ?", id).
		Update("is_active", false)
	if result.Error != nil {
		return fmt.Errorf("failed to deactivate address: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return customer.ErrAddressNotFound
	}
	return nil
}

var _ customer.AddressRepository = (*AddressRepository)(nil)

// Package customer holds customer-owned data: delivery addresses.
// Identity and credentials live in the external identity provider.
package customer

import (
	"context"
	"errors"
	"time"
)

var (
	ErrAddressNotFound = errors.New("address not found")
	ErrAddressInactive = errors.New("address is not active")
	ErrAddressNotOwned = errors.New("address does not belong to this user")
)

// Address is a delivery address owned by a user. Only active addresses
// may be used as an order's delivery target.
type Address struct {
	ID         string
	UserID     string
	Label      string
	Line1      string
	Line2      string
	City       string
	PostalCode string
	Phone      string
	IsDefault  bool
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// UsableBy reports whether the address can serve as a delivery target
// for the given user.
func (a *Address) UsableBy(userID string) error {
	if a.UserID != userID {
		return ErrAddressNotOwned
	}
	if !a.IsActive {
		return ErrAddressInactive
	}
	return nil
}

type AddressRepository interface {
	Create(ctx context.Context, a *Address) error
	Update(ctx context.Context, a *Address) error
	FindByID(ctx context.Context, id string) (*Address, error)
	ListByUser(ctx context.Context, userID string) ([]*Address, error)
	// SetDefault marks one address as default and clears the flag on the
	// user's other addresses.
	SetDefault(ctx context.Context, userID, addressID string) error
	Deactivate(ctx context.Context, id string) error
}

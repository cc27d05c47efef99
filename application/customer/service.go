// Package customer manages delivery addresses.
package customer

import (
	"context"
	"time"

	"shopcore/domain/customer"

	"github.com/google/uuid"
)

type Service struct {
	addressRepo customer.AddressRepository
}

func NewService(addressRepo customer.AddressRepository) *Service {
	return &Service{addressRepo: addressRepo}
}

type AddressRequest struct {
	Label      string `json:"label"`
	Line1      string `json:"line1" binding:"required"`
	Line2      string `json:"line2"`
	City       string `json:"city" binding:"required"`
	PostalCode string `json:"postal_code"`
	Phone      string `json:"phone"`
	IsDefault  bool   `json:"is_default"`
}

func (s *Service) Create(ctx context.Context, userID string, req AddressRequest) (*customer.Address, error) {
	now := time.Now()
	address := &customer.Address{
		ID:         uuid.New().String(),
		UserID:     userID,
		Label:      req.Label,
		Line1:      req.Line1,
		Line2:      req.Line2,
		City:       req.City,
		PostalCode: req.PostalCode,
		Phone:      req.Phone,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.addressRepo.Create(ctx, address); err != nil {
		return nil, err
	}
	if req.IsDefault {
		if err := s.addressRepo.SetDefault(ctx, userID, address.ID); err != nil {
			return nil, err
		}
		address.IsDefault = true
	}
	return address, nil
}

func (s *Service) Update(ctx context.Context, userID, addressID string, req AddressRequest) (*customer.Address, error) {
	address, err := s.ownedAddress(ctx, userID, addressID)
	if err != nil {
		return nil, err
	}

	address.Label = req.Label
	address.Line1 = req.Line1
	address.Line2 = req.Line2
	address.City = req.City
	address.PostalCode = req.PostalCode
	address.Phone = req.Phone

	if err := s.addressRepo.Update(ctx, address); err != nil {
		return nil, err
	}
	return address, nil
}

func (s *Service) List(ctx context.Context, userID string) ([]*customer.Address, error) {
	return s.addressRepo.ListByUser(ctx, userID)
}

func (s *Service) SetDefault(ctx context.Context, userID, addressID string) error {
	if _, err := s.ownedAddress(ctx, userID, addressID); err != nil {
		return err
	}
	return s.addressRepo.SetDefault(ctx, userID, addressID)
}

// Delete deactivates rather than removes; orders keep referencing the
// address row.
func (s *Service) Delete(ctx context.Context, userID, addressID string) error {
	if _, err := s.ownedAddress(ctx, userID, addressID); err != nil {
		return err
	}
	return s.addressRepo.Deactivate(ctx, addressID)
}

func (s *Service) ownedAddress(ctx context.Context, userID, addressID string) (*customer.Address, error) {
	address, err := s.addressRepo.FindByID(ctx, addressID)
	if err != nil {
		return nil, err
	}
	if address.UserID != userID {
		return nil, customer.ErrAddressNotOwned
	}
	return address, nil
}

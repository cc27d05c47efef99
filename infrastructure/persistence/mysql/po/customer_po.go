package po

import (
	"time"

	"shopcore/domain/customer"
)

type AddressPO struct {
	ID         string    `gorm:"primaryKey;size:64"`
	UserID     string    `gorm:"size:64;index;not null"`
	Label      string    `gorm:"size:100"`
	Line1      string    `gorm:"size:255;not null"`
	Line2      string    `gorm:"size:255"`
	City       string    `gorm:"size:100;not null"`
	PostalCode string    `gorm:"size:20"`
	Phone      string    `gorm:"size:30"`
	IsDefault  bool      `gorm:"not null;default:false"`
	IsActive   bool      `gorm:"not null;default:true"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

func (AddressPO) TableName() string { return "addresses" }

func FromAddress(a *customer.Address) *AddressPO {
	return &AddressPO{
		ID:         a.ID,
		UserID:     a.UserID,
		Label:      a.Label,
		Line1:      a.Line1,
		Line2:      a.Line2,
		City:       a.City,
		PostalCode: a.PostalCode,
		Phone:      a.Phone,
		IsDefault:  a.IsDefault,
		IsActive:   a.IsActive,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

func (po *AddressPO) ToDomain() *customer.Address {
	return &customer.Address{
		ID:         po.ID,
		UserID:     po.UserID,
		Label:      po.Label,
		Line1:      po.Line1,
		Line2:      po.Line2,
		City:       po.City,
		PostalCode: po.PostalCode,
		Phone:      po.Phone,
		IsDefault:  po.IsDefault,
		IsActive:   po.IsActive,
		CreatedAt:  po.CreatedAt,
		UpdatedAt:  po.UpdatedAt,
	}
}

package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Booking represents a reservation of a place by a user for a date range.
type Booking struct {
	ID             uuid.UUID       `json:"_id" gorm:"type:char(36);primaryKey"`
	PlaceID        uuid.UUID       `json:"placeId" gorm:"type:char(36);not null;index"`
	UserID         uuid.UUID       `json:"user" gorm:"type:char(36);not null;index"`
	CheckIn        time.Time       `json:"checkIn" gorm:"not null"`
	CheckOut       time.Time       `json:"checkOut" gorm:"not null"`
	NumberOfGuests int             `json:"numberOfGuests" gorm:"not null"`
	Name           string          `json:"name" gorm:"size:255;not null"`
	Phone          string          `json:"phone" gorm:"size:64;not null"`
	Price          decimal.Decimal `json:"price" gorm:"type:decimal(12,2)"`
	CreatedAt      time.Time       `json:"createdAt"`

	// Resolved by the booking service on reads, never stored.
	Place *Place `json:"place,omitempty" gorm:"-"`
}

// BeforeCreate sets UUID before creating the record.
func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// StayDetails holds the guest-supplied part of a booking.
type StayDetails struct {
	CheckIn        time.Time
	CheckOut       time.Time
	NumberOfGuests int
	Name           string
	Phone          string
	Price          decimal.Decimal
}

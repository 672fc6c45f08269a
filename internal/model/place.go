package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Place represents a rentable property listing.
type Place struct {
	ID          uuid.UUID       `json:"_id" gorm:"type:char(36);primaryKey"`
	OwnerID     uuid.UUID       `json:"owner" gorm:"type:char(36);not null;index"`
	Title       string          `json:"title" gorm:"size:255;not null"`
	Address     string          `json:"address" gorm:"size:512"`
	Photos      []string        `json:"photos" gorm:"serializer:json;type:text"`
	Description string          `json:"description" gorm:"type:text"`
	Perks       []string        `json:"perks" gorm:"serializer:json;type:text"`
	ExtraInfo   string          `json:"extraInfo" gorm:"type:text"`
	CheckIn     string          `json:"checkIn" gorm:"size:5"`  // HH:MM
	CheckOut    string          `json:"checkOut" gorm:"size:5"` // HH:MM
	MaxGuests   int             `json:"maxGuests" gorm:"not null"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(12,2);not null"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// BeforeCreate sets UUID before creating the record.
func (p *Place) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// PlaceAttributes holds the owner-editable fields of a place.
type PlaceAttributes struct {
	Title       string
	Address     string
	Photos      []string
	Description string
	Perks       []string
	ExtraInfo   string
	CheckIn     string
	CheckOut    string
	MaxGuests   int
	Price       decimal.Decimal
}

// Apply overwrites every mutable attribute. ID and OwnerID are left untouched.
func (p *Place) Apply(attrs PlaceAttributes) {
	p.Title = attrs.Title
	p.Address = attrs.Address
	p.Photos = append([]string{}, attrs.Photos...)
	p.Description = attrs.Description
	p.Perks = append([]string{}, attrs.Perks...)
	p.ExtraInfo = attrs.ExtraInfo
	p.CheckIn = attrs.CheckIn
	p.CheckOut = attrs.CheckOut
	p.MaxGuests = attrs.MaxGuests
	p.Price = attrs.Price
}

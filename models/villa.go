package models

import (
	"time"

	"gorm.io/datatypes"
)

type VillaStatus string

const (
	VillaStatusActive      VillaStatus = "active"
	VillaStatusInactive    VillaStatus = "inactive"
	VillaStatusMaintenance VillaStatus = "maintenance"
)

func (s VillaStatus) IsValid() bool {
	switch s {
	case VillaStatusActive, VillaStatusInactive, VillaStatusMaintenance:
		return true
	}
	return false
}

// Villa is a bookable property. Its ID is a slug (e.g. "glass-cottage").
type Villa struct {
	ID          string                      `gorm:"primaryKey;size:64" json:"id"`
	Name        string                      `gorm:"size:255;not null" json:"name"`
	Description string                      `gorm:"type:text" json:"description"`
	BasePrice   float64                     `gorm:"column:base_price" json:"base_price"`
	MaxGuests   int                         `gorm:"column:max_guests" json:"max_guests"`
	Amenities   datatypes.JSONSlice[string] `gorm:"column:amenities" json:"amenities"`
	Images      datatypes.JSONSlice[string] `gorm:"column:images" json:"images"`
	Status      VillaStatus                 `gorm:"size:32;default:active;index" json:"status"`
	CreatedAt   time.Time                   `json:"created_at"`
	UpdatedAt   time.Time                   `json:"updated_at"`
}

// Fixed unit counts used when a villa has no inventory rows.
var DefaultUnitCounts = map[string]int{
	"glass-cottage": 14,
	"hornbill":      4,
	"kingfisher":    4,
}

// unit label prefixes per villa; anything else falls back to "U".
var unitPrefixes = map[string]string{
	"glass-cottage": "GC",
	"hornbill":      "HB",
	"kingfisher":    "KF",
}

func UnitPrefix(villaID string) string {
	if p, ok := unitPrefixes[villaID]; ok {
		return p
	}
	return "U"
}

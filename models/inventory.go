package models

import (
	"time"
)

type UnitStatus string

const (
	UnitStatusAvailable   UnitStatus = "available"
	UnitStatusMaintenance UnitStatus = "maintenance"
	UnitStatusOutOfOrder  UnitStatus = "out_of_order"
)

func (s UnitStatus) IsValid() bool {
	switch s {
	case UnitStatusAvailable, UnitStatusMaintenance, UnitStatusOutOfOrder:
		return true
	}
	return false
}

// VillaUnit is one physical room or cottage of a villa.
type VillaUnit struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	VillaID    string     `gorm:"column:villa_id;size:64;not null;uniqueIndex:idx_villa_unit" json:"villa_id"`
	UnitNumber int        `gorm:"column:unit_number;not null;uniqueIndex:idx_villa_unit" json:"unit_number"`
	RoomType   string     `gorm:"column:room_type;size:100" json:"room_type"`
	Floor      string     `gorm:"size:20" json:"floor"`
	ViewType   string     `gorm:"column:view_type;size:100" json:"view_type"`
	Status     UnitStatus `gorm:"size:32;default:available" json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

type BlockType string

const (
	BlockTypeMaintenance     BlockType = "maintenance"
	BlockTypeOwnerUse        BlockType = "owner_use"
	BlockTypeSeasonalClosure BlockType = "seasonal_closure"
	BlockTypeDeepCleaning    BlockType = "deep_cleaning"
)

func (t BlockType) IsValid() bool {
	switch t {
	case BlockTypeMaintenance, BlockTypeOwnerUse, BlockTypeSeasonalClosure, BlockTypeDeepCleaning:
		return true
	}
	return false
}

// InventoryBlock takes a single unit out of service for one date.
type InventoryBlock struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	VillaInventoryID uint      `gorm:"column:villa_inventory_id;not null;uniqueIndex:idx_unit_block_date" json:"villa_inventory_id"`
	BlockDate        time.Time `gorm:"column:block_date;not null;uniqueIndex:idx_unit_block_date" json:"block_date"`
	BlockType        BlockType `gorm:"column:block_type;size:32" json:"block_type"`
	Notes            string    `gorm:"type:text" json:"notes"`
	CreatedAt        time.Time `json:"created_at"`

	Unit *VillaUnit `gorm:"foreignKey:VillaInventoryID;references:ID" json:"unit,omitempty"`
}

// BookingUnit pins a booking to one physical unit for its whole stay.
type BookingUnit struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	BookingID  string    `gorm:"column:booking_id;size:36;uniqueIndex" json:"booking_id"`
	VillaID    string    `gorm:"column:villa_id;size:64;index" json:"villa_id"`
	UnitNumber int       `gorm:"column:unit_number" json:"unit_number"`
	CheckIn    time.Time `gorm:"column:check_in" json:"check_in"`
	CheckOut   time.Time `gorm:"column:check_out" json:"check_out"`
	CreatedAt  time.Time `json:"created_at"`
}

// BookingHold reserves capacity on a date range while the guest pays.
type BookingHold struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	VillaID    string    `gorm:"column:villa_id;size:64;index" json:"villa_id"`
	CheckIn    time.Time `gorm:"column:check_in" json:"check_in"`
	CheckOut   time.Time `gorm:"column:check_out" json:"check_out"`
	Units      int       `gorm:"default:1" json:"units"`
	GuestEmail string    `gorm:"column:guest_email;size:255" json:"guest_email"`
	ExpiresAt  time.Time `gorm:"column:expires_at;index" json:"expires_at"`
	CreatedAt  time.Time `json:"created_at"`
}

package models

import (
	"time"

	"gorm.io/datatypes"
)

type SafariStatus string

const (
	SafariStatusPending   SafariStatus = "pending"
	SafariStatusConfirmed SafariStatus = "confirmed"
	SafariStatusCancelled SafariStatus = "cancelled"
	SafariStatusCompleted SafariStatus = "completed"
)

func (s SafariStatus) IsValid() bool {
	switch s {
	case SafariStatusPending, SafariStatusConfirmed, SafariStatusCancelled, SafariStatusCompleted:
		return true
	}
	return false
}

// SafariQuery is a non-binding excursion inquiry. It carries no price.
type SafariQuery struct {
	ID              string       `gorm:"primaryKey;size:36" json:"id"`
	GuestName       string       `gorm:"column:guest_name;size:255" json:"guest_name"`
	GuestEmail      string       `gorm:"column:guest_email;size:255;index" json:"guest_email"`
	GuestPhone      string       `gorm:"column:guest_phone;size:50" json:"guest_phone"`
	SafariOptionID  *uint        `gorm:"column:safari_option_id;index" json:"safari_option_id"`
	SafariName      string       `gorm:"column:safari_name;size:255" json:"safari_name"`
	PreferredDate   *time.Time   `gorm:"column:preferred_date" json:"preferred_date"`
	PreferredTiming string       `gorm:"column:preferred_timing;size:64" json:"preferred_timing"`
	NumberOfPersons int          `gorm:"column:number_of_persons" json:"number_of_persons"`
	SpecialRequests string       `gorm:"column:special_requests;type:text" json:"special_requests"`
	BookingID       *string      `gorm:"column:booking_id;size:36;index" json:"booking_id"`
	Status          SafariStatus `gorm:"size:32;index" json:"status"`
	Response        string       `gorm:"type:text" json:"response"`
	AdminNotes      string       `gorm:"column:admin_notes;type:text" json:"admin_notes"`
	RespondedBy     string       `gorm:"column:responded_by;size:255" json:"responded_by"`
	RespondedAt     *time.Time   `gorm:"column:responded_at" json:"responded_at"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

// SafariOption is catalog reference data.
type SafariOption struct {
	ID             uint                        `gorm:"primaryKey" json:"id"`
	Name           string                      `gorm:"size:255;uniqueIndex" json:"name"`
	Description    string                      `gorm:"type:text" json:"description"`
	Duration       string                      `gorm:"size:64" json:"duration"`
	PricePerPerson float64                     `gorm:"column:price_per_person" json:"price_per_person"`
	MaxPersons     int                         `gorm:"column:max_persons" json:"max_persons"`
	Timings        datatypes.JSONSlice[string] `gorm:"column:timings" json:"timings"`
	Highlights     datatypes.JSONSlice[string] `gorm:"column:highlights" json:"highlights"`
	IsActive       bool                        `gorm:"column:is_active" json:"is_active"`
	CreatedAt      time.Time                   `json:"created_at"`
	UpdatedAt      time.Time                   `json:"updated_at"`
}

package models

import (
	"time"
)

type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "pending"
	BookingStatusConfirmed  BookingStatus = "confirmed"
	BookingStatusCheckedIn  BookingStatus = "checked_in"
	BookingStatusCheckedOut BookingStatus = "checked_out"
	BookingStatusCompleted  BookingStatus = "completed"
	BookingStatusCancelled  BookingStatus = "cancelled"
	BookingStatusNoShow     BookingStatus = "no_show"
)

type PaymentStatus string

const (
	PaymentStatusPending       PaymentStatus = "pending"
	PaymentStatusPaid          PaymentStatus = "paid"
	PaymentStatusAdvancePaid   PaymentStatus = "advance_paid"
	PaymentStatusFailed        PaymentStatus = "failed"
	PaymentStatusRefunded      PaymentStatus = "refunded"
	PaymentStatusPartialRefund PaymentStatus = "partial_refund"
)

func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusAdvancePaid,
		PaymentStatusFailed, PaymentStatusRefunded, PaymentStatusPartialRefund:
		return true
	}
	return false
}

// PriceSnapshot is copied from the villa and package at booking time so later
// price edits never touch historical bookings.
type PriceSnapshot struct {
	VillaID      string  `gorm:"column:villa_id;size:64;index;not null" json:"villa_id"`
	VillaName    string  `gorm:"column:villa_name;size:255" json:"villa_name"`
	VillaPrice   float64 `gorm:"column:villa_price" json:"villa_price"`
	PackageID    *string `gorm:"column:package_id;size:64;index" json:"package_id"`
	PackageName  *string `gorm:"column:package_name;size:255" json:"package_name"`
	PackagePrice float64 `gorm:"column:package_price" json:"package_price"`
}

type Booking struct {
	ID        string `gorm:"primaryKey;size:36" json:"id"`
	BookingID string `gorm:"column:booking_id;size:32;uniqueIndex" json:"booking_id"`

	GuestName string `gorm:"column:guest_name;size:255" json:"guest_name"`
	Email     string `gorm:"size:255;index" json:"email"`
	Phone     string `gorm:"size:50" json:"phone"`

	CheckIn  time.Time `gorm:"column:check_in;index" json:"check_in"`
	CheckOut time.Time `gorm:"column:check_out;index" json:"check_out"`
	Guests   int       `json:"guests"`

	PriceSnapshot `gorm:"embedded"`

	Status          BookingStatus `gorm:"size:32;index" json:"status"`
	PaymentStatus   PaymentStatus `gorm:"column:payment_status;size:32;index" json:"payment_status"`
	AdvanceAmount   float64       `gorm:"column:advance_amount" json:"advance_amount"`
	RemainingAmount float64       `gorm:"column:remaining_amount" json:"remaining_amount"`
	TotalAmount     float64       `gorm:"column:total_amount" json:"total_amount"`
	AdminNotes      string        `gorm:"column:admin_notes;type:text" json:"admin_notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Unit *BookingUnit `gorm:"foreignKey:BookingID;references:ID" json:"unit,omitempty"`
}

// HoldsInventory reports whether the booking counts against villa capacity.
func (b Booking) HoldsInventory() bool {
	if b.Status == BookingStatusCancelled || b.Status == BookingStatusNoShow {
		return false
	}
	return b.PaymentStatus != PaymentStatusFailed
}

// Nights is the number of whole nights in the stay, never less than one.
func (b Booking) Nights() int {
	return NightsBetween(b.CheckIn, b.CheckOut)
}

func NightsBetween(checkIn, checkOut time.Time) int {
	ci := DateOnly(checkIn)
	co := DateOnly(checkOut)
	n := int(co.Sub(ci).Hours() / 24)
	if n < 1 {
		return 1
	}
	return n
}

// DateOnly truncates t to midnight UTC of its calendar day.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

package models

import (
	"testing"
	"time"
)

func TestBookingStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to BookingStatus
		want     bool
	}{
		{BookingStatusPending, BookingStatusConfirmed, true},
		{BookingStatusPending, BookingStatusCancelled, true},
		{BookingStatusPending, BookingStatusCheckedIn, false},
		{BookingStatusConfirmed, BookingStatusCheckedIn, true},
		{BookingStatusConfirmed, BookingStatusNoShow, true},
		{BookingStatusCheckedIn, BookingStatusCheckedOut, true},
		{BookingStatusCheckedIn, BookingStatusCancelled, false},
		{BookingStatusCheckedOut, BookingStatusCompleted, true},
		{BookingStatusCompleted, BookingStatusPending, false},
		{BookingStatusCancelled, BookingStatusConfirmed, false},
		{BookingStatusNoShow, BookingStatusNoShow, true},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
			t.Errorf("%s -> %s = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestBookingStatusFlags(t *testing.T) {
	for _, s := range AllBookingStatuses() {
		if !s.IsValid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if BookingStatus("archived").IsValid() {
		t.Error("unknown status reported valid")
	}
	if !BookingStatusCancelled.IsTerminal() || BookingStatusCheckedOut.IsTerminal() {
		t.Error("terminal flags are wrong")
	}
	if !BookingStatusCheckedIn.NeedsUnit() || BookingStatusPending.NeedsUnit() {
		t.Error("NeedsUnit flags are wrong")
	}
}

func TestHoldsInventory(t *testing.T) {
	cases := []struct {
		b    Booking
		want bool
	}{
		{Booking{Status: BookingStatusPending, PaymentStatus: PaymentStatusPending}, true},
		{Booking{Status: BookingStatusConfirmed, PaymentStatus: PaymentStatusPaid}, true},
		{Booking{Status: BookingStatusCancelled, PaymentStatus: PaymentStatusPaid}, false},
		{Booking{Status: BookingStatusNoShow}, false},
		{Booking{Status: BookingStatusPending, PaymentStatus: PaymentStatusFailed}, false},
	}
	for i, tc := range cases {
		if got := tc.b.HoldsInventory(); got != tc.want {
			t.Errorf("case %d: HoldsInventory = %v, want %v", i, got, tc.want)
		}
	}
}

func TestNightsBetween(t *testing.T) {
	in := time.Date(2024, 2, 27, 14, 0, 0, 0, time.UTC)
	out := time.Date(2024, 3, 1, 11, 0, 0, 0, time.UTC)
	if n := NightsBetween(in, out); n != 3 {
		t.Fatalf("nights across leap day = %d, want 3", n)
	}
	if n := NightsBetween(in, in); n != 1 {
		t.Fatalf("same-day stay = %d, want 1", n)
	}
}

func TestUnitPrefix(t *testing.T) {
	if UnitPrefix("glass-cottage") != "GC" || UnitPrefix("new-villa") != "U" {
		t.Fatal("unexpected unit prefixes")
	}
}

package services

import (
	"context"
	"testing"

	"villa-backend/models"
)

func TestOccupancyRange(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedVilla(t, "hornbill", 12000, 2)
	env.book(t, "hornbill", "2024-02-01", "2024-02-03")
	env.book(t, "hornbill", "2024-02-02", "2024-02-04")
	cancelled := env.book(t, "hornbill", "2024-02-01", "2024-02-02")
	if _, err := env.Bookings.UpdateBookingStatus(ctx, cancelled.ID, models.BookingStatusCancelled, false); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	series, err := env.Occupancy.GetOccupancyRange(ctx, day("2024-02-01"), day("2024-02-04"))
	if err != nil {
		t.Fatalf("range: %v", err)
	}
	if len(series) != 4 {
		t.Fatalf("got %d days, want 4", len(series))
	}
	want := []int{1, 2, 1, 0}
	for i, r := range series {
		if r.TotalOccupied != want[i] {
			t.Errorf("%s occupied = %d, want %d", r.Date, r.TotalOccupied, want[i])
		}
		if r.TotalUnits != 2 {
			t.Errorf("%s total units = %d, want 2", r.Date, r.TotalUnits)
		}
	}
	if series[1].OverallRate != 100 || series[1].Villas[0].Available != 0 {
		t.Fatalf("full night = %+v", series[1])
	}

	if _, err := env.Occupancy.GetOccupancyRange(ctx, day("2024-02-04"), day("2024-02-01")); ErrorCode(err) != CodeValidation {
		t.Fatalf("reversed range: code = %s", ErrorCode(err))
	}
	if _, err := env.Occupancy.GetOccupancyRange(ctx, day("2024-01-01"), day("2025-06-01")); ErrorCode(err) != CodeValidation {
		t.Fatalf("oversized range: code = %s", ErrorCode(err))
	}
}

func TestGetOccupancyIsCachedAndInvalidated(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedVilla(t, "hornbill", 12000, 2)

	r, err := env.Occupancy.GetOccupancy(ctx, day("2024-02-01"))
	if err != nil || r.TotalOccupied != 0 {
		t.Fatalf("empty occupancy: %+v %v", r, err)
	}
	var cached OccupancyReport
	if ok, _ := env.Cache.Get(ctx, "occupancy:2024-02-01", &cached); !ok {
		t.Fatal("occupancy report was not cached")
	}

	env.book(t, "hornbill", "2024-02-01", "2024-02-02")

	r, err = env.Occupancy.GetOccupancy(ctx, day("2024-02-01"))
	if err != nil || r.TotalOccupied != 1 {
		t.Fatalf("occupancy after booking: %+v %v", r, err)
	}
}

func TestRoomWiseOccupancy(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedVilla(t, "hornbill", 12000, 3)

	units, _ := env.Inventory.ListUnits(ctx, "hornbill")
	if _, err := env.Inventory.UpdateUnit(ctx, units[2].ID, UnitInput{Status: models.UnitStatusMaintenance}); err != nil {
		t.Fatalf("update unit: %v", err)
	}

	confirmed := env.book(t, "hornbill", "2024-02-01", "2024-02-03")
	if _, err := env.Bookings.UpdateBookingStatus(ctx, confirmed.ID, models.BookingStatusConfirmed, false); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	pending := env.book(t, "hornbill", "2024-02-02", "2024-02-04")

	rw, err := env.Occupancy.GetRoomWiseOccupancy(ctx, "hornbill", day("2024-02-02"))
	if err != nil {
		t.Fatalf("room-wise: %v", err)
	}
	if len(rw.Units) != 3 {
		t.Fatalf("got %d units, want 3", len(rw.Units))
	}

	u1, u2, u3 := rw.Units[0], rw.Units[1], rw.Units[2]
	if u1.Status != "occupied" || u1.BookingID != confirmed.ID || !u1.Assigned {
		t.Fatalf("unit 1 = %+v", u1)
	}
	if u2.Status != "occupied" || u2.BookingID != pending.ID || u2.Assigned {
		t.Fatalf("unit 2 = %+v", u2)
	}
	if u3.Status != "out_of_service" || u3.Label != "HB-03" {
		t.Fatalf("unit 3 = %+v", u3)
	}

	// the pending stay's later nights stay on the same unit
	later, err := env.Occupancy.GetRoomWiseOccupancy(ctx, "hornbill", day("2024-02-03"))
	if err != nil {
		t.Fatalf("room-wise later: %v", err)
	}
	if later.Units[1].BookingID != pending.ID || later.Units[0].Status != "available" {
		t.Fatalf("placement moved between nights: %+v", later.Units)
	}
}

func TestRoomWiseOccupancyShowsBlocks(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedVilla(t, "kingfisher", 10000, 2)
	units, _ := env.Inventory.ListUnits(ctx, "kingfisher")
	if _, err := env.Inventory.CreateBlock(ctx, BlockInput{VillaInventoryID: units[0].ID, BlockDate: "2024-02-02", BlockType: models.BlockTypeOwnerUse}); err != nil {
		t.Fatalf("block: %v", err)
	}
	b := env.book(t, "kingfisher", "2024-02-02", "2024-02-03")

	rw, err := env.Occupancy.GetRoomWiseOccupancy(ctx, "kingfisher", day("2024-02-02"))
	if err != nil {
		t.Fatalf("room-wise: %v", err)
	}
	if rw.Units[0].Status != "blocked" {
		t.Fatalf("unit 1 = %+v, want blocked", rw.Units[0])
	}
	if rw.Units[1].BookingID != b.ID {
		t.Fatalf("booking should land on the unblocked unit, got %+v", rw.Units[1])
	}
}

func TestAvailabilityCalendar(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedVilla(t, "hornbill", 12000, 2)
	env.book(t, "hornbill", "2024-02-28", "2024-03-02")

	cal, err := env.Occupancy.GetAvailabilityCalendar(ctx, "hornbill", "2024-02")
	if err != nil {
		t.Fatalf("calendar: %v", err)
	}
	if cal.Month != "2024-02" || len(cal.Days) != 29 {
		t.Fatalf("month %s has %d days", cal.Month, len(cal.Days))
	}
	last := cal.Days[28]
	if last.Date != "2024-02-29" || last.Occupied != 1 || last.Available != 1 {
		t.Fatalf("leap day = %+v", last)
	}
	if cal.Days[0].Available != 2 {
		t.Fatalf("first day = %+v", cal.Days[0])
	}

	if _, err := env.Occupancy.GetAvailabilityCalendar(ctx, "hornbill", "February"); ErrorCode(err) != CodeValidation {
		t.Fatalf("bad month: code = %s", ErrorCode(err))
	}
}

func TestAssignUnitIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedVilla(t, "hornbill", 12000, 2)
	b := env.book(t, "hornbill", "2024-02-01", "2024-02-03")

	first, err := env.Inventory.AssignUnit(ctx, b)
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	again, err := env.Inventory.AssignUnit(ctx, b)
	if err != nil || again.UnitNumber != first.UnitNumber {
		t.Fatalf("second assign = %+v %v, want unit %d", again, err, first.UnitNumber)
	}

	if err := env.Inventory.ReleaseUnit(ctx, b.ID); err != nil {
		t.Fatalf("release: %v", err)
	}
	var n int64
	env.DB.Model(&models.BookingUnit{}).Count(&n)
	if n != 0 {
		t.Fatalf("%d assignments left after release", n)
	}
}

func TestDefaultUnitCountsWithoutInventoryRows(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	if _, err := env.Villas.CreateVilla(ctx, VillaInput{ID: "glass-cottage", Name: "Glass Cottage", BasePrice: 15000, MaxGuests: 4}); err != nil {
		t.Fatalf("create villa: %v", err)
	}
	n, err := env.Inventory.TotalUnits(ctx, "glass-cottage")
	if err != nil || n != 14 {
		t.Fatalf("total units = %d %v, want 14", n, err)
	}
}

func TestAssignUnitKeepsRoomWiseLabels(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedVilla(t, "hornbill", 12000, 4)
	a := env.book(t, "hornbill", "2024-01-01", "2024-01-05")
	b := env.book(t, "hornbill", "2024-01-02", "2024-01-04")

	labels := func(date string) (string, string) {
		t.Helper()
		rw, err := env.Occupancy.GetRoomWiseOccupancy(ctx, "hornbill", day(date))
		if err != nil {
			t.Fatalf("room-wise %s: %v", date, err)
		}
		var la, lb string
		for _, u := range rw.Units {
			switch u.BookingID {
			case a.ID:
				la = u.Label
			case b.ID:
				lb = u.Label
			}
		}
		return la, lb
	}

	beforeA, beforeB := labels("2024-01-03")
	if beforeA != "HB-01" || beforeB != "HB-02" {
		t.Fatalf("before confirm: a=%s b=%s", beforeA, beforeB)
	}

	res, err := env.Bookings.UpdateBookingStatus(ctx, b.ID, models.BookingStatusConfirmed, false)
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if res.Booking.Unit == nil || UnitLabel("hornbill", res.Booking.Unit.UnitNumber) != beforeB {
		t.Fatalf("assigned %+v, room-wise showed %s", res.Booking.Unit, beforeB)
	}

	afterA, afterB := labels("2024-01-03")
	if afterA != beforeA || afterB != beforeB {
		t.Fatalf("after confirm: a=%s b=%s, want a=%s b=%s", afterA, afterB, beforeA, beforeB)
	}
	// a night only the longer stay covers reports the same unit
	if lastA, _ := labels("2024-01-04"); lastA != beforeA {
		t.Fatalf("a on its last night = %s, want %s", lastA, beforeA)
	}
}

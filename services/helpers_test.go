package services

import (
	"context"
	"testing"
	"time"

	"villa-backend/cache"
	"villa-backend/config"
	"villa-backend/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("raw db: %v", err)
	}
	// every pooled connection to :memory: would otherwise see its own empty database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

type testEnv struct {
	DB        *gorm.DB
	Cache     *cache.Memory
	Inventory *InventoryService
	Villas    *VillaService
	Packages  *PackageService
	Bookings  *BookingService
	Occupancy *OccupancyService
	Safari    *SafariService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := newTestDB(t)
	store := cache.NewMemory()
	inv := NewInventoryService(db)
	villas := NewVillaService(db, inv)
	pkgs := NewPackageService(db)
	return &testEnv{
		DB:        db,
		Cache:     store,
		Inventory: inv,
		Villas:    villas,
		Packages:  pkgs,
		Bookings:  NewBookingService(db, villas, pkgs, inv, store),
		Occupancy: NewOccupancyService(inv, villas, store),
		Safari:    NewSafariService(db),
	}
}

// seedVilla creates an active villa with the given number of in-service units.
func (e *testEnv) seedVilla(t *testing.T, id string, price float64, units int) *models.Villa {
	t.Helper()
	ctx := context.Background()
	v, err := e.Villas.CreateVilla(ctx, VillaInput{ID: id, Name: id, BasePrice: price, MaxGuests: 4})
	if err != nil {
		t.Fatalf("create villa %s: %v", id, err)
	}
	for n := 1; n <= units; n++ {
		if _, err := e.Inventory.CreateUnit(ctx, UnitInput{VillaID: id, UnitNumber: n}); err != nil {
			t.Fatalf("create unit %s/%d: %v", id, n, err)
		}
	}
	return v
}

func (e *testEnv) seedPackage(t *testing.T, id string, price float64) *models.Package {
	t.Helper()
	p, err := e.Packages.CreatePackage(context.Background(), PackageInput{ID: id, Name: id, Price: price})
	if err != nil {
		t.Fatalf("create package %s: %v", id, err)
	}
	return p
}

func (e *testEnv) book(t *testing.T, villaID, checkIn, checkOut string) *models.Booking {
	t.Helper()
	b, err := e.Bookings.CreateBooking(context.Background(), BookingRequest{
		GuestName: "Asha Rao",
		Email:     "asha@example.com",
		CheckIn:   checkIn,
		CheckOut:  checkOut,
		Guests:    2,
		VillaID:   villaID,
	})
	if err != nil {
		t.Fatalf("create booking %s %s..%s: %v", villaID, checkIn, checkOut, err)
	}
	return b
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func strPtr(s string) *string { return &s }

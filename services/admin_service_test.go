package services

import (
	"context"
	"testing"
	"time"

	"villa-backend/cache"
	"villa-backend/models"
	"villa-backend/utils"
)

func TestEstimatedOccupancy(t *testing.T) {
	cases := []struct {
		bookings, villas int64
		want             int
	}{
		{0, 3, 0},
		{9, 3, 10},
		{45, 3, 50},
		{500, 3, 100},
		{5, 0, 0},
	}
	for _, tc := range cases {
		if got := EstimatedOccupancy(tc.bookings, tc.villas); got != tc.want {
			t.Errorf("EstimatedOccupancy(%d, %d) = %d, want %d", tc.bookings, tc.villas, got, tc.want)
		}
	}
}

func TestDashboardStats(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedVilla(t, "hornbill", 10000, 2)
	env.seedVilla(t, "kingfisher", 10000, 2)
	env.seedPackage(t, "breakfast", 1000)
	if _, err := env.Villas.ToggleVillaStatus(ctx, "kingfisher"); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	b := env.book(t, "hornbill", "2024-02-01", "2024-02-02")
	env.book(t, "hornbill", "2024-02-05", "2024-02-06")
	if _, err := env.Bookings.UpdateBookingStatus(ctx, b.ID, models.BookingStatusConfirmed, false); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if _, err := env.Bookings.UpdatePaymentStatus(ctx, b.ID, PaymentUpdate{PaymentStatus: models.PaymentStatusPaid}); err != nil {
		t.Fatalf("pay: %v", err)
	}
	if _, err := env.Safari.CreateQuery(ctx, SafariQueryInput{GuestName: "G", GuestEmail: "g@example.com", SafariName: "Bird Walk", NumberOfPersons: 1}); err != nil {
		t.Fatalf("safari: %v", err)
	}

	admin := NewAdminService(env.DB, env.Villas, env.Packages, env.Cache, Integrations{Database: true})
	stats, err := admin.DashboardStats(ctx, false)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if stats.Villas.Total != 2 || stats.Villas.Active != 1 || stats.Villas.Inactive != 1 {
		t.Fatalf("villas = %+v", stats.Villas)
	}
	if stats.Packages.Total != 1 || stats.Packages.Active != 1 {
		t.Fatalf("packages = %+v", stats.Packages)
	}
	if stats.Bookings.Total != 2 || stats.Bookings.Pending != 1 || stats.Bookings.Confirmed != 1 {
		t.Fatalf("bookings = %+v", stats.Bookings)
	}
	if stats.Revenue != b.TotalAmount {
		t.Fatalf("revenue = %v, want %v", stats.Revenue, b.TotalAmount)
	}
	if stats.PendingSafariQueries != 1 || len(stats.RecentBookings) != 2 {
		t.Fatalf("safari=%d recent=%d", stats.PendingSafariQueries, len(stats.RecentBookings))
	}
	if stats.Integrations.Database != "configured" || stats.Integrations.PaymentGateway != "demo" {
		t.Fatalf("integrations = %+v", stats.Integrations)
	}
	if stats.OccupancyRate != EstimatedOccupancy(2, 2) {
		t.Fatalf("occupancy = %d", stats.OccupancyRate)
	}

	var cached DashboardStats
	if ok, _ := env.Cache.Get(ctx, "dashboard:stats", &cached); !ok || cached.Bookings.Total != 2 {
		t.Fatalf("dashboard not cached: %v %+v", ok, cached.Bookings)
	}
}

func TestDashboardDemoMode(t *testing.T) {
	inv := NewInventoryService(nil)
	admin := NewAdminService(nil, NewVillaService(nil, inv), NewPackageService(nil), cache.NewMemory(), Integrations{})
	stats, err := admin.DashboardStats(context.Background(), true)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if stats.Villas.Total != int64(len(DemoVillas())) || stats.Bookings.Total != 0 {
		t.Fatalf("demo stats = %+v", stats)
	}
	if stats.Integrations.Database != "demo" {
		t.Fatalf("database integration = %s, want demo", stats.Integrations.Database)
	}
}

func TestAdminAccountsAndLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admins := NewAdminService(env.DB, env.Villas, env.Packages, env.Cache, Integrations{})
	auth := NewAuthService(env.DB, "test-secret", time.Hour, "", "")
	now := time.Now().UTC().Truncate(time.Second)
	auth.Now = func() time.Time { return now }

	first, err := admins.CreateAdmin(ctx, AdminInput{FullName: "Owner", Email: "Owner@Villa.test", Password: "correct-horse"})
	if err != nil {
		t.Fatalf("create admin: %v", err)
	}
	if first.Password == "correct-horse" {
		t.Fatal("password stored in plain text")
	}

	if err := admins.DeleteAdmin(ctx, first.ID); ErrorCode(err) != CodeConflict {
		t.Fatalf("deleting the last admin: code = %s", ErrorCode(err))
	}

	res, err := auth.Login(ctx, "owner@villa.test", "correct-horse")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if !res.ExpiresAt.Equal(now.Add(time.Hour)) || res.Admin.Email != "owner@villa.test" {
		t.Fatalf("login result %+v", res)
	}
	claims, err := utils.ValidateAdminToken("test-secret", res.Token)
	if err != nil || claims.AdminID != first.ID {
		t.Fatalf("claims %+v %v, want admin %d", claims, err, first.ID)
	}

	if _, err := auth.Login(ctx, "owner@villa.test", "wrong"); ErrorCode(err) != CodeUnauthorized {
		t.Fatalf("wrong password: code = %s", ErrorCode(err))
	}
	if _, err := auth.Login(ctx, "nobody@villa.test", "x"); ErrorCode(err) != CodeUnauthorized {
		t.Fatalf("unknown admin: code = %s", ErrorCode(err))
	}

	second, err := admins.CreateAdmin(ctx, AdminInput{FullName: "Manager", Email: "manager@villa.test", Password: "another-pass"})
	if err != nil {
		t.Fatalf("create second: %v", err)
	}
	if err := admins.DeleteAdmin(ctx, second.ID); err != nil {
		t.Fatalf("delete second: %v", err)
	}
}

func TestDemoLogin(t *testing.T) {
	auth := NewAuthService(nil, "secret", time.Hour, "Admin@Villa.test", "demo-pass")
	ctx := context.Background()

	res, err := auth.Login(ctx, "admin@villa.test", "demo-pass")
	if err != nil {
		t.Fatalf("demo login: %v", err)
	}
	claims, err := utils.ValidateAdminToken("secret", res.Token)
	if err != nil || claims.Email != "admin@villa.test" {
		t.Fatalf("claims %+v %v", claims, err)
	}

	if _, err := auth.Login(ctx, "admin@villa.test", "nope"); ErrorCode(err) != CodeUnauthorized {
		t.Fatalf("bad demo password: code = %s", ErrorCode(err))
	}
	if _, err := auth.Login(ctx, "", ""); ErrorCode(err) != CodeValidation {
		t.Fatalf("empty credentials: code = %s", ErrorCode(err))
	}
}

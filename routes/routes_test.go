package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"villa-backend/cache"
	"villa-backend/config"
	"villa-backend/controllers"
	"villa-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	testSecret   = "route-test-secret"
	testEmail    = "admin@villa.test"
	testPassword = "demo-pass"
)

func newRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	store := cache.NewMemory()
	inventory := services.NewInventoryService(db)
	villas := services.NewVillaService(db, inventory)
	packages := services.NewPackageService(db)
	occupancy := services.NewOccupancyService(inventory, villas, store)
	bookings := services.NewBookingService(db, villas, packages, inventory, store)
	admin := services.NewAdminService(db, villas, packages, store, services.Integrations{Database: db != nil})

	return SetupRouter(Controllers{
		Villas:    controllers.NewVillaController(villas),
		Packages:  controllers.NewPackageController(packages),
		Bookings:  controllers.NewBookingController(bookings),
		Inventory: controllers.NewInventoryController(inventory, occupancy),
		Occupancy: controllers.NewOccupancyController(occupancy),
		Safari:    controllers.NewSafariController(services.NewSafariService(db)),
		Admin:     controllers.NewAdminController(admin, services.NewSeedService(db), testEmail, testPassword),
		Auth:      controllers.NewAuthController(services.NewAuthService(db, testSecret, time.Hour, testEmail, testPassword)),
	}, []string{"http://localhost:5173"}, testSecret)
}

func newSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Code    string          `json:"code"`
	Warning string          `json:"warning"`
}

func do(t *testing.T, r http.Handler, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if w.Header().Get("Content-Type") != "" && bytes.HasPrefix(bytes.TrimSpace(w.Body.Bytes()), []byte("{")) {
		_ = json.Unmarshal(w.Body.Bytes(), &env)
	}
	return w, env
}

func login(t *testing.T, r http.Handler) string {
	t.Helper()
	w, env := do(t, r, http.MethodPost, "/api/auth/login", "", map[string]string{"email": testEmail, "password": testPassword})
	if w.Code != http.StatusOK {
		t.Fatalf("login status %d: %s", w.Code, w.Body.String())
	}
	var res struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(env.Data, &res); err != nil || res.Token == "" {
		t.Fatalf("login payload %s: %v", env.Data, err)
	}
	return res.Token
}

func TestHealth(t *testing.T) {
	w, _ := do(t, newRouter(nil), http.MethodGet, "/health", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("health = %d", w.Code)
	}
}

func TestDemoModeServesCatalogue(t *testing.T) {
	r := newRouter(nil)

	w, env := do(t, r, http.MethodGet, "/api/villas", "", nil)
	if w.Code != http.StatusOK || !env.Success {
		t.Fatalf("villas = %d %s", w.Code, w.Body.String())
	}
	var villas []map[string]any
	if err := json.Unmarshal(env.Data, &villas); err != nil || len(villas) != len(services.DemoVillas()) {
		t.Fatalf("demo villas: %d %v", len(villas), err)
	}

	w, _ = do(t, r, http.MethodGet, "/api/safari/options", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("safari options = %d", w.Code)
	}

	w, env = do(t, r, http.MethodPost, "/api/bookings/quote", "", map[string]any{
		"villa_id": "glass-cottage", "check_in": "2024-02-01", "check_out": "2024-02-03",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("quote = %d %s", w.Code, w.Body.String())
	}
}

func TestDemoModeRejectsWrites(t *testing.T) {
	r := newRouter(nil)

	w, env := do(t, r, http.MethodPost, "/api/bookings", "", map[string]any{
		"guest_name": "Asha", "email": "asha@example.com", "check_in": "2024-02-01", "check_out": "2024-02-03",
		"guests": 2, "villa_id": "glass-cottage",
	})
	if w.Code != http.StatusServiceUnavailable || env.Code != services.CodeNotConfigured {
		t.Fatalf("create booking = %d %s", w.Code, w.Body.String())
	}

	token := login(t, r)
	w, env = do(t, r, http.MethodPost, "/api/admin/villas", token, map[string]any{"name": "New Villa", "max_guests": 2})
	if w.Code != http.StatusServiceUnavailable || env.Code != services.CodeNotConfigured {
		t.Fatalf("create villa = %d %s", w.Code, w.Body.String())
	}
}

func TestAdminRoutesRequireToken(t *testing.T) {
	r := newRouter(nil)
	for _, path := range []string{"/api/admin/dashboard", "/api/admin/bookings", "/api/admin/occupancy"} {
		w, _ := do(t, r, http.MethodGet, path, "", nil)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s without token = %d, want 401", path, w.Code)
		}
		w, _ = do(t, r, http.MethodGet, path, "not-a-jwt", nil)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s with junk token = %d, want 401", path, w.Code)
		}
	}

	w, env := do(t, r, http.MethodPost, "/api/auth/login", "", map[string]string{"email": testEmail, "password": "wrong"})
	if w.Code != http.StatusUnauthorized || env.Code != services.CodeUnauthorized {
		t.Fatalf("bad login = %d %s", w.Code, w.Body.String())
	}

	token := login(t, r)
	w, _ = do(t, r, http.MethodGet, "/api/admin/dashboard", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("dashboard with token = %d %s", w.Code, w.Body.String())
	}
	w, _ = do(t, r, http.MethodGet, "/api/auth/me", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("me = %d", w.Code)
	}
}

func TestBookingFlow(t *testing.T) {
	db := newSQLiteDB(t)
	if _, err := services.NewSeedService(db).EnsureSeedData(context.Background(), testEmail, testPassword); err != nil {
		t.Fatalf("seed: %v", err)
	}
	r := newRouter(db)
	token := login(t, r)

	w, _ := do(t, r, http.MethodPost, "/api/admin/seed", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("seed = %d %s", w.Code, w.Body.String())
	}

	w, env := do(t, r, http.MethodPost, "/api/bookings", "", map[string]any{
		"guest_name": "Asha", "email": "asha@example.com", "check_in": "2024-02-01", "check_out": "2024-02-03",
		"guests": 2, "villa_id": "kingfisher", "advance_amount": 5000, "admin_notes": "vip",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create = %d %s", w.Code, w.Body.String())
	}
	var booking struct {
		ID            string  `json:"id"`
		BookingID     string  `json:"booking_id"`
		AdvanceAmount float64 `json:"advance_amount"`
		AdminNotes    string  `json:"admin_notes"`
	}
	_ = json.Unmarshal(env.Data, &booking)
	if booking.AdvanceAmount != 0 || booking.AdminNotes != "" {
		t.Fatalf("guest flow accepted admin-only fields: %+v", booking)
	}

	w, _ = do(t, r, http.MethodGet, "/api/bookings/"+booking.BookingID, "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("public lookup = %d", w.Code)
	}

	w, env = do(t, r, http.MethodPatch, "/api/admin/bookings/"+booking.ID+"/status", token, map[string]any{"status": "completed"})
	if w.Code != http.StatusUnprocessableEntity || env.Code != services.CodeInvalidTransition {
		t.Fatalf("invalid transition = %d %s", w.Code, w.Body.String())
	}
	w, _ = do(t, r, http.MethodPatch, "/api/admin/bookings/"+booking.ID+"/status", token, map[string]any{"status": "bogus"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unknown status = %d", w.Code)
	}
	w, _ = do(t, r, http.MethodPatch, "/api/admin/bookings/"+booking.ID+"/status", token, map[string]any{"status": "confirmed"})
	if w.Code != http.StatusOK {
		t.Fatalf("confirm = %d %s", w.Code, w.Body.String())
	}

	w, _ = do(t, r, http.MethodGet, "/api/admin/occupancy/rooms?villa_id=kingfisher&date=2024-02-02", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("room-wise = %d %s", w.Code, w.Body.String())
	}

	w, _ = do(t, r, http.MethodGet, "/api/admin/bookings/export.csv", token, nil)
	if w.Code != http.StatusOK || w.Header().Get("Content-Type") != "text/csv; charset=utf-8" {
		t.Fatalf("export = %d %q", w.Code, w.Header().Get("Content-Type"))
	}

	w, env = do(t, r, http.MethodDelete, "/api/admin/villas/kingfisher", token, nil)
	if w.Code != http.StatusConflict || env.Code != services.CodeHasBookings {
		t.Fatalf("delete villa with bookings = %d %s", w.Code, w.Body.String())
	}
}

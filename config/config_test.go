package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "DATABASE_URL", "SUPABASE_DB_URL", "DB_HOST", "CORS_ORIGINS", "JWT_TTL_HOURS", "BOOKING_HOLD_MINUTES", "RAZORPAY_KEY_ID"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	if cfg.Port != "8080" || cfg.JWTTTL != 24*time.Hour || cfg.HoldDuration != 15*time.Minute {
		t.Fatalf("defaults = %+v", cfg)
	}
	if cfg.DatabaseConfigured() || cfg.PaymentConfigured() {
		t.Fatal("nothing should be configured by default")
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Fatalf("cors = %v", cfg.CORSOrigins)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SUPABASE_DB_URL", "postgres://u:p@db.example.com:5432/villa")
	t.Setenv("CORS_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("JWT_TTL_HOURS", "2")
	t.Setenv("SEED_ON_START", "yes")
	t.Setenv("BOOKING_HOLD_MINUTES", "-4")

	cfg := Load()
	if !cfg.DatabaseConfigured() {
		t.Fatal("database url not picked up")
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" {
		t.Fatalf("cors = %v", cfg.CORSOrigins)
	}
	if cfg.JWTTTL != 2*time.Hour || !cfg.SeedOnStart || cfg.HoldDuration != 15*time.Minute {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestIsConfiguredValue(t *testing.T) {
	cases := map[string]bool{
		"":                         false,
		"   ":                      false,
		"your-project.supabase.co": false,
		"rzp_placeholder":          false,
		"rzp_live_123":             true,
	}
	for v, want := range cases {
		if got := IsConfiguredValue(v); got != want {
			t.Errorf("IsConfiguredValue(%q) = %v, want %v", v, got, want)
		}
	}
}

func TestMySQLDSNFromURL(t *testing.T) {
	dsn, err := mysqlDSNFromURL("mysql://villa:pw@db.local/resort")
	if err != nil {
		t.Fatalf("dsn: %v", err)
	}
	want := "villa:pw@tcp(db.local:3306)/resort"
	if len(dsn) < len(want) || dsn[:len(want)] != want {
		t.Fatalf("dsn = %q, want prefix %q", dsn, want)
	}
}

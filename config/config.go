package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// AppConfig is read once at startup and passed down explicitly.
type AppConfig struct {
	Port        string
	DatabaseURL string
	DBDriver    string
	CORSOrigins []string

	JWTSecret string
	JWTTTL    time.Duration

	RedisURL string

	SeedOnStart      bool
	DashboardRefresh string
	CacheSweep       string
	HoldSweep        string
	HoldDuration     time.Duration

	AdminEmail    string
	AdminPassword string

	RazorpayKeyID     string
	EmailJSServiceID  string
	EmailJSTemplateID string
	EmailJSPublicKey  string
}

func Load() AppConfig {
	return AppConfig{
		Port:        EnvOrDefault("PORT", "8080"),
		DatabaseURL: firstNonEmpty(os.Getenv("DATABASE_URL"), os.Getenv("SUPABASE_DB_URL")),
		DBDriver:    strings.ToLower(EnvOrDefault("DB_DRIVER", "postgres")),
		CORSOrigins: parseList(os.Getenv("CORS_ORIGINS")),

		JWTSecret: EnvOrDefault("JWT_SECRET", "villa-dev-secret"),
		JWTTTL:    time.Duration(envInt("JWT_TTL_HOURS", 24)) * time.Hour,

		RedisURL: strings.TrimSpace(os.Getenv("REDIS_URL")),

		SeedOnStart:      envBool("SEED_ON_START", false),
		DashboardRefresh: EnvOrDefault("DASHBOARD_REFRESH", "@every 60s"),
		CacheSweep:       EnvOrDefault("CACHE_SWEEP", "@every 1h"),
		HoldSweep:        EnvOrDefault("HOLD_SWEEP", "@every 1m"),
		HoldDuration:     time.Duration(envInt("BOOKING_HOLD_MINUTES", 15)) * time.Minute,

		AdminEmail:    EnvOrDefault("ADMIN_EMAIL", "admin@villaresort.local"),
		AdminPassword: EnvOrDefault("ADMIN_PASSWORD", "admin123"),

		RazorpayKeyID:     os.Getenv("RAZORPAY_KEY_ID"),
		EmailJSServiceID:  os.Getenv("EMAILJS_SERVICE_ID"),
		EmailJSTemplateID: os.Getenv("EMAILJS_TEMPLATE_ID"),
		EmailJSPublicKey:  os.Getenv("EMAILJS_PUBLIC_KEY"),
	}
}

// DatabaseConfigured is false when no DSN or discrete DB_HOST is set, or the
// value is still a template placeholder.
func (c AppConfig) DatabaseConfigured() bool {
	if IsConfiguredValue(c.DatabaseURL) {
		return true
	}
	return IsConfiguredValue(os.Getenv("DB_HOST"))
}

func (c AppConfig) PaymentConfigured() bool {
	return IsConfiguredValue(c.RazorpayKeyID)
}

func (c AppConfig) EmailConfigured() bool {
	return IsConfiguredValue(c.EmailJSServiceID) &&
		IsConfiguredValue(c.EmailJSTemplateID) &&
		IsConfiguredValue(c.EmailJSPublicKey)
}

// IsConfiguredValue rejects empty values and the placeholders shipped in .env.example.
func IsConfiguredValue(v string) bool {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "" {
		return false
	}
	return !strings.Contains(v, "your-") && !strings.Contains(v, "your_") && !strings.Contains(v, "placeholder")
}

// EnvOrDefault returns ENV value or fallback default.
func EnvOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func envInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil || i <= 0 {
		return def
	}
	return i
}

func envBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

func parseList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{"*"}
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

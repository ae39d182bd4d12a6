package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"villa-backend/models"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "UTC")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

// resolveDialector picks the gorm driver from the DSN scheme. Supabase hands out
// postgres:// URLs; mysql:// is kept for self-hosted installs.
func resolveDialector(cfg AppConfig) (gorm.Dialector, string, error) {
	raw := strings.TrimSpace(cfg.DatabaseURL)
	if raw != "" {
		switch {
		case strings.HasPrefix(raw, "postgres://"), strings.HasPrefix(raw, "postgresql://"):
			return postgres.Open(raw), "postgres", nil
		case strings.HasPrefix(raw, "mysql://"):
			dsn, err := mysqlDSNFromURL(raw)
			if err != nil {
				return nil, "", err
			}
			return mysql.Open(dsn), "mysql", nil
		case strings.Contains(raw, "host="):
			return postgres.Open(raw), "postgres", nil
		default:
			return mysql.Open(raw), "mysql", nil
		}
	}

	host := EnvOrDefault("DB_HOST", "127.0.0.1")
	user := EnvOrDefault("DB_USER", "postgres")
	pass := os.Getenv("DB_PASS")
	name := EnvOrDefault("DB_NAME", "villa_db")

	if cfg.DBDriver == "mysql" {
		port := EnvOrDefault("DB_PORT", "3306")
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			user, pass, host, port, name,
		)
		return mysql.Open(dsn), "mysql", nil
	}

	port := EnvOrDefault("DB_PORT", "5432")
	sslmode := EnvOrDefault("DB_SSLMODE", "require")
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		host, port, user, pass, name, sslmode,
	)
	return postgres.Open(dsn), "postgres", nil
}

// ConnectDatabase opens the configured database and applies migrations.
func ConnectDatabase(cfg AppConfig) (*gorm.DB, error) {
	dialector, driver, err := resolveDialector(cfg)
	if err != nil {
		return nil, err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         newLogger,
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, err
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	} else {
		log.Printf("info: cannot get raw sql.DB: %v", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	log.Printf("✅ Connected to %s and migrations applied", driver)

	return db, nil
}

// Migrate runs AutoMigrate in parent->child order.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Admin{},
		&models.Villa{},
		&models.Package{},
		&models.VillaUnit{},
		&models.Booking{},
		&models.BookingUnit{},
		&models.BookingHold{},
		&models.InventoryBlock{},
		&models.SafariOption{},
		&models.SafariQuery{},
	)
}

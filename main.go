package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"villa-backend/cache"
	"villa-backend/config"
	"villa-backend/controllers"
	"villa-backend/routes"
	"villa-backend/scheduler"
	"villa-backend/services"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env not found or couldn't load it; continuing with environment variables")
	}
	cfg := config.Load()

	var db *gorm.DB
	if cfg.DatabaseConfigured() {
		var err error
		db, err = config.ConnectDatabase(cfg)
		if err != nil {
			log.Fatalf("❌ Database connect failed: %v", err)
		}
		log.Println("✅ Database connection established and migrations applied.")
	} else {
		log.Println("⚠️  DATABASE_URL not configured; running in demo mode (writes disabled)")
	}

	store := cache.New(cfg.RedisURL)

	// Initialize services
	inventory := services.NewInventoryService(db)
	villas := services.NewVillaService(db, inventory)
	packages := services.NewPackageService(db)
	occupancy := services.NewOccupancyService(inventory, villas, store)
	bookings := services.NewBookingService(db, villas, packages, inventory, store)
	bookings.HoldDuration = cfg.HoldDuration
	safari := services.NewSafariService(db)
	seed := services.NewSeedService(db)
	auth := services.NewAuthService(db, cfg.JWTSecret, cfg.JWTTTL, cfg.AdminEmail, cfg.AdminPassword)
	admin := services.NewAdminService(db, villas, packages, store, services.Integrations{
		Database: cfg.DatabaseConfigured(),
		Payment:  cfg.PaymentConfigured(),
		Email:    cfg.EmailConfigured(),
	})

	if cfg.SeedOnStart && db != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if _, err := seed.EnsureSeedData(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			log.Printf("⚠️  seeding failed: %v", err)
		}
		cancel()
	}

	jobs, err := scheduler.Start(
		scheduler.Job{
			Name:     "dashboard-refresh",
			Schedule: cfg.DashboardRefresh,
			Run: func(ctx context.Context) error {
				_, err := admin.RefreshDashboard(ctx)
				return err
			},
		},
		scheduler.Job{
			Name:     "cache-sweep",
			Schedule: cfg.CacheSweep,
			Run: func(ctx context.Context) error {
				if n := store.Sweep(); n > 0 {
					log.Printf("🧹 cache sweep removed %d expired entries", n)
				}
				return nil
			},
		},
		scheduler.Job{
			Name:     "hold-sweep",
			Schedule: cfg.HoldSweep,
			Run: func(ctx context.Context) error {
				n, err := bookings.SweepExpiredHolds(ctx)
				if n > 0 {
					log.Printf("🧹 released %d expired booking hold(s)", n)
				}
				return err
			},
		},
	)
	if err != nil {
		log.Fatalf("❌ Scheduler start failed: %v", err)
	}

	router := routes.SetupRouter(routes.Controllers{
		Villas:    controllers.NewVillaController(villas),
		Packages:  controllers.NewPackageController(packages),
		Bookings:  controllers.NewBookingController(bookings),
		Inventory: controllers.NewInventoryController(inventory, occupancy),
		Occupancy: controllers.NewOccupancyController(occupancy),
		Safari:    controllers.NewSafariController(safari),
		Admin:     controllers.NewAdminController(admin, seed, cfg.AdminEmail, cfg.AdminPassword),
		Auth:      controllers.NewAuthController(auth),
	}, cfg.CORSOrigins, cfg.JWTSecret)

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("🚀 Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe(): %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("⚠️  Shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("❌ Server forced to shutdown: %v", err)
	}
	jobs.Stop(ctx)
	if err := store.Close(); err != nil {
		log.Printf("⚠️  cache close: %v", err)
	}
	if db != nil {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}

	log.Println("✅ Server stopped gracefully")
}

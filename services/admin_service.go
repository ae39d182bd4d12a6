package services

import (
	"context"
	"errors"
	"log"
	"math"
	"strings"
	"time"

	"villa-backend/cache"
	"villa-backend/models"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const (
	dashboardKey = "dashboard:stats"
	dashboardTTL = 60 * time.Second
)

// Integrations reports which outside services have real credentials.
type Integrations struct {
	Database bool
	Payment  bool
	Email    bool
}

// AdminService manages admin accounts and the dashboard aggregate.
type AdminService struct {
	DB           *gorm.DB
	Villas       *VillaService
	Packages     *PackageService
	Cache        cache.Store
	Integrations Integrations
	Now          func() time.Time
}

func NewAdminService(db *gorm.DB, villas *VillaService, packages *PackageService, store cache.Store, integrations Integrations) *AdminService {
	return &AdminService{
		DB:           db,
		Villas:       villas,
		Packages:     packages,
		Cache:        store,
		Integrations: integrations,
		Now:          func() time.Time { return time.Now().UTC() },
	}
}

type AdminInput struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

func (s *AdminService) ListAdmins(ctx context.Context) ([]models.Admin, error) {
	if s.DB == nil {
		return nil, ErrNotConfigured
	}
	var admins []models.Admin
	if err := s.DB.WithContext(ctx).Order("id ASC").Find(&admins).Error; err != nil {
		return nil, ClassifyDBError(err)
	}
	return admins, nil
}

func (s *AdminService) CreateAdmin(ctx context.Context, in AdminInput) (*models.Admin, error) {
	if s.DB == nil {
		return nil, ErrNotConfigured
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, &ServiceError{Code: CodeInternal, Message: "failed to hash password", Err: err}
	}
	admin := models.Admin{
		FullName: strings.TrimSpace(in.FullName),
		Email:    strings.ToLower(strings.TrimSpace(in.Email)),
		Password: string(hash),
	}
	if err := s.DB.WithContext(ctx).Create(&admin).Error; err != nil {
		return nil, ClassifyDBError(err)
	}
	return &admin, nil
}

func (s *AdminService) DeleteAdmin(ctx context.Context, id uint) error {
	if s.DB == nil {
		return ErrNotConfigured
	}
	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.Admin{}).Count(&count).Error; err != nil {
		return ClassifyDBError(err)
	}
	if count <= 1 {
		return newError(CodeConflict, "Cannot delete the last admin account")
	}
	res := s.DB.WithContext(ctx).Delete(&models.Admin{}, id)
	if res.Error != nil {
		return ClassifyDBError(res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound("admin")
	}
	return nil
}

type VillaCounts struct {
	Total       int64 `json:"total"`
	Active      int64 `json:"active"`
	Inactive    int64 `json:"inactive"`
	Maintenance int64 `json:"maintenance"`
}

type PackageCounts struct {
	Total    int64 `json:"total"`
	Active   int64 `json:"active"`
	Inactive int64 `json:"inactive"`
}

type BookingCounts struct {
	Total     int64 `json:"total"`
	Pending   int64 `json:"pending"`
	Confirmed int64 `json:"confirmed"`
}

type IntegrationStatus struct {
	Database       string `json:"database"`
	PaymentGateway string `json:"payment_gateway"`
	EmailService   string `json:"email_service"`
}

type DashboardStats struct {
	Villas               VillaCounts       `json:"villas"`
	Packages             PackageCounts     `json:"packages"`
	Bookings             BookingCounts     `json:"bookings"`
	PendingSafariQueries int64             `json:"pending_safari_queries"`
	Revenue              float64           `json:"revenue"`
	OccupancyRate        int               `json:"occupancy_rate"`
	RecentBookings       []models.Booking  `json:"recent_bookings"`
	Integrations         IntegrationStatus `json:"integrations"`
	GeneratedAt          time.Time         `json:"generated_at"`
}

func statusLabel(configured bool) string {
	if configured {
		return "configured"
	}
	return "demo"
}

// DashboardStats serves the cached aggregate unless fresh is set.
func (s *AdminService) DashboardStats(ctx context.Context, fresh bool) (*DashboardStats, error) {
	if !fresh && s.Cache != nil {
		var cached DashboardStats
		if ok, err := s.Cache.Get(ctx, dashboardKey, &cached); err == nil && ok {
			return &cached, nil
		}
	}
	return s.RefreshDashboard(ctx)
}

// RefreshDashboard recomputes the aggregate and stores it in the cache.
func (s *AdminService) RefreshDashboard(ctx context.Context) (*DashboardStats, error) {
	stats, err := s.computeDashboard(ctx)
	if err != nil {
		return nil, err
	}
	if s.Cache != nil {
		if err := s.Cache.Set(ctx, dashboardKey, stats, dashboardTTL); err != nil {
			log.Printf("⚠️  failed to cache dashboard stats: %v", err)
		}
	}
	return stats, nil
}

func (s *AdminService) computeDashboard(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{
		RecentBookings: []models.Booking{},
		Integrations: IntegrationStatus{
			Database:       statusLabel(s.Integrations.Database && s.DB != nil),
			PaymentGateway: statusLabel(s.Integrations.Payment),
			EmailService:   statusLabel(s.Integrations.Email),
		},
		GeneratedAt: s.Now(),
	}

	if s.DB == nil {
		villas, _ := s.Villas.ListVillas(ctx)
		for _, v := range villas {
			stats.Villas.Total++
			countVilla(&stats.Villas, v.Status, 1)
		}
		pkgs, _ := s.Packages.ListPackages(ctx)
		for _, p := range pkgs {
			stats.Packages.Total++
			if p.IsActive {
				stats.Packages.Active++
			} else {
				stats.Packages.Inactive++
			}
		}
		return stats, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	db := s.DB.WithContext(gctx)

	g.Go(func() error {
		var rows []struct {
			Status models.VillaStatus
			Count  int64
		}
		if err := db.Model(&models.Villa{}).Select("status, COUNT(*) AS count").Group("status").Scan(&rows).Error; err != nil {
			return err
		}
		for _, r := range rows {
			stats.Villas.Total += r.Count
			countVilla(&stats.Villas, r.Status, r.Count)
		}
		return nil
	})
	g.Go(func() error {
		if err := db.Model(&models.Package{}).Count(&stats.Packages.Total).Error; err != nil {
			return err
		}
		if err := db.Model(&models.Package{}).Where("is_active = ?", true).Count(&stats.Packages.Active).Error; err != nil {
			return err
		}
		stats.Packages.Inactive = stats.Packages.Total - stats.Packages.Active
		return nil
	})
	g.Go(func() error {
		var rows []struct {
			Status models.BookingStatus
			Count  int64
		}
		if err := db.Model(&models.Booking{}).Select("status, COUNT(*) AS count").Group("status").Scan(&rows).Error; err != nil {
			return err
		}
		for _, r := range rows {
			stats.Bookings.Total += r.Count
			switch r.Status {
			case models.BookingStatusPending:
				stats.Bookings.Pending = r.Count
			case models.BookingStatusConfirmed:
				stats.Bookings.Confirmed = r.Count
			}
		}
		return nil
	})
	g.Go(func() error {
		return db.Model(&models.SafariQuery{}).Where("status = ?", models.SafariStatusPending).
			Count(&stats.PendingSafariQueries).Error
	})
	g.Go(func() error {
		var revenue struct{ Total float64 }
		if err := db.Model(&models.Booking{}).Select("COALESCE(SUM(total_amount), 0) AS total").
			Where("payment_status = ?", models.PaymentStatusPaid).Scan(&revenue).Error; err != nil {
			return err
		}
		stats.Revenue = revenue.Total
		return nil
	})
	g.Go(func() error {
		return db.Preload("Unit").Order("created_at DESC").Limit(5).Find(&stats.RecentBookings).Error
	})

	if err := g.Wait(); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, ClassifyDBError(err)
	}

	stats.OccupancyRate = EstimatedOccupancy(stats.Bookings.Total, stats.Villas.Total)
	return stats, nil
}

func countVilla(c *VillaCounts, status models.VillaStatus, n int64) {
	switch status {
	case models.VillaStatusActive:
		c.Active += n
	case models.VillaStatusInactive:
		c.Inactive += n
	case models.VillaStatusMaintenance:
		c.Maintenance += n
	}
}

// EstimatedOccupancy is the simplified dashboard figure
// min(bookings / (villas x 30) x 100, 100). It ignores dates.
func EstimatedOccupancy(totalBookings, totalVillas int64) int {
	if totalVillas <= 0 {
		return 0
	}
	rate := float64(totalBookings) / float64(totalVillas*30) * 100
	return int(math.Round(math.Min(rate, 100)))
}

package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"villa-backend/models"

	"github.com/jinzhu/now"
	"gorm.io/gorm"
)

// VillaService wraps *gorm.DB for villa CRUD. A nil DB means the database is
// not configured: reads serve demo data and writes fail with ErrNotConfigured.
type VillaService struct {
	DB        *gorm.DB
	Inventory *InventoryService
}

func NewVillaService(db *gorm.DB, inventory *InventoryService) *VillaService {
	return &VillaService{DB: db, Inventory: inventory}
}

type VillaInput struct {
	ID          string             `json:"id"`
	Name        string             `json:"name" binding:"required"`
	Description string             `json:"description"`
	BasePrice   float64            `json:"base_price" binding:"gte=0"`
	MaxGuests   int                `json:"max_guests" binding:"gte=1"`
	Amenities   []string           `json:"amenities"`
	Images      []string           `json:"images"`
	Status      models.VillaStatus `json:"status" binding:"omitempty,villa_status"`
}

type VillaStats struct {
	VillaID          string  `json:"villa_id"`
	TotalBookings    int64   `json:"total_bookings"`
	TotalRevenue     float64 `json:"total_revenue"`
	OccupancyPercent int     `json:"occupancy_percent"`
	Month            string  `json:"month"`
}

func (s *VillaService) ListVillas(ctx context.Context) ([]models.Villa, error) {
	if s.DB == nil {
		return DemoVillas(), nil
	}
	var villas []models.Villa
	if err := s.DB.WithContext(ctx).Order("name ASC").Find(&villas).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve villas: %w", err)
	}
	return villas, nil
}

func (s *VillaService) GetVilla(ctx context.Context, id string) (*models.Villa, error) {
	if s.DB == nil {
		for _, v := range DemoVillas() {
			if v.ID == id {
				return &v, nil
			}
		}
		return nil, notFound("villa")
	}
	var v models.Villa
	if err := s.DB.WithContext(ctx).First(&v, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("villa")
		}
		return nil, ClassifyDBError(err)
	}
	return &v, nil
}

func (s *VillaService) CreateVilla(ctx context.Context, in VillaInput) (*models.Villa, error) {
	if s.DB == nil {
		return nil, ErrNotConfigured
	}
	id := strings.TrimSpace(in.ID)
	if id == "" {
		id = Slugify(in.Name)
	}
	if id == "" {
		return nil, validationError("villa name is required")
	}
	status := in.Status
	if status == "" {
		status = models.VillaStatusActive
	}

	v := models.Villa{
		ID:          id,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		BasePrice:   in.BasePrice,
		MaxGuests:   in.MaxGuests,
		Amenities:   in.Amenities,
		Images:      in.Images,
		Status:      status,
	}
	if err := s.DB.WithContext(ctx).Create(&v).Error; err != nil {
		return nil, ClassifyDBError(err)
	}
	return &v, nil
}

func (s *VillaService) UpdateVilla(ctx context.Context, id string, in VillaInput) (*models.Villa, error) {
	if s.DB == nil {
		return nil, ErrNotConfigured
	}
	v, err := s.GetVilla(ctx, id)
	if err != nil {
		return nil, err
	}

	v.Name = strings.TrimSpace(in.Name)
	v.Description = in.Description
	v.BasePrice = in.BasePrice
	v.MaxGuests = in.MaxGuests
	v.Amenities = in.Amenities
	v.Images = in.Images
	if in.Status != "" {
		v.Status = in.Status
	}

	if err := s.DB.WithContext(ctx).Save(v).Error; err != nil {
		return nil, ClassifyDBError(err)
	}
	return v, nil
}

// DeleteVilla refuses while any booking references the villa.
func (s *VillaService) DeleteVilla(ctx context.Context, id string) error {
	if s.DB == nil {
		return ErrNotConfigured
	}
	db := s.DB.WithContext(ctx)

	var refs int64
	if err := db.Model(&models.Booking{}).Where("villa_id = ?", id).Count(&refs).Error; err != nil {
		return ClassifyDBError(err)
	}
	if refs > 0 {
		return newError(CodeHasBookings, fmt.Sprintf("Cannot delete villa: %d booking(s) reference it", refs))
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var unitIDs []uint
		if err := tx.Model(&models.VillaUnit{}).Where("villa_id = ?", id).Pluck("id", &unitIDs).Error; err != nil {
			return err
		}
		if len(unitIDs) > 0 {
			if err := tx.Where("villa_inventory_id IN ?", unitIDs).Delete(&models.InventoryBlock{}).Error; err != nil {
				return err
			}
			if err := tx.Where("villa_id = ?", id).Delete(&models.VillaUnit{}).Error; err != nil {
				return err
			}
		}
		res := tx.Where("id = ?", id).Delete(&models.Villa{})
		if res.Error != nil {
			return ClassifyDBError(res.Error)
		}
		if res.RowsAffected == 0 {
			return notFound("villa")
		}
		return nil
	})
}

// ToggleVillaStatus flips active <-> inactive; maintenance goes back to active.
// Read-then-write, not atomic.
func (s *VillaService) ToggleVillaStatus(ctx context.Context, id string) (*models.Villa, error) {
	if s.DB == nil {
		return nil, ErrNotConfigured
	}
	v, err := s.GetVilla(ctx, id)
	if err != nil {
		return nil, err
	}
	next := models.VillaStatusActive
	if v.Status == models.VillaStatusActive {
		next = models.VillaStatusInactive
	}
	if err := s.DB.WithContext(ctx).Model(v).Update("status", next).Error; err != nil {
		return nil, ClassifyDBError(err)
	}
	v.Status = next
	return v, nil
}

// GetVillaStats aggregates all bookings of the villa plus the occupancy of the
// calendar month containing at.
func (s *VillaService) GetVillaStats(ctx context.Context, id string, at time.Time) (*VillaStats, error) {
	if s.DB == nil {
		return nil, ErrNotConfigured
	}
	if _, err := s.GetVilla(ctx, id); err != nil {
		return nil, err
	}

	var bookings []models.Booking
	if err := s.DB.WithContext(ctx).Where("villa_id = ?", id).Find(&bookings).Error; err != nil {
		return nil, ClassifyDBError(err)
	}

	stats := &VillaStats{VillaID: id, TotalBookings: int64(len(bookings))}
	for _, b := range bookings {
		if b.PaymentStatus == models.PaymentStatusPaid {
			stats.TotalRevenue += b.TotalAmount
		}
	}

	month := now.With(at.UTC())
	start := models.DateOnly(month.BeginningOfMonth())
	end := models.DateOnly(month.EndOfMonth()).AddDate(0, 0, 1)
	days := int(end.Sub(start).Hours() / 24)
	stats.Month = start.Format("2006-01")

	occupiedNights := 0
	for _, b := range bookings {
		if !b.HoldsInventory() || !Overlaps(start, end, b.CheckIn, b.CheckOut) {
			continue
		}
		eachNight(b.CheckIn, b.CheckOut, func(d time.Time) {
			if !d.Before(start) && d.Before(end) {
				occupiedNights++
			}
		})
	}

	units := models.DefaultUnitCounts[id]
	if s.Inventory != nil {
		if n, err := s.Inventory.TotalUnits(ctx, id); err == nil {
			units = n
		}
	}
	if units <= 0 {
		units = 1
	}
	stats.OccupancyPercent = OccupancyRate(occupiedNights, units*days)
	return stats, nil
}

// Slugify lowercases and hyphenates a display name.
func Slugify(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteByte('-')
			lastDash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

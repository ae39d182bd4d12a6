package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"villa-backend/models"

	"gorm.io/gorm"
)

type PackageService struct {
	DB *gorm.DB
}

func NewPackageService(db *gorm.DB) *PackageService {
	return &PackageService{DB: db}
}

type PackageInput struct {
	ID          string   `json:"id"`
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Price       float64  `json:"price" binding:"gte=0"`
	Duration    string   `json:"duration"`
	Inclusions  []string `json:"inclusions"`
	Images      []string `json:"images"`
	IsActive    *bool    `json:"is_active"`
}

func (s *PackageService) ListPackages(ctx context.Context) ([]models.Package, error) {
	if s.DB == nil {
		return DemoPackages(), nil
	}
	var pkgs []models.Package
	if err := s.DB.WithContext(ctx).Order("name ASC").Find(&pkgs).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve packages: %w", err)
	}
	return pkgs, nil
}

func (s *PackageService) GetPackage(ctx context.Context, id string) (*models.Package, error) {
	if s.DB == nil {
		for _, p := range DemoPackages() {
			if p.ID == id {
				return &p, nil
			}
		}
		return nil, notFound("package")
	}
	var p models.Package
	if err := s.DB.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("package")
		}
		return nil, ClassifyDBError(err)
	}
	return &p, nil
}

func (s *PackageService) CreatePackage(ctx context.Context, in PackageInput) (*models.Package, error) {
	if s.DB == nil {
		return nil, ErrNotConfigured
	}
	id := strings.TrimSpace(in.ID)
	if id == "" {
		id = Slugify(in.Name)
	}
	if id == "" {
		return nil, validationError("package name is required")
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}

	p := models.Package{
		ID:          id,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
		Duration:    in.Duration,
		Inclusions:  in.Inclusions,
		Images:      in.Images,
		IsActive:    active,
	}
	if err := s.DB.WithContext(ctx).Create(&p).Error; err != nil {
		return nil, ClassifyDBError(err)
	}
	return &p, nil
}

func (s *PackageService) UpdatePackage(ctx context.Context, id string, in PackageInput) (*models.Package, error) {
	if s.DB == nil {
		return nil, ErrNotConfigured
	}
	p, err := s.GetPackage(ctx, id)
	if err != nil {
		return nil, err
	}

	p.Name = strings.TrimSpace(in.Name)
	p.Description = in.Description
	p.Price = in.Price
	p.Duration = in.Duration
	p.Inclusions = in.Inclusions
	p.Images = in.Images
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}

	if err := s.DB.WithContext(ctx).Save(p).Error; err != nil {
		return nil, ClassifyDBError(err)
	}
	return p, nil
}

// DeletePackage refuses while any booking references the package.
func (s *PackageService) DeletePackage(ctx context.Context, id string) error {
	if s.DB == nil {
		return ErrNotConfigured
	}
	db := s.DB.WithContext(ctx)

	var refs int64
	if err := db.Model(&models.Booking{}).Where("package_id = ?", id).Count(&refs).Error; err != nil {
		return ClassifyDBError(err)
	}
	if refs > 0 {
		return newError(CodeHasBookings, fmt.Sprintf("Cannot delete package: %d booking(s) reference it", refs))
	}

	res := db.Where("id = ?", id).Delete(&models.Package{})
	if res.Error != nil {
		return ClassifyDBError(res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound("package")
	}
	return nil
}

func (s *PackageService) TogglePackageStatus(ctx context.Context, id string) (*models.Package, error) {
	if s.DB == nil {
		return nil, ErrNotConfigured
	}
	p, err := s.GetPackage(ctx, id)
	if err != nil {
		return nil, err
	}
	next := !p.IsActive
	if err := s.DB.WithContext(ctx).Model(p).Update("is_active", next).Error; err != nil {
		return nil, ClassifyDBError(err)
	}
	p.IsActive = next
	return p, nil
}

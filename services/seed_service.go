package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"villa-backend/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SeedResult struct {
	Villas        int `json:"villas"`
	Packages      int `json:"packages"`
	SafariOptions int `json:"safari_options"`
	Units         int `json:"units"`
	Admins        int `json:"admins"`
}

type SeedService struct {
	DB *gorm.DB
}

func NewSeedService(db *gorm.DB) *SeedService {
	return &SeedService{DB: db}
}

// EnsureSeedData inserts the demo catalogue and the default admin where missing.
// It is idempotent; individual failures are logged and skipped.
func (s *SeedService) EnsureSeedData(ctx context.Context, adminEmail, adminPassword string) (SeedResult, error) {
	var res SeedResult
	if s.DB == nil {
		return res, ErrNotConfigured
	}
	db := s.DB.WithContext(ctx)

	for _, v := range DemoVillas() {
		v := v
		tx := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&v)
		if tx.Error != nil {
			log.Printf("warning: failed to seed villa %s: %v", v.ID, tx.Error)
			continue
		}
		res.Villas += int(tx.RowsAffected)
	}

	for _, p := range DemoPackages() {
		p := p
		tx := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&p)
		if tx.Error != nil {
			log.Printf("warning: failed to seed package %s: %v", p.ID, tx.Error)
			continue
		}
		res.Packages += int(tx.RowsAffected)
	}

	for _, o := range DemoSafariOptions() {
		var existing models.SafariOption
		err := db.Where("name = ?", o.Name).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("warning: failed to check safari option %s: %v", o.Name, err)
			continue
		}
		o.ID = 0
		if err := db.Create(&o).Error; err != nil {
			log.Printf("warning: failed to seed safari option %s: %v", o.Name, err)
			continue
		}
		res.SafariOptions++
	}

	for _, u := range DemoUnits() {
		var count int64
		if err := db.Model(&models.VillaUnit{}).
			Where("villa_id = ? AND unit_number = ?", u.VillaID, u.UnitNumber).
			Count(&count).Error; err != nil {
			log.Printf("warning: failed to check unit %s/%d: %v", u.VillaID, u.UnitNumber, err)
			continue
		}
		if count > 0 {
			continue
		}
		u.ID = 0
		if err := db.Create(&u).Error; err != nil {
			log.Printf("warning: failed to seed unit %s/%d: %v", u.VillaID, u.UnitNumber, err)
			continue
		}
		res.Units++
	}

	adminEmail = strings.ToLower(strings.TrimSpace(adminEmail))
	var adminCount int64
	db.Model(&models.Admin{}).Where("email = ?", adminEmail).Count(&adminCount)
	if adminCount == 0 && adminEmail != "" && adminPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("warning: failed to hash default admin password: %v", err)
		} else {
			admin := models.Admin{FullName: "Resort Admin", Email: adminEmail, Password: string(hash)}
			if err := db.Create(&admin).Error; err != nil {
				log.Printf("warning: failed to create default admin: %v", err)
			} else {
				res.Admins++
			}
		}
	}

	log.Printf("Seed data ensured: %+v", res)
	return res, nil
}

package models

import (
	"time"

	"gorm.io/datatypes"
)

// Package is an add-on bundle (meals, safaris, transfers) priced per night.
type Package struct {
	ID          string                      `gorm:"primaryKey;size:64" json:"id"`
	Name        string                      `gorm:"size:255;not null" json:"name"`
	Description string                      `gorm:"type:text" json:"description"`
	Price       float64                     `json:"price"`
	Duration    string                      `gorm:"size:64" json:"duration"`
	Inclusions  datatypes.JSONSlice[string] `gorm:"column:inclusions" json:"inclusions"`
	Images      datatypes.JSONSlice[string] `gorm:"column:images" json:"images"`
	IsActive    bool                        `gorm:"column:is_active;index" json:"is_active"`
	CreatedAt   time.Time                   `json:"created_at"`
	UpdatedAt   time.Time                   `json:"updated_at"`
}

package services

import (
	"fmt"

	"villa-backend/models"

	"gorm.io/datatypes"
)

// Static catalogue served when no database is configured, and inserted by EnsureSeedData.

func DemoVillas() []models.Villa {
	return []models.Villa{
		{
			ID:          "glass-cottage",
			Name:        "Glass Cottage",
			Description: "Glass-walled cottages facing the forest canopy, with private decks.",
			BasePrice:   15000,
			MaxGuests:   4,
			Amenities:   datatypes.JSONSlice[string]{"Air Conditioning", "Private Deck", "Forest View", "Wi-Fi", "Mini Bar"},
			Images:      datatypes.JSONSlice[string]{"/images/villas/glass-cottage-1.jpg", "/images/villas/glass-cottage-2.jpg"},
			Status:      models.VillaStatusActive,
		},
		{
			ID:          "hornbill",
			Name:        "Hornbill Villa",
			Description: "Spacious family villa named after the resident great hornbills.",
			BasePrice:   12000,
			MaxGuests:   6,
			Amenities:   datatypes.JSONSlice[string]{"Air Conditioning", "Living Room", "Garden", "Wi-Fi"},
			Images:      datatypes.JSONSlice[string]{"/images/villas/hornbill-1.jpg"},
			Status:      models.VillaStatusActive,
		},
		{
			ID:          "kingfisher",
			Name:        "Kingfisher Villa",
			Description: "Riverside villa with a shaded verandah over the water.",
			BasePrice:   10000,
			MaxGuests:   4,
			Amenities:   datatypes.JSONSlice[string]{"Air Conditioning", "River View", "Verandah", "Wi-Fi"},
			Images:      datatypes.JSONSlice[string]{"/images/villas/kingfisher-1.jpg"},
			Status:      models.VillaStatusActive,
		},
	}
}

func DemoPackages() []models.Package {
	return []models.Package{
		{
			ID:          "breakfast",
			Name:        "Bed & Breakfast",
			Description: "Daily breakfast at the riverside restaurant.",
			Price:       1000,
			Duration:    "per_night",
			Inclusions:  datatypes.JSONSlice[string]{"Breakfast"},
			IsActive:    true,
		},
		{
			ID:          "all-meals",
			Name:        "All Meals",
			Description: "Breakfast, lunch and dinner.",
			Price:       2000,
			Duration:    "per_night",
			Inclusions:  datatypes.JSONSlice[string]{"Breakfast", "Lunch", "Dinner"},
			IsActive:    true,
		},
		{
			ID:          "jungle-safari",
			Name:        "Jungle Safari Package",
			Description: "All meals plus one guided jeep safari per stay.",
			Price:       3500,
			Duration:    "per_night",
			Inclusions:  datatypes.JSONSlice[string]{"All Meals", "Jeep Safari", "Naturalist Guide"},
			IsActive:    true,
		},
	}
}

func DemoSafariOptions() []models.SafariOption {
	return []models.SafariOption{
		{
			ID:             1,
			Name:           "Jeep Safari",
			Description:    "Guided open-jeep drive through the core forest zone.",
			Duration:       "3 hours",
			PricePerPerson: 2500,
			MaxPersons:     6,
			Timings:        datatypes.JSONSlice[string]{"06:00", "15:00"},
			Highlights:     datatypes.JSONSlice[string]{"Elephants", "Gaur", "Birding"},
			IsActive:       true,
		},
		{
			ID:             2,
			Name:           "Boat Safari",
			Description:    "Backwater cruise at dawn.",
			Duration:       "2 hours",
			PricePerPerson: 1500,
			MaxPersons:     10,
			Timings:        datatypes.JSONSlice[string]{"06:30", "16:00"},
			Highlights:     datatypes.JSONSlice[string]{"Kingfishers", "Otters"},
			IsActive:       true,
		},
		{
			ID:             3,
			Name:           "Nature Walk",
			Description:    "Walking trail with a resident naturalist.",
			Duration:       "90 minutes",
			PricePerPerson: 800,
			MaxPersons:     12,
			Timings:        datatypes.JSONSlice[string]{"07:00"},
			Highlights:     datatypes.JSONSlice[string]{"Butterflies", "Medicinal plants"},
			IsActive:       true,
		},
	}
}

// DemoUnits expands DefaultUnitCounts into inventory rows.
func DemoUnits() []models.VillaUnit {
	var units []models.VillaUnit
	id := uint(1)
	for _, v := range DemoVillas() {
		count := models.DefaultUnitCounts[v.ID]
		for n := 1; n <= count; n++ {
			units = append(units, models.VillaUnit{
				ID:         id,
				VillaID:    v.ID,
				UnitNumber: n,
				RoomType:   v.Name,
				Floor:      fmt.Sprintf("%d", (n-1)/8),
				ViewType:   "forest",
				Status:     models.UnitStatusAvailable,
			})
			id++
		}
	}
	return units
}

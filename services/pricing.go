package services

import (
	"time"

	"villa-backend/models"

	"github.com/shopspring/decimal"
)

var taxRate = decimal.RequireFromString("0.18")

// Quote is the priced breakdown of a stay.
type Quote struct {
	Nights          int     `json:"nights"`
	VillaPrice      float64 `json:"villa_price"`
	PackagePrice    float64 `json:"package_price"`
	Subtotal        float64 `json:"subtotal"`
	Taxes           float64 `json:"taxes"`
	TotalAmount     float64 `json:"total_amount"`
	AdvanceAmount   float64 `json:"advance_amount"`
	RemainingAmount float64 `json:"remaining_amount"`
}

// PriceStay computes subtotal = nights x (villa + package), taxes = round(subtotal x 18%)
// and total = subtotal + taxes, all in whole currency units.
func PriceStay(villaPrice, packagePrice float64, checkIn, checkOut time.Time, advance float64) Quote {
	nights := models.NightsBetween(checkIn, checkOut)

	perNight := decimal.NewFromFloat(villaPrice).Add(decimal.NewFromFloat(packagePrice))
	subtotal := perNight.Mul(decimal.NewFromInt(int64(nights)))
	taxes := subtotal.Mul(taxRate).Round(0)
	total := subtotal.Add(taxes).Round(0)

	return Quote{
		Nights:          nights,
		VillaPrice:      villaPrice,
		PackagePrice:    packagePrice,
		Subtotal:        subtotal.InexactFloat64(),
		Taxes:           taxes.InexactFloat64(),
		TotalAmount:     total.InexactFloat64(),
		AdvanceAmount:   advance,
		RemainingAmount: RemainingAmount(total.InexactFloat64(), advance),
	}
}

// RemainingAmount is max(0, total - advance) when an advance was paid, otherwise the total.
func RemainingAmount(total, advance float64) float64 {
	if advance <= 0 {
		return total
	}
	r := decimal.NewFromFloat(total).Sub(decimal.NewFromFloat(advance))
	if r.IsNegative() {
		return 0
	}
	return r.InexactFloat64()
}

// applyPricing recomputes the money fields of b from its snapshot and dates.
func applyPricing(b *models.Booking) {
	q := PriceStay(b.VillaPrice, b.PackagePrice, b.CheckIn, b.CheckOut, b.AdvanceAmount)
	b.TotalAmount = q.TotalAmount
	b.RemainingAmount = q.RemainingAmount
}

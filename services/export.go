package services

import (
	"fmt"
	"io"
	"strconv"

	"villa-backend/models"
	"villa-backend/utils"
)

var bookingCSVHeader = []string{
	"Booking ID", "Guest Name", "Email", "Phone", "Villa", "Package",
	"Check In", "Check Out", "Nights", "Guests", "Status", "Payment Status",
	"Total Amount", "Advance Amount", "Remaining Amount", "Unit", "Created At",
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// WriteBookingsCSV exports one row per booking.
func WriteBookingsCSV(w io.Writer, bookings []models.Booking) error {
	rows := make([][]string, 0, len(bookings))
	for _, b := range bookings {
		pkg := ""
		if b.PackageName != nil {
			pkg = *b.PackageName
		}
		unit := ""
		if b.Unit != nil {
			unit = UnitLabel(b.Unit.VillaID, b.Unit.UnitNumber)
		}
		rows = append(rows, []string{
			b.BookingID,
			b.GuestName,
			b.Email,
			b.Phone,
			b.VillaName,
			pkg,
			b.CheckIn.Format(dateLayout),
			b.CheckOut.Format(dateLayout),
			strconv.Itoa(b.Nights()),
			strconv.Itoa(b.Guests),
			string(b.Status),
			string(b.PaymentStatus),
			money(b.TotalAmount),
			money(b.AdvanceAmount),
			money(b.RemainingAmount),
			unit,
			b.CreatedAt.UTC().Format("2006-01-02 15:04"),
		})
	}
	return utils.WriteCSV(w, bookingCSVHeader, rows)
}

// WriteOccupancyCSV exports one row per villa per night plus an overall row per night.
func WriteOccupancyCSV(w io.Writer, reports []OccupancyReport) error {
	header := []string{"Date", "Villa", "Occupied", "Total", "Available", "Occupancy Rate"}
	var rows [][]string
	for _, r := range reports {
		for _, v := range r.Villas {
			rows = append(rows, []string{
				r.Date, v.VillaName, strconv.Itoa(v.Occupied), strconv.Itoa(v.Total),
				strconv.Itoa(v.Available), fmt.Sprintf("%d%%", v.Rate),
			})
		}
		rows = append(rows, []string{
			r.Date, "All villas", strconv.Itoa(r.TotalOccupied), strconv.Itoa(r.TotalUnits),
			strconv.Itoa(AvailableCount(r.TotalUnits, r.TotalOccupied)), fmt.Sprintf("%d%%", r.OverallRate),
		})
	}
	return utils.WriteCSV(w, header, rows)
}

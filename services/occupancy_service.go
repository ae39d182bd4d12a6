package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"villa-backend/cache"
	"villa-backend/models"

	"github.com/jinzhu/now"
	"golang.org/x/sync/errgroup"
)

const occupancyTTL = 60 * time.Second

// OccupancyService reports nightly usage per villa and per unit. Unit
// placement comes from InventoryService.layout, the same one AssignUnit persists.
type OccupancyService struct {
	Inventory *InventoryService
	Villas    *VillaService
	Cache     cache.Store
}

func NewOccupancyService(inventory *InventoryService, villas *VillaService, store cache.Store) *OccupancyService {
	return &OccupancyService{Inventory: inventory, Villas: villas, Cache: store}
}

type UnitOccupancy struct {
	UnitNumber int               `json:"unit_number"`
	Label      string            `json:"label"`
	Status     string            `json:"status"`
	UnitStatus models.UnitStatus `json:"unit_status"`
	BookingID  string            `json:"booking_id,omitempty"`
	Reference  string            `json:"booking_reference,omitempty"`
	GuestName  string            `json:"guest_name,omitempty"`
	CheckIn    *time.Time        `json:"check_in,omitempty"`
	CheckOut   *time.Time        `json:"check_out,omitempty"`
	Assigned   bool              `json:"assigned"`
}

type RoomWiseOccupancy struct {
	VillaID string          `json:"villa_id"`
	Date    string          `json:"date"`
	Units   []UnitOccupancy `json:"units"`
}

type VillaOccupancy struct {
	VillaID   string `json:"villa_id"`
	VillaName string `json:"villa_name"`
	Occupied  int    `json:"occupied"`
	Total     int    `json:"total"`
	Available int    `json:"available"`
	Rate      int    `json:"rate"`
}

type OccupancyReport struct {
	Date          string           `json:"date"`
	Villas        []VillaOccupancy `json:"villas"`
	TotalOccupied int              `json:"total_occupied"`
	TotalUnits    int              `json:"total_units"`
	OverallRate   int              `json:"overall_rate"`
}

type CalendarDay struct {
	Date      string `json:"date"`
	Total     int    `json:"total"`
	Blocked   int    `json:"blocked"`
	Occupied  int    `json:"occupied"`
	Held      int    `json:"held"`
	Available int    `json:"available"`
}

type AvailabilityCalendar struct {
	VillaID string        `json:"villa_id"`
	Month   string        `json:"month"`
	Days    []CalendarDay `json:"days"`
}

const (
	unitFree       = "available"
	unitOccupied   = "occupied"
	unitBlocked    = "blocked"
	unitOutOfOrder = "out_of_service"
)

// GetRoomWiseOccupancy lists every unit of the villa for the night of date.
func (s *OccupancyService) GetRoomWiseOccupancy(ctx context.Context, villaID string, date time.Time) (*RoomWiseOccupancy, error) {
	day := models.DateOnly(date)
	next := day.AddDate(0, 0, 1)
	inv := s.Inventory

	units, err := inv.ListUnits(ctx, villaID)
	if err != nil {
		return nil, err
	}
	if len(units) == 0 {
		for i := 1; i <= models.DefaultUnitCounts[villaID]; i++ {
			units = append(units, models.VillaUnit{VillaID: villaID, UnitNumber: i, Status: models.UnitStatusAvailable})
		}
	}

	l, err := inv.layout(ctx, villaID, day, next, nil)
	if err != nil {
		return nil, err
	}
	p, assigned, placement, bookings := l.Planner, l.Assigned, l.Placement, l.Bookings

	byUnit := map[int]models.Booking{}
	for _, b := range bookings {
		u, ok := placement[b.ID]
		if ok && Overlaps(day, next, b.CheckIn, b.CheckOut) {
			byUnit[u] = b
		}
	}

	out := &RoomWiseOccupancy{VillaID: villaID, Date: day.Format(dateLayout)}
	for _, u := range units {
		row := UnitOccupancy{
			UnitNumber: u.UnitNumber,
			Label:      UnitLabel(villaID, u.UnitNumber),
			Status:     unitFree,
			UnitStatus: u.Status,
		}
		switch {
		case u.Status != "" && u.Status != models.UnitStatusAvailable:
			row.Status = unitOutOfOrder
		case p.blocked[u.UnitNumber][day.Format(dateLayout)]:
			row.Status = unitBlocked
		}
		if b, ok := byUnit[u.UnitNumber]; ok {
			in, outDay := b.CheckIn, b.CheckOut
			row.Status = unitOccupied
			row.BookingID = b.ID
			row.Reference = b.BookingID
			row.GuestName = b.GuestName
			row.CheckIn = &in
			row.CheckOut = &outDay
			_, row.Assigned = assigned[b.ID]
		}
		out.Units = append(out.Units, row)
	}
	return out, nil
}

// GetOccupancy reports occupied units per villa for the night of date.
func (s *OccupancyService) GetOccupancy(ctx context.Context, date time.Time) (*OccupancyReport, error) {
	day := models.DateOnly(date)
	key := "occupancy:" + day.Format(dateLayout)

	var cached OccupancyReport
	if s.Cache != nil {
		if ok, err := s.Cache.Get(ctx, key, &cached); err == nil && ok {
			return &cached, nil
		}
	}

	series, err := s.GetOccupancyRange(ctx, day, day)
	if err != nil {
		return nil, err
	}
	report := series[0]

	if s.Cache != nil {
		if err := s.Cache.Set(ctx, key, report, occupancyTTL); err != nil {
			log.Printf("⚠️  failed to cache %s: %v", key, err)
		}
	}
	return &report, nil
}

// GetOccupancyRange returns one report per night from..to inclusive. Bookings
// and unit counts are loaded once for the whole range.
func (s *OccupancyService) GetOccupancyRange(ctx context.Context, from, to time.Time) ([]OccupancyReport, error) {
	from, to = models.DateOnly(from), models.DateOnly(to)
	if to.Before(from) {
		return nil, validationError("to must not be before from")
	}
	if to.Sub(from) > 366*24*time.Hour {
		return nil, validationError("range is limited to one year")
	}
	end := to.AddDate(0, 0, 1)

	villas, err := s.Villas.ListVillas(ctx)
	if err != nil {
		return nil, err
	}

	totals := make([]int, len(villas))
	var bookings []models.Booking
	g, gctx := errgroup.WithContext(ctx)
	for i, v := range villas {
		i, v := i, v
		g.Go(func() error {
			n, err := s.Inventory.TotalUnits(gctx, v.ID)
			if err != nil {
				return err
			}
			totals[i] = n
			return nil
		})
	}
	g.Go(func() error {
		var err error
		bookings, err = s.Inventory.bookingsOverlapping(gctx, "", from, end)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byVilla := map[string][]models.Booking{}
	for _, b := range bookings {
		byVilla[b.VillaID] = append(byVilla[b.VillaID], b)
	}

	var out []OccupancyReport
	for d := from; d.Before(end); d = d.AddDate(0, 0, 1) {
		next := d.AddDate(0, 0, 1)
		r := OccupancyReport{Date: d.Format(dateLayout), Villas: make([]VillaOccupancy, 0, len(villas))}
		for i, v := range villas {
			occ := CountOverlapping(byVilla[v.ID], d, next)
			r.Villas = append(r.Villas, VillaOccupancy{
				VillaID:   v.ID,
				VillaName: v.Name,
				Occupied:  occ,
				Total:     totals[i],
				Available: AvailableCount(totals[i], occ),
				Rate:      OccupancyRate(occ, totals[i]),
			})
			r.TotalOccupied += occ
			r.TotalUnits += totals[i]
		}
		r.OverallRate = OccupancyRate(r.TotalOccupied, r.TotalUnits)
		out = append(out, r)
	}
	return out, nil
}

// GetAvailabilityCalendar returns per-night capacity for the month ("2006-01").
func (s *OccupancyService) GetAvailabilityCalendar(ctx context.Context, villaID, month string) (*AvailabilityCalendar, error) {
	first, err := time.Parse("2006-01", month)
	if err != nil {
		return nil, validationError("invalid month %q, expected YYYY-MM", month)
	}
	m := now.With(first)
	start := models.DateOnly(m.BeginningOfMonth())
	end := models.DateOnly(m.EndOfMonth()).AddDate(0, 0, 1)
	inv := s.Inventory

	p, _, err := inv.planner(ctx, villaID, start, end)
	if err != nil {
		return nil, err
	}
	bookings, err := inv.bookingsOverlapping(ctx, villaID, start, end)
	if err != nil {
		return nil, err
	}
	holds, err := inv.holdsOverlapping(ctx, villaID, start, end)
	if err != nil {
		return nil, err
	}

	cal := &AvailabilityCalendar{VillaID: villaID, Month: fmt.Sprintf("%04d-%02d", start.Year(), start.Month())}
	total := len(p.units)
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		next := d.AddDate(0, 0, 1)
		day := CalendarDay{
			Date:     d.Format(dateLayout),
			Total:    total,
			Blocked:  p.BlockedUnits(d, next),
			Occupied: CountOverlapping(bookings, d, next),
		}
		for _, h := range holds {
			if Overlaps(d, next, h.CheckIn, h.CheckOut) {
				day.Held += h.Units
			}
		}
		day.Available = AvailableCount(total-day.Blocked, day.Occupied+day.Held)
		cal.Days = append(cal.Days, day)
	}
	return cal, nil
}

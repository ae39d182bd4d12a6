package services

import (
	"math"
	"sort"
	"time"

	"villa-backend/models"
)

const dateLayout = "2006-01-02"

// Overlaps reports whether the stay [otherIn, otherOut) intersects [checkIn, checkOut).
// Checkout day itself is not occupied.
func Overlaps(checkIn, checkOut, otherIn, otherOut time.Time) bool {
	checkIn, checkOut = models.DateOnly(checkIn), models.DateOnly(checkOut)
	otherIn, otherOut = models.DateOnly(otherIn), models.DateOnly(otherOut)

	startsInside := !otherIn.Before(checkIn) && otherIn.Before(checkOut)
	endsInside := checkIn.Before(otherOut) && !otherOut.After(checkOut)
	covers := !otherIn.After(checkIn) && !otherOut.Before(checkOut)
	return startsInside || endsInside || covers
}

// AvailableCount is max(0, total - occupied).
func AvailableCount(total, occupied int) int {
	if occupied >= total {
		return 0
	}
	return total - occupied
}

// OccupancyRate rounds occupied/total*100 half-up, like JavaScript Math.round.
func OccupancyRate(occupied, total int) int {
	if total <= 0 {
		return 0
	}
	return roundHalfUp(float64(occupied) / float64(total) * 100)
}

func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

// CountOverlapping counts bookings that hold inventory and intersect the range.
func CountOverlapping(bookings []models.Booking, checkIn, checkOut time.Time) int {
	n := 0
	for _, b := range bookings {
		if b.HoldsInventory() && Overlaps(checkIn, checkOut, b.CheckIn, b.CheckOut) {
			n++
		}
	}
	return n
}

// eachNight calls fn for every night of [checkIn, checkOut).
func eachNight(checkIn, checkOut time.Time, fn func(time.Time)) {
	end := models.DateOnly(checkOut)
	for d := models.DateOnly(checkIn); d.Before(end); d = d.AddDate(0, 0, 1) {
		fn(d)
	}
}

type stayRange struct {
	in, out time.Time
}

// UnitPlanner places stays onto physical units. Every caller uses the same rule:
// the lowest-numbered in-service unit that is neither blocked on any night of the
// stay nor already taken by an overlapping stay.
type UnitPlanner struct {
	units   []int
	blocked map[int]map[string]bool
	taken   map[int][]stayRange
}

func NewUnitPlanner(units []int) *UnitPlanner {
	sorted := append([]int(nil), units...)
	sort.Ints(sorted)
	return &UnitPlanner{
		units:   sorted,
		blocked: map[int]map[string]bool{},
		taken:   map[int][]stayRange{},
	}
}

func (p *UnitPlanner) Block(unit int, date time.Time) {
	if p.blocked[unit] == nil {
		p.blocked[unit] = map[string]bool{}
	}
	p.blocked[unit][models.DateOnly(date).Format(dateLayout)] = true
}

// Reserve records an existing placement without checking it.
func (p *UnitPlanner) Reserve(unit int, checkIn, checkOut time.Time) {
	p.taken[unit] = append(p.taken[unit], stayRange{in: checkIn, out: checkOut})
}

func (p *UnitPlanner) isFree(unit int, checkIn, checkOut time.Time) bool {
	for _, r := range p.taken[unit] {
		if Overlaps(checkIn, checkOut, r.in, r.out) {
			return false
		}
	}
	free := true
	if days := p.blocked[unit]; len(days) > 0 {
		eachNight(checkIn, checkOut, func(d time.Time) {
			if days[d.Format(dateLayout)] {
				free = false
			}
		})
	}
	return free
}

// Pick reserves and returns the first free unit, or false when the villa is full.
func (p *UnitPlanner) Pick(checkIn, checkOut time.Time) (int, bool) {
	for _, u := range p.units {
		if p.isFree(u, checkIn, checkOut) {
			p.Reserve(u, checkIn, checkOut)
			return u, true
		}
	}
	return 0, false
}

// FreeUnits counts units with no block and no overlapping stay in the range.
func (p *UnitPlanner) FreeUnits(checkIn, checkOut time.Time) int {
	n := 0
	for _, u := range p.units {
		if p.isFree(u, checkIn, checkOut) {
			n++
		}
	}
	return n
}

// BlockedUnits counts units blocked on at least one night of the range.
func (p *UnitPlanner) BlockedUnits(checkIn, checkOut time.Time) int {
	n := 0
	for _, u := range p.units {
		days := p.blocked[u]
		if len(days) == 0 {
			continue
		}
		hit := false
		eachNight(checkIn, checkOut, func(d time.Time) {
			if days[d.Format(dateLayout)] {
				hit = true
			}
		})
		if hit {
			n++
		}
	}
	return n
}

// sortForPlacement orders bookings by check-in, then booking reference, so
// derived placements are stable between calls.
func sortForPlacement(bookings []models.Booking) {
	sort.SliceStable(bookings, func(i, j int) bool {
		if !bookings[i].CheckIn.Equal(bookings[j].CheckIn) {
			return bookings[i].CheckIn.Before(bookings[j].CheckIn)
		}
		return bookings[i].BookingID < bookings[j].BookingID
	})
}

// PlaceBookings returns booking ID -> unit number. Persisted assignments are
// honoured first; the rest are placed with Pick. Bookings that do not fit are absent.
func PlaceBookings(p *UnitPlanner, bookings []models.Booking, assigned map[string]int) map[string]int {
	out := make(map[string]int, len(bookings))
	pending := make([]models.Booking, 0, len(bookings))
	for _, b := range bookings {
		if !b.HoldsInventory() {
			continue
		}
		if u, ok := assigned[b.ID]; ok && u > 0 {
			p.Reserve(u, b.CheckIn, b.CheckOut)
			out[b.ID] = u
			continue
		}
		pending = append(pending, b)
	}

	sortForPlacement(pending)
	for _, b := range pending {
		if u, ok := p.Pick(b.CheckIn, b.CheckOut); ok {
			out[b.ID] = u
		}
	}
	return out
}

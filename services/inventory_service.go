package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"villa-backend/models"

	"gorm.io/gorm"
)

// InventoryService answers capacity questions and owns unit assignment.
type InventoryService struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewInventoryService(db *gorm.DB) *InventoryService {
	return &InventoryService{DB: db, Now: func() time.Time { return time.Now().UTC() }}
}

type Availability struct {
	VillaID      string    `json:"villa_id"`
	CheckIn      time.Time `json:"check_in"`
	CheckOut     time.Time `json:"check_out"`
	TotalUnits   int       `json:"total_units"`
	BlockedUnits int       `json:"blocked_units"`
	Occupied     int       `json:"occupied"`
	Held         int       `json:"held"`
	Available    int       `json:"available"`
}

type UnitInput struct {
	VillaID    string            `json:"villa_id" binding:"required"`
	UnitNumber int               `json:"unit_number" binding:"required,gte=1"`
	RoomType   string            `json:"room_type"`
	Floor      string            `json:"floor"`
	ViewType   string            `json:"view_type"`
	Status     models.UnitStatus `json:"status" binding:"omitempty,unit_status"`
}

type BlockInput struct {
	VillaInventoryID uint             `json:"villa_inventory_id" binding:"required"`
	BlockDate        string           `json:"block_date" binding:"required"`
	BlockType        models.BlockType `json:"block_type" binding:"required,block_type"`
	Notes            string           `json:"notes"`
}

func activeBookingScope(db *gorm.DB) *gorm.DB {
	return db.Where("status NOT IN ?", []models.BookingStatus{models.BookingStatusCancelled, models.BookingStatusNoShow}).
		Where("payment_status <> ?", models.PaymentStatusFailed)
}

// UnitView adds the display label to a unit row.
type UnitView struct {
	models.VillaUnit
	Label string `json:"label"`
}

func NewUnitView(u models.VillaUnit) UnitView {
	return UnitView{VillaUnit: u, Label: UnitLabel(u.VillaID, u.UnitNumber)}
}

// UnitLabel renders a unit for display, e.g. GC-03.
func UnitLabel(villaID string, unitNumber int) string {
	return fmt.Sprintf("%s-%02d", models.UnitPrefix(villaID), unitNumber)
}

func (s *InventoryService) ListUnits(ctx context.Context, villaID string) ([]models.VillaUnit, error) {
	if s.DB == nil {
		var out []models.VillaUnit
		for _, u := range DemoUnits() {
			if villaID == "" || u.VillaID == villaID {
				out = append(out, u)
			}
		}
		return out, nil
	}
	q := s.DB.WithContext(ctx).Order("villa_id ASC, unit_number ASC")
	if villaID != "" {
		q = q.Where("villa_id = ?", villaID)
	}
	var units []models.VillaUnit
	if err := q.Find(&units).Error; err != nil {
		return nil, ClassifyDBError(err)
	}
	return units, nil
}

// inServiceUnits returns unit numbers usable for guests and all unit rows.
// Without inventory rows the villa's fixed count is used.
func (s *InventoryService) inServiceUnits(ctx context.Context, villaID string) ([]int, []models.VillaUnit, error) {
	units, err := s.ListUnits(ctx, villaID)
	if err != nil {
		return nil, nil, err
	}
	if len(units) == 0 {
		n := models.DefaultUnitCounts[villaID]
		numbers := make([]int, 0, n)
		for i := 1; i <= n; i++ {
			numbers = append(numbers, i)
		}
		return numbers, nil, nil
	}
	numbers := make([]int, 0, len(units))
	for _, u := range units {
		if u.Status == models.UnitStatusAvailable || u.Status == "" {
			numbers = append(numbers, u.UnitNumber)
		}
	}
	return numbers, units, nil
}

// TotalUnits is the number of in-service units of a villa.
func (s *InventoryService) TotalUnits(ctx context.Context, villaID string) (int, error) {
	numbers, _, err := s.inServiceUnits(ctx, villaID)
	if err != nil {
		return 0, err
	}
	return len(numbers), nil
}

// planner builds a UnitPlanner for the villa with blocks in [from, to) applied.
func (s *InventoryService) planner(ctx context.Context, villaID string, from, to time.Time) (*UnitPlanner, []models.VillaUnit, error) {
	numbers, units, err := s.inServiceUnits(ctx, villaID)
	if err != nil {
		return nil, nil, err
	}
	p := NewUnitPlanner(numbers)
	if s.DB == nil || len(units) == 0 {
		return p, units, nil
	}

	byID := make(map[uint]int, len(units))
	for _, u := range units {
		byID[u.ID] = u.UnitNumber
	}
	blocks, err := s.blocksFor(ctx, villaID, from, to)
	if err != nil {
		return nil, nil, err
	}
	for _, b := range blocks {
		if n, ok := byID[b.VillaInventoryID]; ok {
			p.Block(n, b.BlockDate)
		}
	}
	return p, units, nil
}

func (s *InventoryService) blocksFor(ctx context.Context, villaID string, from, to time.Time) ([]models.InventoryBlock, error) {
	var blocks []models.InventoryBlock
	err := s.DB.WithContext(ctx).
		Joins("JOIN villa_units ON villa_units.id = inventory_blocks.villa_inventory_id").
		Where("villa_units.villa_id = ?", villaID).
		Where("inventory_blocks.block_date >= ? AND inventory_blocks.block_date < ?", models.DateOnly(from), models.DateOnly(to)).
		Order("inventory_blocks.block_date ASC").
		Find(&blocks).Error
	if err != nil {
		return nil, ClassifyDBError(err)
	}
	return blocks, nil
}

// bookingsOverlapping loads bookings of the villa that hold inventory in [from, to).
// An empty villaID loads every villa.
func (s *InventoryService) bookingsOverlapping(ctx context.Context, villaID string, from, to time.Time) ([]models.Booking, error) {
	if s.DB == nil {
		return nil, nil
	}
	q := activeBookingScope(s.DB.WithContext(ctx)).
		Where("check_in < ? AND check_out > ?", models.DateOnly(to), models.DateOnly(from))
	if villaID != "" {
		q = q.Where("villa_id = ?", villaID)
	}
	var bookings []models.Booking
	if err := q.Find(&bookings).Error; err != nil {
		return nil, ClassifyDBError(err)
	}

	out := bookings[:0]
	for _, b := range bookings {
		if b.HoldsInventory() && Overlaps(from, to, b.CheckIn, b.CheckOut) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *InventoryService) holdsOverlapping(ctx context.Context, villaID string, from, to time.Time) ([]models.BookingHold, error) {
	if s.DB == nil {
		return nil, nil
	}
	var holds []models.BookingHold
	err := s.DB.WithContext(ctx).
		Where("villa_id = ? AND expires_at > ?", villaID, s.Now()).
		Where("check_in < ? AND check_out > ?", models.DateOnly(to), models.DateOnly(from)).
		Find(&holds).Error
	if err != nil {
		return nil, ClassifyDBError(err)
	}
	return holds, nil
}

// GetAvailableUnits answers "is there capacity" for a stay; it does not pick a unit.
func (s *InventoryService) GetAvailableUnits(ctx context.Context, villaID string, checkIn, checkOut time.Time) (*Availability, error) {
	checkIn, checkOut = models.DateOnly(checkIn), models.DateOnly(checkOut)
	if !checkOut.After(checkIn) {
		return nil, validationError("check_out must be after check_in")
	}

	p, _, err := s.planner(ctx, villaID, checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	bookings, err := s.bookingsOverlapping(ctx, villaID, checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	holds, err := s.holdsOverlapping(ctx, villaID, checkIn, checkOut)
	if err != nil {
		return nil, err
	}

	a := &Availability{
		VillaID:      villaID,
		CheckIn:      checkIn,
		CheckOut:     checkOut,
		TotalUnits:   len(p.units),
		BlockedUnits: p.BlockedUnits(checkIn, checkOut),
		Occupied:     CountOverlapping(bookings, checkIn, checkOut),
	}
	for _, h := range holds {
		a.Held += h.Units
	}
	a.Available = AvailableCount(a.TotalUnits-a.BlockedUnits, a.Occupied+a.Held)
	return a, nil
}

func (s *InventoryService) CreateUnit(ctx context.Context, in UnitInput) (*models.VillaUnit, error) {
	if s.DB == nil {
		return nil, ErrNotConfigured
	}
	status := in.Status
	if status == "" {
		status = models.UnitStatusAvailable
	}
	u := models.VillaUnit{
		VillaID:    in.VillaID,
		UnitNumber: in.UnitNumber,
		RoomType:   in.RoomType,
		Floor:      in.Floor,
		ViewType:   in.ViewType,
		Status:     status,
	}
	if err := s.DB.WithContext(ctx).Create(&u).Error; err != nil {
		return nil, ClassifyDBError(err)
	}
	return &u, nil
}

func (s *InventoryService) UpdateUnit(ctx context.Context, id uint, in UnitInput) (*models.VillaUnit, error) {
	if s.DB == nil {
		return nil, ErrNotConfigured
	}
	var u models.VillaUnit
	if err := s.DB.WithContext(ctx).First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("unit")
		}
		return nil, ClassifyDBError(err)
	}
	u.RoomType = in.RoomType
	u.Floor = in.Floor
	u.ViewType = in.ViewType
	if in.Status != "" {
		u.Status = in.Status
	}
	if err := s.DB.WithContext(ctx).Save(&u).Error; err != nil {
		return nil, ClassifyDBError(err)
	}
	return &u, nil
}

func (s *InventoryService) DeleteUnit(ctx context.Context, id uint) error {
	if s.DB == nil {
		return ErrNotConfigured
	}
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("villa_inventory_id = ?", id).Delete(&models.InventoryBlock{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.VillaUnit{}, id)
		if res.Error != nil {
			return ClassifyDBError(res.Error)
		}
		if res.RowsAffected == 0 {
			return notFound("unit")
		}
		return nil
	})
}

func (s *InventoryService) CreateBlock(ctx context.Context, in BlockInput) (*models.InventoryBlock, error) {
	if s.DB == nil {
		return nil, ErrNotConfigured
	}
	date, err := ParseDate(in.BlockDate)
	if err != nil {
		return nil, validationError("invalid block_date: %s", in.BlockDate)
	}
	var unit models.VillaUnit
	if err := s.DB.WithContext(ctx).First(&unit, in.VillaInventoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("unit")
		}
		return nil, ClassifyDBError(err)
	}

	b := models.InventoryBlock{
		VillaInventoryID: unit.ID,
		BlockDate:        date,
		BlockType:        in.BlockType,
		Notes:            in.Notes,
	}
	if err := s.DB.WithContext(ctx).Create(&b).Error; err != nil {
		return nil, ClassifyDBError(err)
	}
	b.Unit = &unit
	return &b, nil
}

func (s *InventoryService) ListBlocks(ctx context.Context, villaID string, from, to time.Time) ([]models.InventoryBlock, error) {
	if s.DB == nil {
		return []models.InventoryBlock{}, nil
	}
	q := s.DB.WithContext(ctx).Preload("Unit").
		Joins("JOIN villa_units ON villa_units.id = inventory_blocks.villa_inventory_id").
		Where("inventory_blocks.block_date >= ? AND inventory_blocks.block_date < ?", models.DateOnly(from), models.DateOnly(to)).
		Order("inventory_blocks.block_date ASC")
	if villaID != "" {
		q = q.Where("villa_units.villa_id = ?", villaID)
	}
	var blocks []models.InventoryBlock
	if err := q.Find(&blocks).Error; err != nil {
		return nil, ClassifyDBError(err)
	}
	return blocks, nil
}

func (s *InventoryService) DeleteBlock(ctx context.Context, id uint) error {
	if s.DB == nil {
		return ErrNotConfigured
	}
	res := s.DB.WithContext(ctx).Delete(&models.InventoryBlock{}, id)
	if res.Error != nil {
		return ClassifyDBError(res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound("block")
	}
	return nil
}

// stayLayout is the unit placement of every active stay in [From, To).
type stayLayout struct {
	From      time.Time
	To        time.Time
	Planner   *UnitPlanner
	Bookings  []models.Booking
	Assigned  map[string]int
	Placement map[string]int
}

// maxWiden bounds how often layout grows its window.
const maxWiden = 32

// layout places the villa's active stays around [from, to) on units. The
// window widens until it covers every stay that touches it, so any window
// inside the same run of overlapping stays yields the same placement.
// Persisted assignments are honoured first. When pending is set it replaces
// the stored copy of that booking (or joins the set when not stored yet).
func (s *InventoryService) layout(ctx context.Context, villaID string, from, to time.Time, pending *models.Booking) (*stayLayout, error) {
	from, to = models.DateOnly(from), models.DateOnly(to)
	var bookings []models.Booking
	for i := 0; i < maxWiden; i++ {
		loaded, err := s.bookingsOverlapping(ctx, villaID, from, to)
		if err != nil {
			return nil, err
		}
		bookings = withPending(loaded, pending, villaID, from, to)
		wider := false
		for _, b := range bookings {
			if b.CheckIn.Before(from) {
				from, wider = models.DateOnly(b.CheckIn), true
			}
			if b.CheckOut.After(to) {
				to, wider = models.DateOnly(b.CheckOut), true
			}
		}
		if !wider {
			break
		}
	}

	p, _, err := s.planner(ctx, villaID, from, to)
	if err != nil {
		return nil, err
	}
	assigned, err := s.assignedUnits(ctx, bookings)
	if err != nil {
		return nil, err
	}
	if pending != nil {
		delete(assigned, pending.ID)
	}
	return &stayLayout{
		From:      from,
		To:        to,
		Planner:   p,
		Bookings:  bookings,
		Assigned:  assigned,
		Placement: PlaceBookings(p, bookings, assigned),
	}, nil
}

func withPending(bookings []models.Booking, pending *models.Booking, villaID string, from, to time.Time) []models.Booking {
	if pending == nil {
		return bookings
	}
	out := bookings[:0]
	for _, b := range bookings {
		if b.ID != pending.ID {
			out = append(out, b)
		}
	}
	if pending.VillaID == villaID && pending.HoldsInventory() && Overlaps(from, to, pending.CheckIn, pending.CheckOut) {
		out = append(out, *pending)
	}
	return out
}

// assignedUnits maps booking ID -> persisted unit number.
func (s *InventoryService) assignedUnits(ctx context.Context, bookings []models.Booking) (map[string]int, error) {
	out := map[string]int{}
	if s.DB == nil || len(bookings) == 0 {
		return out, nil
	}
	ids := make([]string, 0, len(bookings))
	for _, b := range bookings {
		ids = append(ids, b.ID)
	}
	var rows []models.BookingUnit
	if err := s.DB.WithContext(ctx).Where("booking_id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, ClassifyDBError(err)
	}
	for _, r := range rows {
		out[r.BookingID] = r.UnitNumber
	}
	return out, nil
}

// AssignUnit persists the unit the booking already occupies in the derived
// layout, the same one room-wise occupancy shows. An existing assignment is
// returned unchanged.
func (s *InventoryService) AssignUnit(ctx context.Context, b *models.Booking) (*models.BookingUnit, error) {
	if s.DB == nil {
		return nil, ErrNotConfigured
	}
	db := s.DB.WithContext(ctx)

	var existing models.BookingUnit
	err := db.Where("booking_id = ?", b.ID).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ClassifyDBError(err)
	}

	l, err := s.layout(ctx, b.VillaID, b.CheckIn, b.CheckOut, b)
	if err != nil {
		return nil, err
	}
	unit, ok := l.Placement[b.ID]
	if !ok {
		return nil, newError(CodeUnavailable, fmt.Sprintf("No free unit in %s for %s to %s",
			b.VillaName, b.CheckIn.Format(dateLayout), b.CheckOut.Format(dateLayout)))
	}

	bu := models.BookingUnit{
		BookingID:  b.ID,
		VillaID:    b.VillaID,
		UnitNumber: unit,
		CheckIn:    b.CheckIn,
		CheckOut:   b.CheckOut,
	}
	if err := db.Create(&bu).Error; err != nil {
		return nil, ClassifyDBError(err)
	}
	return &bu, nil
}

func (s *InventoryService) ReleaseUnit(ctx context.Context, bookingID string) error {
	if s.DB == nil {
		return ErrNotConfigured
	}
	return s.DB.WithContext(ctx).Where("booking_id = ?", bookingID).Delete(&models.BookingUnit{}).Error
}

func ParseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, err
	}
	return models.DateOnly(t), nil
}

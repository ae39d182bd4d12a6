package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"villa-backend/cache"
	"villa-backend/models"
	"villa-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookingService owns booking rows, their lifecycle and capacity holds.
type BookingService struct {
	DB        *gorm.DB
	Villas    *VillaService
	Packages  *PackageService
	Inventory *InventoryService
	Cache     cache.Store

	HoldDuration time.Duration
	Now          func() time.Time

	// capacity check and insert are serialized within the process
	mu sync.Mutex
}

func NewBookingService(db *gorm.DB, villas *VillaService, packages *PackageService, inventory *InventoryService, store cache.Store) *BookingService {
	return &BookingService{
		DB:           db,
		Villas:       villas,
		Packages:     packages,
		Inventory:    inventory,
		Cache:        store,
		HoldDuration: 15 * time.Minute,
		Now:          func() time.Time { return time.Now().UTC() },
	}
}

type BookingRequest struct {
	GuestName     string  `json:"guest_name" binding:"required"`
	Email         string  `json:"email" binding:"required,email"`
	Phone         string  `json:"phone"`
	CheckIn       string  `json:"check_in" binding:"required"`
	CheckOut      string  `json:"check_out" binding:"required"`
	Guests        int     `json:"guests" binding:"required,gte=1"`
	VillaID       string  `json:"villa_id" binding:"required"`
	PackageID     *string `json:"package_id"`
	AdvanceAmount float64 `json:"advance_amount" binding:"gte=0"`
	AdminNotes    string  `json:"admin_notes"`
	HoldID        string  `json:"hold_id"`
}

type QuoteRequest struct {
	VillaID       string  `json:"villa_id" binding:"required"`
	PackageID     *string `json:"package_id"`
	CheckIn       string  `json:"check_in" binding:"required"`
	CheckOut      string  `json:"check_out" binding:"required"`
	AdvanceAmount float64 `json:"advance_amount" binding:"gte=0"`
}

// BookingPatch carries optional edits; nil fields are left unchanged.
// An empty PackageID removes the package.
type BookingPatch struct {
	GuestName     *string  `json:"guest_name"`
	Email         *string  `json:"email" binding:"omitempty,email"`
	Phone         *string  `json:"phone"`
	CheckIn       *string  `json:"check_in"`
	CheckOut      *string  `json:"check_out"`
	Guests        *int     `json:"guests" binding:"omitempty,gte=1"`
	VillaID       *string  `json:"villa_id"`
	PackageID     *string  `json:"package_id"`
	AdvanceAmount *float64 `json:"advance_amount" binding:"omitempty,gte=0"`
	AdminNotes    *string  `json:"admin_notes"`
}

type BookingFilter struct {
	Status        models.BookingStatus
	PaymentStatus models.PaymentStatus
	VillaID       string
	From          *time.Time
	To            *time.Time
	Search        string
	Limit         int
	Offset        int
}

type StatusResult struct {
	Booking *models.Booking `json:"booking"`
	Warning string          `json:"warning,omitempty"`
}

type BulkStatusItem struct {
	ID      string `json:"id"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Warning string `json:"warning,omitempty"`
}

type PaymentUpdate struct {
	PaymentStatus models.PaymentStatus `json:"payment_status" binding:"required,payment_status"`
	AdvanceAmount *float64             `json:"advance_amount" binding:"omitempty,gte=0"`
}

type HoldRequest struct {
	VillaID    string `json:"villa_id" binding:"required"`
	CheckIn    string `json:"check_in" binding:"required"`
	CheckOut   string `json:"check_out" binding:"required"`
	Units      int    `json:"units" binding:"omitempty,gte=1,lte=14"`
	GuestEmail string `json:"guest_email" binding:"omitempty,email"`
}

func parseStay(checkIn, checkOut string) (time.Time, time.Time, error) {
	in, err := ParseDate(checkIn)
	if err != nil {
		return time.Time{}, time.Time{}, validationError("invalid check_in: %s", checkIn)
	}
	out, err := ParseDate(checkOut)
	if err != nil {
		return time.Time{}, time.Time{}, validationError("invalid check_out: %s", checkOut)
	}
	if !out.After(in) {
		return time.Time{}, time.Time{}, validationError("check_out must be after check_in")
	}
	return in, out, nil
}

// snapshot copies the current villa and package prices. requireActive rejects
// inactive catalogue entries.
func (s *BookingService) snapshot(ctx context.Context, villaID string, packageID *string, requireActive bool) (models.PriceSnapshot, *models.Villa, error) {
	var snap models.PriceSnapshot
	villa, err := s.Villas.GetVilla(ctx, villaID)
	if err != nil {
		return snap, nil, err
	}
	if requireActive && villa.Status != models.VillaStatusActive {
		return snap, nil, validationError("villa %s is not accepting bookings", villa.Name)
	}
	snap.VillaID = villa.ID
	snap.VillaName = villa.Name
	snap.VillaPrice = villa.BasePrice

	if packageID != nil && strings.TrimSpace(*packageID) != "" {
		pkg, err := s.Packages.GetPackage(ctx, strings.TrimSpace(*packageID))
		if err != nil {
			return snap, nil, err
		}
		if requireActive && !pkg.IsActive {
			return snap, nil, validationError("package %s is not available", pkg.Name)
		}
		id, name := pkg.ID, pkg.Name
		snap.PackageID = &id
		snap.PackageName = &name
		snap.PackagePrice = pkg.Price
	}
	return snap, villa, nil
}

// QuoteBooking prices a stay without persisting anything.
func (s *BookingService) QuoteBooking(ctx context.Context, req QuoteRequest) (*Quote, error) {
	in, out, err := parseStay(req.CheckIn, req.CheckOut)
	if err != nil {
		return nil, err
	}
	snap, _, err := s.snapshot(ctx, req.VillaID, req.PackageID, true)
	if err != nil {
		return nil, err
	}
	q := PriceStay(snap.VillaPrice, snap.PackagePrice, in, out, req.AdvanceAmount)
	return &q, nil
}

func (s *BookingService) CreateBooking(ctx context.Context, req BookingRequest) (*models.Booking, error) {
	if s.DB == nil {
		return nil, ErrNotConfigured
	}
	in, out, err := parseStay(req.CheckIn, req.CheckOut)
	if err != nil {
		return nil, err
	}
	snap, villa, err := s.snapshot(ctx, req.VillaID, req.PackageID, true)
	if err != nil {
		return nil, err
	}
	if villa.MaxGuests > 0 && req.Guests > villa.MaxGuests {
		return nil, validationError("%s allows at most %d guests", villa.Name, villa.MaxGuests)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	avail, err := s.Inventory.GetAvailableUnits(ctx, villa.ID, in, out)
	if err != nil {
		return nil, err
	}
	held := avail.Held
	var hold *models.BookingHold
	if req.HoldID != "" {
		var h models.BookingHold
		err := s.DB.WithContext(ctx).Where("id = ? AND expires_at > ?", req.HoldID, s.Now()).First(&h).Error
		if err == nil && h.VillaID == villa.ID && Overlaps(in, out, h.CheckIn, h.CheckOut) {
			hold = &h
			held -= h.Units
		}
	}
	if AvailableCount(avail.TotalUnits-avail.BlockedUnits, avail.Occupied+held) <= 0 {
		return nil, newError(CodeUnavailable, fmt.Sprintf("%s is fully booked for %s to %s",
			villa.Name, in.Format(dateLayout), out.Format(dateLayout)))
	}

	b := models.Booking{
		ID:            uuid.NewString(),
		GuestName:     strings.TrimSpace(req.GuestName),
		Email:         strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:         strings.TrimSpace(req.Phone),
		CheckIn:       in,
		CheckOut:      out,
		Guests:        req.Guests,
		PriceSnapshot: snap,
		Status:        models.BookingStatusPending,
		PaymentStatus: models.PaymentStatusPending,
		AdvanceAmount: req.AdvanceAmount,
		AdminNotes:    req.AdminNotes,
	}
	if b.AdvanceAmount > 0 {
		b.PaymentStatus = models.PaymentStatusAdvancePaid
	}
	applyPricing(&b)

	const maxRetries = 5
	for attempt := 0; attempt < maxRetries; attempt++ {
		ref, gErr := utils.BookingReference(s.Now())
		if gErr != nil {
			return nil, fmt.Errorf("failed to generate booking reference: %w", gErr)
		}
		b.BookingID = ref
		err = s.DB.WithContext(ctx).Create(&b).Error
		if err == nil {
			break
		}
		if ErrorCode(ClassifyDBError(err)) != CodeConflict {
			return nil, ClassifyDBError(err)
		}
		log.Printf("⚠️  booking reference collision on %s, retrying", ref)
	}
	if err != nil {
		return nil, ClassifyDBError(err)
	}

	if hold != nil {
		if err := s.DB.WithContext(ctx).Delete(&models.BookingHold{}, "id = ?", hold.ID).Error; err != nil {
			log.Printf("⚠️  failed to release hold %s: %v", hold.ID, err)
		}
	}
	s.invalidate(ctx)
	log.Printf("✅ Booking %s created for %s (%s, %d nights)", b.BookingID, utils.MaskEmail(b.Email), villa.Name, b.Nights())
	return &b, nil
}

func (s *BookingService) ListBookings(ctx context.Context, f BookingFilter) ([]models.Booking, int64, error) {
	if s.DB == nil {
		return []models.Booking{}, 0, nil
	}
	q := s.DB.WithContext(ctx).Model(&models.Booking{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.PaymentStatus != "" {
		q = q.Where("payment_status = ?", f.PaymentStatus)
	}
	if f.VillaID != "" {
		q = q.Where("villa_id = ?", f.VillaID)
	}
	if f.From != nil {
		q = q.Where("check_out > ?", models.DateOnly(*f.From))
	}
	if f.To != nil {
		q = q.Where("check_in < ?", models.DateOnly(*f.To))
	}
	if term := strings.ToLower(strings.TrimSpace(f.Search)); term != "" {
		like := "%" + term + "%"
		q = q.Where("LOWER(guest_name) LIKE ? OR LOWER(email) LIKE ? OR phone LIKE ? OR LOWER(booking_id) LIKE ?",
			like, like, like, like)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, ClassifyDBError(err)
	}

	q = q.Preload("Unit").Order("created_at DESC")
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}
	var bookings []models.Booking
	if err := q.Find(&bookings).Error; err != nil {
		return nil, 0, ClassifyDBError(err)
	}
	return bookings, total, nil
}

// GetBooking accepts the row id or the public booking reference.
func (s *BookingService) GetBooking(ctx context.Context, idOrRef string) (*models.Booking, error) {
	if s.DB == nil {
		return nil, ErrNotConfigured
	}
	var b models.Booking
	err := s.DB.WithContext(ctx).Preload("Unit").
		Where("id = ? OR booking_id = ?", idOrRef, idOrRef).
		First(&b).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("booking")
		}
		return nil, ClassifyDBError(err)
	}
	return &b, nil
}

func (s *BookingService) UpdateBooking(ctx context.Context, id string, patch BookingPatch) (*models.Booking, error) {
	if s.DB == nil {
		return nil, ErrNotConfigured
	}
	b, err := s.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.GuestName != nil {
		b.GuestName = strings.TrimSpace(*patch.GuestName)
	}
	if patch.Email != nil {
		b.Email = strings.ToLower(strings.TrimSpace(*patch.Email))
	}
	if patch.Phone != nil {
		b.Phone = strings.TrimSpace(*patch.Phone)
	}
	if patch.AdminNotes != nil {
		b.AdminNotes = *patch.AdminNotes
	}

	stayChanged := false
	if patch.CheckIn != nil || patch.CheckOut != nil {
		ci, co := b.CheckIn.Format(dateLayout), b.CheckOut.Format(dateLayout)
		if patch.CheckIn != nil {
			ci = *patch.CheckIn
		}
		if patch.CheckOut != nil {
			co = *patch.CheckOut
		}
		in, out, err := parseStay(ci, co)
		if err != nil {
			return nil, err
		}
		stayChanged = !in.Equal(b.CheckIn) || !out.Equal(b.CheckOut)
		b.CheckIn, b.CheckOut = in, out
	}

	repriced := stayChanged
	if patch.VillaID != nil || patch.PackageID != nil {
		villaID := b.VillaID
		if patch.VillaID != nil {
			villaID = *patch.VillaID
		}
		pkgID := b.PackageID
		if patch.PackageID != nil {
			pkgID = patch.PackageID
		}
		snap, _, err := s.snapshot(ctx, villaID, pkgID, false)
		if err != nil {
			return nil, err
		}
		stayChanged = stayChanged || snap.VillaID != b.VillaID
		b.PriceSnapshot = snap
		repriced = true
	}
	if patch.AdvanceAmount != nil {
		b.AdvanceAmount = *patch.AdvanceAmount
		repriced = true
	}
	if patch.Guests != nil {
		b.Guests = *patch.Guests
	}

	villa, err := s.Villas.GetVilla(ctx, b.VillaID)
	if err != nil {
		return nil, err
	}
	if villa.MaxGuests > 0 && b.Guests > villa.MaxGuests {
		return nil, validationError("%s allows at most %d guests", villa.Name, villa.MaxGuests)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if stayChanged && b.HoldsInventory() {
		avail, err := s.Inventory.GetAvailableUnits(ctx, b.VillaID, b.CheckIn, b.CheckOut)
		if err != nil {
			return nil, err
		}
		occupied := avail.Occupied
		var current models.Booking
		if err := s.DB.WithContext(ctx).First(&current, "id = ?", b.ID).Error; err == nil &&
			current.HoldsInventory() && current.VillaID == b.VillaID && Overlaps(b.CheckIn, b.CheckOut, current.CheckIn, current.CheckOut) {
			occupied--
		}
		if AvailableCount(avail.TotalUnits-avail.BlockedUnits, occupied+avail.Held) <= 0 {
			return nil, newError(CodeUnavailable, fmt.Sprintf("%s is fully booked for %s to %s",
				villa.Name, b.CheckIn.Format(dateLayout), b.CheckOut.Format(dateLayout)))
		}
	}

	if repriced {
		applyPricing(b)
	}

	if err := s.DB.WithContext(ctx).Omit("Unit").Save(b).Error; err != nil {
		return nil, ClassifyDBError(err)
	}

	if stayChanged {
		if b.Unit != nil {
			if err := s.Inventory.ReleaseUnit(ctx, b.ID); err != nil {
				log.Printf("⚠️  failed to release unit for booking %s: %v", b.BookingID, err)
			}
			b.Unit = nil
		}
		if b.Status.NeedsUnit() && b.HoldsInventory() {
			if bu, err := s.Inventory.AssignUnit(ctx, b); err != nil {
				log.Printf("⚠️  booking %s updated but room assignment failed: %v", b.BookingID, err)
			} else {
				b.Unit = bu
			}
		}
	}

	s.invalidate(ctx)
	return b, nil
}

// UpdateBookingStatus moves a booking along its lifecycle. Transitions outside
// the lifecycle need override and come back with a warning. A failed unit
// assignment does not undo the status change.
func (s *BookingService) UpdateBookingStatus(ctx context.Context, id string, status models.BookingStatus, override bool) (*StatusResult, error) {
	if s.DB == nil {
		return nil, ErrNotConfigured
	}
	if !status.IsValid() {
		return nil, validationError("invalid booking status: %s", status)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	res := &StatusResult{Booking: b}
	if b.Status == status {
		return res, nil
	}

	var warnings []string
	if !b.Status.CanTransitionTo(status) {
		if !override {
			return nil, newError(CodeInvalidTransition, fmt.Sprintf("Cannot change booking status from %s to %s", b.Status, status))
		}
		w := fmt.Sprintf("Status changed from %s to %s outside the normal booking lifecycle", b.Status, status)
		log.Printf("⚠️  booking %s: %s", b.BookingID, w)
		warnings = append(warnings, w)
	}

	next := *b
	next.Status = status
	if !b.HoldsInventory() && next.HoldsInventory() {
		if err := s.ensureCapacity(ctx, &next); err != nil {
			return nil, err
		}
	}

	if err := s.DB.WithContext(ctx).Model(&models.Booking{}).Where("id = ?", b.ID).Update("status", status).Error; err != nil {
		return nil, ClassifyDBError(err)
	}
	b.Status = status

	switch {
	case status.NeedsUnit() && b.HoldsInventory():
		bu, err := s.Inventory.AssignUnit(ctx, b)
		if err != nil {
			log.Printf("⚠️  booking %s updated but room assignment failed: %v", b.BookingID, err)
			warnings = append(warnings, "Booking updated but room assignment failed: "+errMessage(err))
		} else {
			b.Unit = bu
		}
	case !b.HoldsInventory():
		if err := s.Inventory.ReleaseUnit(ctx, b.ID); err != nil {
			log.Printf("⚠️  failed to release unit for booking %s: %v", b.BookingID, err)
		}
		b.Unit = nil
	}

	s.invalidate(ctx)
	res.Warning = strings.Join(warnings, "; ")
	return res, nil
}

// BulkUpdateBookingStatus applies UpdateBookingStatus to each id independently.
func (s *BookingService) BulkUpdateBookingStatus(ctx context.Context, ids []string, status models.BookingStatus, override bool) ([]BulkStatusItem, error) {
	if s.DB == nil {
		return nil, ErrNotConfigured
	}
	if !status.IsValid() {
		return nil, validationError("invalid booking status: %s", status)
	}
	out := make([]BulkStatusItem, 0, len(ids))
	for _, id := range ids {
		item := BulkStatusItem{ID: id}
		res, err := s.UpdateBookingStatus(ctx, id, status, override)
		if err != nil {
			item.Error = errMessage(err)
		} else {
			item.Success = true
			item.Warning = res.Warning
		}
		out = append(out, item)
	}
	return out, nil
}

// UpdatePaymentStatus keeps remaining_amount consistent with the advance.
func (s *BookingService) UpdatePaymentStatus(ctx context.Context, id string, in PaymentUpdate) (*models.Booking, error) {
	if s.DB == nil {
		return nil, ErrNotConfigured
	}
	if !in.PaymentStatus.IsValid() {
		return nil, validationError("invalid payment status: %s", in.PaymentStatus)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	wasHolding := b.HoldsInventory()
	b.PaymentStatus = in.PaymentStatus
	if in.AdvanceAmount != nil {
		b.AdvanceAmount = *in.AdvanceAmount
	}
	b.RemainingAmount = RemainingAmount(b.TotalAmount, b.AdvanceAmount)
	if !wasHolding && b.HoldsInventory() {
		if err := s.ensureCapacity(ctx, b); err != nil {
			return nil, err
		}
	}

	err = s.DB.WithContext(ctx).Model(&models.Booking{}).Where("id = ?", b.ID).Updates(map[string]any{
		"payment_status":   b.PaymentStatus,
		"advance_amount":   b.AdvanceAmount,
		"remaining_amount": b.RemainingAmount,
	}).Error
	if err != nil {
		return nil, ClassifyDBError(err)
	}

	switch {
	case !b.HoldsInventory() && b.Unit != nil:
		if err := s.Inventory.ReleaseUnit(ctx, b.ID); err != nil {
			log.Printf("⚠️  failed to release unit for booking %s: %v", b.BookingID, err)
		}
		b.Unit = nil
	case b.HoldsInventory() && b.Unit == nil && b.Status.NeedsUnit():
		if bu, err := s.Inventory.AssignUnit(ctx, b); err != nil {
			log.Printf("⚠️  booking %s payment updated but room assignment failed: %v", b.BookingID, err)
		} else {
			b.Unit = bu
		}
	}
	s.invalidate(ctx)
	return b, nil
}

// ensureCapacity fails with CodeUnavailable when b, not yet counted as
// active, would not fit next to the villa's other stays. Callers hold s.mu.
func (s *BookingService) ensureCapacity(ctx context.Context, b *models.Booking) error {
	avail, err := s.Inventory.GetAvailableUnits(ctx, b.VillaID, b.CheckIn, b.CheckOut)
	if err != nil {
		return err
	}
	if avail.Available <= 0 {
		return newError(CodeUnavailable, fmt.Sprintf("%s is fully booked for %s to %s",
			b.VillaName, b.CheckIn.Format(dateLayout), b.CheckOut.Format(dateLayout)))
	}
	return nil
}

func (s *BookingService) DeleteBooking(ctx context.Context, id string) error {
	if s.DB == nil {
		return ErrNotConfigured
	}
	b, err := s.GetBooking(ctx, id)
	if err != nil {
		return err
	}
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("booking_id = ?", b.ID).Delete(&models.BookingUnit{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.SafariQuery{}).Where("booking_id = ?", b.ID).Update("booking_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Booking{}, "id = ?", b.ID).Error
	})
	if err != nil {
		return ClassifyDBError(err)
	}
	s.invalidate(ctx)
	return nil
}

// CreateHold reserves capacity for HoldDuration while the guest completes payment.
func (s *BookingService) CreateHold(ctx context.Context, req HoldRequest) (*models.BookingHold, error) {
	if s.DB == nil {
		return nil, ErrNotConfigured
	}
	in, out, err := parseStay(req.CheckIn, req.CheckOut)
	if err != nil {
		return nil, err
	}
	if _, err := s.Villas.GetVilla(ctx, req.VillaID); err != nil {
		return nil, err
	}
	units := req.Units
	if units <= 0 {
		units = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	avail, err := s.Inventory.GetAvailableUnits(ctx, req.VillaID, in, out)
	if err != nil {
		return nil, err
	}
	if avail.Available < units {
		return nil, newError(CodeUnavailable, fmt.Sprintf("Only %d unit(s) available", avail.Available))
	}

	h := models.BookingHold{
		ID:         uuid.NewString(),
		VillaID:    req.VillaID,
		CheckIn:    in,
		CheckOut:   out,
		Units:      units,
		GuestEmail: strings.ToLower(strings.TrimSpace(req.GuestEmail)),
		ExpiresAt:  s.Now().Add(s.HoldDuration),
	}
	if err := s.DB.WithContext(ctx).Create(&h).Error; err != nil {
		return nil, ClassifyDBError(err)
	}
	s.invalidate(ctx)
	return &h, nil
}

func (s *BookingService) ReleaseHold(ctx context.Context, id string) error {
	if s.DB == nil {
		return ErrNotConfigured
	}
	res := s.DB.WithContext(ctx).Delete(&models.BookingHold{}, "id = ?", id)
	if res.Error != nil {
		return ClassifyDBError(res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound("hold")
	}
	s.invalidate(ctx)
	return nil
}

// SweepExpiredHolds deletes holds whose expiry has passed.
func (s *BookingService) SweepExpiredHolds(ctx context.Context) (int64, error) {
	if s.DB == nil {
		return 0, nil
	}
	res := s.DB.WithContext(ctx).Where("expires_at <= ?", s.Now()).Delete(&models.BookingHold{})
	if res.Error != nil {
		return 0, ClassifyDBError(res.Error)
	}
	if res.RowsAffected > 0 {
		s.invalidate(ctx)
	}
	return res.RowsAffected, nil
}

func (s *BookingService) invalidate(ctx context.Context) {
	if s.Cache == nil {
		return
	}
	for _, prefix := range []string{"dashboard:", "occupancy:"} {
		if err := s.Cache.DeletePrefix(ctx, prefix); err != nil {
			log.Printf("⚠️  cache invalidation for %s* failed: %v", prefix, err)
		}
	}
}

func errMessage(err error) string {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Message
	}
	return err.Error()
}

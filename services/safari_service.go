package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"villa-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SafariService handles excursion inquiries and the safari catalogue.
type SafariService struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewSafariService(db *gorm.DB) *SafariService {
	return &SafariService{DB: db, Now: func() time.Time { return time.Now().UTC() }}
}

type SafariQueryInput struct {
	GuestName       string  `json:"guest_name" binding:"required"`
	GuestEmail      string  `json:"guest_email" binding:"required,email"`
	GuestPhone      string  `json:"guest_phone"`
	SafariOptionID  *uint   `json:"safari_option_id"`
	SafariName      string  `json:"safari_name"`
	PreferredDate   string  `json:"preferred_date"`
	PreferredTiming string  `json:"preferred_timing"`
	NumberOfPersons int     `json:"number_of_persons" binding:"required,gte=1"`
	SpecialRequests string  `json:"special_requests"`
	BookingID       *string `json:"booking_id"`
}

type SafariQueryPatch struct {
	GuestName       *string `json:"guest_name"`
	GuestEmail      *string `json:"guest_email" binding:"omitempty,email"`
	GuestPhone      *string `json:"guest_phone"`
	PreferredDate   *string `json:"preferred_date"`
	PreferredTiming *string `json:"preferred_timing"`
	NumberOfPersons *int    `json:"number_of_persons" binding:"omitempty,gte=1"`
	SpecialRequests *string `json:"special_requests"`
	AdminNotes      *string `json:"admin_notes"`
}

type SafariQueryFilter struct {
	Status         models.SafariStatus
	SafariOptionID *uint
	Search         string
}

type SafariOptionInput struct {
	Name           string   `json:"name" binding:"required"`
	Description    string   `json:"description"`
	Duration       string   `json:"duration"`
	PricePerPerson float64  `json:"price_per_person" binding:"gte=0"`
	MaxPersons     int      `json:"max_persons" binding:"gte=0"`
	Timings        []string `json:"timings"`
	Highlights     []string `json:"highlights"`
	IsActive       *bool    `json:"is_active"`
}

type SafariStats struct {
	Total     int64 `json:"total"`
	Pending   int64 `json:"pending"`
	Confirmed int64 `json:"confirmed"`
	Cancelled int64 `json:"cancelled"`
	Completed int64 `json:"completed"`
}

// CreateQuery records a guest inquiry. Inquiries are free; no price is stored.
func (s *SafariService) CreateQuery(ctx context.Context, in SafariQueryInput) (*models.SafariQuery, error) {
	if s.DB == nil {
		return nil, ErrNotConfigured
	}
	q := models.SafariQuery{
		ID:              uuid.NewString(),
		GuestName:       strings.TrimSpace(in.GuestName),
		GuestEmail:      strings.ToLower(strings.TrimSpace(in.GuestEmail)),
		GuestPhone:      strings.TrimSpace(in.GuestPhone),
		SafariOptionID:  in.SafariOptionID,
		SafariName:      strings.TrimSpace(in.SafariName),
		PreferredTiming: in.PreferredTiming,
		NumberOfPersons: in.NumberOfPersons,
		SpecialRequests: in.SpecialRequests,
		BookingID:       in.BookingID,
		Status:          models.SafariStatusPending,
	}
	if in.PreferredDate != "" {
		d, err := ParseDate(in.PreferredDate)
		if err != nil {
			return nil, validationError("invalid preferred_date: %s", in.PreferredDate)
		}
		q.PreferredDate = &d
	}

	if in.SafariOptionID != nil {
		var opt models.SafariOption
		if err := s.DB.WithContext(ctx).First(&opt, *in.SafariOptionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, notFound("safari option")
			}
			return nil, ClassifyDBError(err)
		}
		if q.SafariName == "" {
			q.SafariName = opt.Name
		}
		if opt.MaxPersons > 0 && in.NumberOfPersons > opt.MaxPersons {
			return nil, validationError("%s allows at most %d persons", opt.Name, opt.MaxPersons)
		}
	}
	if q.SafariName == "" {
		return nil, validationError("safari_name or safari_option_id is required")
	}

	if err := s.DB.WithContext(ctx).Create(&q).Error; err != nil {
		return nil, ClassifyDBError(err)
	}
	return &q, nil
}

func (s *SafariService) ListQueries(ctx context.Context, f SafariQueryFilter) ([]models.SafariQuery, error) {
	if s.DB == nil {
		return []models.SafariQuery{}, nil
	}
	q := s.DB.WithContext(ctx).Order("created_at DESC")
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.SafariOptionID != nil {
		q = q.Where("safari_option_id = ?", *f.SafariOptionID)
	}
	if term := strings.ToLower(strings.TrimSpace(f.Search)); term != "" {
		like := "%" + term + "%"
		q = q.Where("LOWER(guest_name) LIKE ? OR LOWER(guest_email) LIKE ? OR LOWER(safari_name) LIKE ?", like, like, like)
	}
	var out []models.SafariQuery
	if err := q.Find(&out).Error; err != nil {
		return nil, ClassifyDBError(err)
	}
	return out, nil
}

func (s *SafariService) GetQuery(ctx context.Context, id string) (*models.SafariQuery, error) {
	if s.DB == nil {
		return nil, ErrNotConfigured
	}
	var q models.SafariQuery
	if err := s.DB.WithContext(ctx).First(&q, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("safari query")
		}
		return nil, ClassifyDBError(err)
	}
	return &q, nil
}

func (s *SafariService) UpdateQuery(ctx context.Context, id string, p SafariQueryPatch) (*models.SafariQuery, error) {
	q, err := s.GetQuery(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.GuestName != nil {
		q.GuestName = strings.TrimSpace(*p.GuestName)
	}
	if p.GuestEmail != nil {
		q.GuestEmail = strings.ToLower(strings.TrimSpace(*p.GuestEmail))
	}
	if p.GuestPhone != nil {
		q.GuestPhone = strings.TrimSpace(*p.GuestPhone)
	}
	if p.PreferredDate != nil {
		if *p.PreferredDate == "" {
			q.PreferredDate = nil
		} else {
			d, err := ParseDate(*p.PreferredDate)
			if err != nil {
				return nil, validationError("invalid preferred_date: %s", *p.PreferredDate)
			}
			q.PreferredDate = &d
		}
	}
	if p.PreferredTiming != nil {
		q.PreferredTiming = *p.PreferredTiming
	}
	if p.NumberOfPersons != nil {
		q.NumberOfPersons = *p.NumberOfPersons
	}
	if p.SpecialRequests != nil {
		q.SpecialRequests = *p.SpecialRequests
	}
	if p.AdminNotes != nil {
		q.AdminNotes = *p.AdminNotes
	}
	if err := s.DB.WithContext(ctx).Save(q).Error; err != nil {
		return nil, ClassifyDBError(err)
	}
	return q, nil
}

func (s *SafariService) UpdateQueryStatus(ctx context.Context, id string, status models.SafariStatus) (*models.SafariQuery, error) {
	if !status.IsValid() {
		return nil, validationError("invalid safari status: %s", status)
	}
	q, err := s.GetQuery(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Model(q).Update("status", status).Error; err != nil {
		return nil, ClassifyDBError(err)
	}
	q.Status = status
	return q, nil
}

// RespondToQuery stores the reply and marks the inquiry confirmed.
func (s *SafariService) RespondToQuery(ctx context.Context, id, response, responder string) (*models.SafariQuery, error) {
	if strings.TrimSpace(response) == "" {
		return nil, validationError("response is required")
	}
	q, err := s.GetQuery(ctx, id)
	if err != nil {
		return nil, err
	}
	at := s.Now()
	q.Response = response
	q.RespondedBy = responder
	q.RespondedAt = &at
	q.Status = models.SafariStatusConfirmed

	err = s.DB.WithContext(ctx).Model(&models.SafariQuery{}).Where("id = ?", q.ID).Updates(map[string]any{
		"response":     q.Response,
		"responded_by": q.RespondedBy,
		"responded_at": at,
		"status":       q.Status,
	}).Error
	if err != nil {
		return nil, ClassifyDBError(err)
	}
	return q, nil
}

func (s *SafariService) DeleteQuery(ctx context.Context, id string) error {
	if s.DB == nil {
		return ErrNotConfigured
	}
	res := s.DB.WithContext(ctx).Delete(&models.SafariQuery{}, "id = ?", id)
	if res.Error != nil {
		return ClassifyDBError(res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound("safari query")
	}
	return nil
}

func (s *SafariService) QueryStats(ctx context.Context) (*SafariStats, error) {
	stats := &SafariStats{}
	if s.DB == nil {
		return stats, nil
	}
	var rows []struct {
		Status models.SafariStatus
		Count  int64
	}
	if err := s.DB.WithContext(ctx).Model(&models.SafariQuery{}).
		Select("status, COUNT(*) AS count").Group("status").Scan(&rows).Error; err != nil {
		return nil, ClassifyDBError(err)
	}
	for _, r := range rows {
		stats.Total += r.Count
		switch r.Status {
		case models.SafariStatusPending:
			stats.Pending = r.Count
		case models.SafariStatusConfirmed:
			stats.Confirmed = r.Count
		case models.SafariStatusCancelled:
			stats.Cancelled = r.Count
		case models.SafariStatusCompleted:
			stats.Completed = r.Count
		}
	}
	return stats, nil
}

func (s *SafariService) ListSafariOptions(ctx context.Context, activeOnly bool) ([]models.SafariOption, error) {
	if s.DB == nil {
		return activeOptions(DemoSafariOptions(), activeOnly), nil
	}
	q := s.DB.WithContext(ctx).Order("name ASC")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var out []models.SafariOption
	if err := q.Find(&out).Error; err != nil {
		return nil, ClassifyDBError(err)
	}
	return out, nil
}

func activeOptions(opts []models.SafariOption, activeOnly bool) []models.SafariOption {
	if !activeOnly {
		return opts
	}
	out := make([]models.SafariOption, 0, len(opts))
	for _, o := range opts {
		if o.IsActive {
			out = append(out, o)
		}
	}
	return out
}

func (s *SafariService) CreateSafariOption(ctx context.Context, in SafariOptionInput) (*models.SafariOption, error) {
	if s.DB == nil {
		return nil, ErrNotConfigured
	}
	o := models.SafariOption{IsActive: true}
	applySafariOption(&o, in)
	if err := s.DB.WithContext(ctx).Create(&o).Error; err != nil {
		return nil, ClassifyDBError(err)
	}
	return &o, nil
}

func (s *SafariService) UpdateSafariOption(ctx context.Context, id uint, in SafariOptionInput) (*models.SafariOption, error) {
	if s.DB == nil {
		return nil, ErrNotConfigured
	}
	var o models.SafariOption
	if err := s.DB.WithContext(ctx).First(&o, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("safari option")
		}
		return nil, ClassifyDBError(err)
	}
	applySafariOption(&o, in)
	if err := s.DB.WithContext(ctx).Save(&o).Error; err != nil {
		return nil, ClassifyDBError(err)
	}
	return &o, nil
}

func applySafariOption(o *models.SafariOption, in SafariOptionInput) {
	o.Name = strings.TrimSpace(in.Name)
	o.Description = in.Description
	o.Duration = in.Duration
	o.PricePerPerson = in.PricePerPerson
	o.MaxPersons = in.MaxPersons
	o.Timings = in.Timings
	o.Highlights = in.Highlights
	if in.IsActive != nil {
		o.IsActive = *in.IsActive
	}
}

package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"villa-backend/models"
	"villa-backend/services"
	"villa-backend/utils"

	"github.com/gin-gonic/gin"
)

type BookingController struct {
	Bookings *services.BookingService
}

func NewBookingController(svc *services.BookingService) *BookingController {
	return &BookingController{Bookings: svc}
}

type statusPayload struct {
	Status   models.BookingStatus `json:"status" binding:"required,booking_status"`
	Override bool                 `json:"override"`
}

type bulkStatusPayload struct {
	IDs      []string             `json:"ids" binding:"required,min=1,dive,required"`
	Status   models.BookingStatus `json:"status" binding:"required,booking_status"`
	Override bool                 `json:"override"`
}

// POST /api/bookings/quote
func (bc *BookingController) Quote(c *gin.Context) {
	var req services.QuoteRequest
	if !bindJSON(c, &req) {
		return
	}
	q, err := bc.Bookings.QuoteBooking(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, q)
}

// POST /api/bookings (guest flow). Advances and notes are admin-only.
func (bc *BookingController) CreatePublic(c *gin.Context) {
	var req services.BookingRequest
	if !bindJSON(c, &req) {
		return
	}
	req.AdvanceAmount = 0
	req.AdminNotes = ""
	bc.create(c, req)
}

// POST /api/admin/bookings
func (bc *BookingController) Create(c *gin.Context) {
	var req services.BookingRequest
	if !bindJSON(c, &req) {
		return
	}
	bc.create(c, req)
}

func (bc *BookingController) create(c *gin.Context, req services.BookingRequest) {
	b, err := bc.Bookings.CreateBooking(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, b)
}

// GET /api/bookings/:ref returns the guest view of a booking.
func (bc *BookingController) GetPublic(c *gin.Context) {
	b, err := bc.Bookings.GetBooking(c.Request.Context(), c.Param("ref"))
	if err != nil {
		respondError(c, err)
		return
	}
	b.AdminNotes = ""
	utils.JSONSuccess(c, http.StatusOK, b)
}

func (bc *BookingController) filter(c *gin.Context) (services.BookingFilter, bool) {
	from, ok := optionalDateQuery(c, "from")
	if !ok {
		return services.BookingFilter{}, false
	}
	to, ok := optionalDateQuery(c, "to")
	if !ok {
		return services.BookingFilter{}, false
	}
	return services.BookingFilter{
		Status:        models.BookingStatus(c.Query("status")),
		PaymentStatus: models.PaymentStatus(c.Query("payment_status")),
		VillaID:       c.Query("villa_id"),
		From:          from,
		To:            to,
		Search:        c.Query("search"),
		Limit:         intQuery(c, "limit", 0),
		Offset:        intQuery(c, "offset", 0),
	}, true
}

// GET /api/admin/bookings
func (bc *BookingController) List(c *gin.Context) {
	f, ok := bc.filter(c)
	if !ok {
		return
	}
	bookings, total, err := bc.Bookings.ListBookings(c.Request.Context(), f)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": bookings, "total": total})
}

func (bc *BookingController) Get(c *gin.Context) {
	b, err := bc.Bookings.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, b)
}

func (bc *BookingController) Update(c *gin.Context) {
	var patch services.BookingPatch
	if !bindJSON(c, &patch) {
		return
	}
	b, err := bc.Bookings.UpdateBooking(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, b)
}

// PATCH /api/admin/bookings/:id/status
func (bc *BookingController) UpdateStatus(c *gin.Context) {
	var p statusPayload
	if !bindJSON(c, &p) {
		return
	}
	res, err := bc.Bookings.UpdateBookingStatus(c.Request.Context(), c.Param("id"), p.Status, p.Override)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccessWarning(c, http.StatusOK, res.Booking, res.Warning)
}

// PATCH /api/admin/bookings/bulk/status
func (bc *BookingController) BulkStatus(c *gin.Context) {
	var p bulkStatusPayload
	if !bindJSON(c, &p) {
		return
	}
	items, err := bc.Bookings.BulkUpdateBookingStatus(c.Request.Context(), p.IDs, p.Status, p.Override)
	if err != nil {
		respondError(c, err)
		return
	}
	updated := 0
	for _, it := range items {
		if it.Success {
			updated++
		}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": items, "updated": updated, "failed": len(items) - updated})
}

// PATCH /api/admin/bookings/:id/payment
func (bc *BookingController) UpdatePayment(c *gin.Context) {
	var in services.PaymentUpdate
	if !bindJSON(c, &in) {
		return
	}
	b, err := bc.Bookings.UpdatePaymentStatus(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, b)
}

func (bc *BookingController) Delete(c *gin.Context) {
	if err := bc.Bookings.DeleteBooking(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": c.Param("id")})
}

// GET /api/admin/bookings/export.csv
func (bc *BookingController) Export(c *gin.Context) {
	f, ok := bc.filter(c)
	if !ok {
		return
	}
	f.Limit, f.Offset = 0, 0
	bookings, _, err := bc.Bookings.ListBookings(c.Request.Context(), f)
	if err != nil {
		respondError(c, err)
		return
	}
	var buf bytes.Buffer
	if err := services.WriteBookingsCSV(&buf, bookings); err != nil {
		respondError(c, err)
		return
	}
	name := fmt.Sprintf("bookings-%s.csv", time.Now().UTC().Format("20060102"))
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// POST /api/holds
func (bc *BookingController) CreateHold(c *gin.Context) {
	var req services.HoldRequest
	if !bindJSON(c, &req) {
		return
	}
	h, err := bc.Bookings.CreateHold(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, h)
}

// DELETE /api/holds/:id
func (bc *BookingController) ReleaseHold(c *gin.Context) {
	if err := bc.Bookings.ReleaseHold(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"released": c.Param("id")})
}

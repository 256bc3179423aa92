package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/VelourStudioApp/salon-scheduler/internal/domain/booking"
	"github.com/VelourStudioApp/salon-scheduler/internal/dto"
	"github.com/VelourStudioApp/salon-scheduler/internal/httperr"
	"github.com/VelourStudioApp/salon-scheduler/internal/httpresp"
	"github.com/VelourStudioApp/salon-scheduler/internal/middleware"
	"github.com/VelourStudioApp/salon-scheduler/internal/models"
	ucBooking "github.com/VelourStudioApp/salon-scheduler/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	db *gorm.DB

	listUC          *ucBooking.ListBookings
	updateStatusUC  *ucBooking.UpdateStatus
	checkInUC       *ucBooking.CheckIn
	assignUC        *ucBooking.AssignStylist
	recordPaymentUC *ucBooking.RecordPayment
	balanceIntentUC *ucBooking.CreateBalanceIntent
}

func NewBookingHandler(
	db *gorm.DB,
	listUC *ucBooking.ListBookings,
	updateStatusUC *ucBooking.UpdateStatus,
	checkInUC *ucBooking.CheckIn,
	assignUC *ucBooking.AssignStylist,
	recordPaymentUC *ucBooking.RecordPayment,
	balanceIntentUC *ucBooking.CreateBalanceIntent,
) *BookingHandler {
	return &BookingHandler{
		db:              db,
		listUC:          listUC,
		updateStatusUC:  updateStatusUC,
		checkInUC:       checkInUC,
		assignUC:        assignUC,
		recordPaymentUC: recordPaymentUC,
		balanceIntentUC: balanceIntentUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type AssignStylistRequest struct {
	StylistID uint `json:"stylist_id" binding:"required"`
}

type RecordPaymentRequest struct {
	AmountCents int64  `json:"amount_cents" binding:"required"`
	Method      string `json:"method" binding:"required"`
	Reference   string `json:"reference"`
}

// ======================================================
// LIST
// ======================================================

func (h *BookingHandler) ListByDate(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Date is required.")
		return
	}

	salon, ok := h.salon(c, salonID)
	if !ok {
		return
	}

	date, err := parseDateInSalon(salon, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
		return
	}

	var stylistID *uint
	if s := c.Query("stylist_id"); s != "" {
		id, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_stylist_id", "Invalid stylist id.")
			return
		}
		v := uint(id)
		stylistID = &v
	}

	bookings, err := h.listUC.ByDate(c.Request.Context(), salonID, stylistID, date)
	if err != nil {
		writeBookingError(c, err)
		return
	}

	httpresp.List(c, bookings)
}

func (h *BookingHandler) ListByMonth(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	year, err1 := strconv.Atoi(c.Query("year"))
	month, err2 := strconv.Atoi(c.Query("month"))
	if err1 != nil || err2 != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_period", "Invalid year or month.")
		return
	}

	bookings, err := h.listUC.ByMonth(c.Request.Context(), salonID, nil, year, month)
	if err != nil {
		writeBookingError(c, err)
		return
	}

	httpresp.List(c, bookings)
}

// ======================================================
// STATUS / CHECK-IN / ASSIGNMENT
// ======================================================

func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	bookingID, ok := h.bookingID(c)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	b, err := h.updateStatusUC.Execute(
		c.Request.Context(),
		salonID,
		userID,
		bookingID,
		domain.Status(req.Status),
	)
	if err != nil {
		writeBookingError(c, err)
		return
	}

	h.respondWithView(c, salonID, b)
}

func (h *BookingHandler) CheckIn(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	bookingID, ok := h.bookingID(c)
	if !ok {
		return
	}

	b, err := h.checkInUC.Execute(c.Request.Context(), salonID, userID, bookingID)
	if err != nil {
		writeBookingError(c, err)
		return
	}

	h.respondWithView(c, salonID, b)
}

func (h *BookingHandler) Assign(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	bookingID, ok := h.bookingID(c)
	if !ok {
		return
	}

	var req AssignStylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	b, err := h.assignUC.Execute(c.Request.Context(), salonID, userID, bookingID, req.StylistID)
	if err != nil {
		writeBookingError(c, err)
		return
	}

	h.respondWithView(c, salonID, b)
}

// ======================================================
// PAYMENTS
// ======================================================

func (h *BookingHandler) RecordPayment(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	bookingID, ok := h.bookingID(c)
	if !ok {
		return
	}

	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	b, err := h.recordPaymentUC.Execute(c.Request.Context(), ucBooking.RecordPaymentInput{
		SalonID:     salonID,
		UserID:      userID,
		BookingID:   bookingID,
		AmountCents: req.AmountCents,
		Method:      req.Method,
		Reference:   req.Reference,
	})
	if err != nil {
		writeBookingError(c, err)
		return
	}

	h.respondWithView(c, salonID, b)
}

func (h *BookingHandler) CreateBalanceIntent(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	bookingID, ok := h.bookingID(c)
	if !ok {
		return
	}

	out, err := h.balanceIntentUC.Execute(c.Request.Context(), salonID, bookingID)
	if err != nil {
		writeBookingError(c, err)
		return
	}

	httpresp.Created(c, out)
}

// ======================================================
// HELPERS
// ======================================================

func (h *BookingHandler) bookingID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_booking_id", "Invalid booking id.")
		return 0, false
	}
	return uint(id), true
}

func (h *BookingHandler) salon(c *gin.Context, salonID uint) (*models.Salon, bool) {
	var salon models.Salon
	if err := h.db.First(&salon, salonID).Error; err != nil {
		httperr.Internal(c, "salon_not_found", "Salon not found.")
		return nil, false
	}
	return &salon, true
}

func (h *BookingHandler) respondWithView(c *gin.Context, salonID uint, b *models.Booking) {
	salon, ok := h.salon(c, salonID)
	if !ok {
		return
	}
	httpresp.OK(c, dto.NewBookingView(salon, b))
}

package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/VelourStudioApp/salon-scheduler/internal/dto"
	"github.com/VelourStudioApp/salon-scheduler/internal/httperr"
	"github.com/VelourStudioApp/salon-scheduler/internal/models"
	ucBooking "github.com/VelourStudioApp/salon-scheduler/internal/usecase/booking"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	db *gorm.DB

	reserveUC       *ucBooking.Reserve
	availabilityUC  *ucBooking.GetAvailability
	depositIntentUC *ucBooking.CreateDepositIntent
}

func NewPublicHandler(
	db *gorm.DB,
	reserveUC *ucBooking.Reserve,
	availabilityUC *ucBooking.GetAvailability,
	depositIntentUC *ucBooking.CreateDepositIntent,
) *PublicHandler {
	return &PublicHandler{
		db:              db,
		reserveUC:       reserveUC,
		availabilityUC:  availabilityUC,
		depositIntentUC: depositIntentUC,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicReserveRequest struct {
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone"`
	ClientEmail string `json:"client_email" binding:"required,email"`

	ServiceID   uint  `json:"service_id" binding:"required"`
	StylistID   *uint `json:"stylist_id"`
	PromotionID *uint `json:"promotion_id"`

	Date  string `json:"date" binding:"required"` // YYYY-MM-DD
	Time  string `json:"time" binding:"required"` // HH:mm
	Notes string `json:"notes"`

	// Deposit charge captured by the client before reserving.
	PaymentRef string `json:"payment_ref" binding:"required"`
}

type DepositIntentRequest struct {
	ServiceID uint `json:"service_id" binding:"required"`
}

////////////////////////////////////////////////////////
// SERVICES
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServices(c *gin.Context) {
	salon, ok := h.salonBySlug(c)
	if !ok {
		return
	}

	query := strings.TrimSpace(strings.ToLower(c.Query("query")))

	q := h.db.
		Preload("Category").
		Where("salon_id = ? AND active = true", salon.ID)

	if categoryID := c.Query("category_id"); categoryID != "" {
		q = q.Where("category_id = ?", categoryID)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var services []models.Service
	if err := q.Order("id ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Could not list services.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"salon":    salon,
		"services": services,
	})
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	salon, ok := h.salonBySlug(c)
	if !ok {
		return
	}

	stylistID, err1 := strconv.ParseUint(c.Query("stylist_id"), 10, 64)
	serviceID, err2 := strconv.ParseUint(c.Query("service_id"), 10, 64)
	if err1 != nil || err2 != nil {
		httperr.BadRequest(c, "invalid_request", "stylist_id and service_id are required.")
		return
	}

	date, err := parseDateInSalon(salon, c.Query("date"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
		return
	}

	slots, err := h.availabilityUC.Execute(
		c.Request.Context(),
		salon.ID,
		uint(stylistID),
		uint(serviceID),
		date,
	)
	if err != nil {
		writeBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

////////////////////////////////////////////////////////
// PAYMENT INTENT (deposit)
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateDepositIntent(c *gin.Context) {
	slug := c.Param("slug")

	var req DepositIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	out, err := h.depositIntentUC.Execute(c.Request.Context(), slug, req.ServiceID)
	if err != nil {
		writeBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, out)
}

////////////////////////////////////////////////////////
// RESERVE
////////////////////////////////////////////////////////

func (h *PublicHandler) Reserve(c *gin.Context) {
	salon, ok := h.salonBySlug(c)
	if !ok {
		return
	}

	var req PublicReserveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	b, err := h.reserveUC.Execute(c.Request.Context(), ucBooking.ReserveInput{
		SalonID:     salon.ID,
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		ClientEmail: strings.ToLower(strings.TrimSpace(req.ClientEmail)),
		ServiceID:   req.ServiceID,
		StylistID:   req.StylistID,
		PromotionID: req.PromotionID,
		Date:        req.Date,
		Time:        req.Time,
		Notes:       req.Notes,
		PaymentRef:  req.PaymentRef,
	})
	if err != nil {
		writeBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewBookingView(salon, b))
}

////////////////////////////////////////////////////////
// HELPERS
////////////////////////////////////////////////////////

func (h *PublicHandler) salonBySlug(c *gin.Context) (*models.Salon, bool) {
	slug := c.Param("slug")

	var salon models.Salon
	if err := h.db.Where("slug = ?", slug).First(&salon).Error; err != nil {
		httperr.NotFound(c, "salon_not_found", "Salon not found.")
		return nil, false
	}
	return &salon, true
}

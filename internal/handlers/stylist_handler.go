package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/VelourStudioApp/salon-scheduler/internal/httperr"
	"github.com/VelourStudioApp/salon-scheduler/internal/httpresp"
	"github.com/VelourStudioApp/salon-scheduler/internal/media"
	"github.com/VelourStudioApp/salon-scheduler/internal/middleware"
	"github.com/VelourStudioApp/salon-scheduler/internal/models"
)

type StylistHandler struct {
	db      *gorm.DB
	storage *media.Storage
}

func NewStylistHandler(db *gorm.DB, storage *media.Storage) *StylistHandler {
	return &StylistHandler{db: db, storage: storage}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateStylistRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`

	PriceModifierCents int64 `json:"price_modifier_cents"`
}

type UpdateStylistRequest struct {
	Name               string `json:"name"`
	Phone              string `json:"phone"`
	PriceModifierCents *int64 `json:"price_modifier_cents"`
	Active             *bool  `json:"active"`
}

// ======================================================
// CRUD
// ======================================================

func (h *StylistHandler) List(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var stylists []models.User
	if err := h.db.
		Where("salon_id = ?", salonID).
		Order("id ASC").
		Find(&stylists).Error; err != nil {
		httperr.Internal(c, "failed_to_list_stylists", "Could not list stylists.")
		return
	}

	httpresp.List(c, stylists)
}

func (h *StylistHandler) Create(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var req CreateStylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Could not create stylist.")
		return
	}

	stylist := models.User{
		SalonID:            salonID,
		Name:               req.Name,
		Email:              req.Email,
		PasswordHash:       string(hashed),
		Phone:              req.Phone,
		Role:               "stylist",
		PriceModifierCents: req.PriceModifierCents,
		Active:             true,
	}

	if err := h.db.Create(&stylist).Error; err != nil {
		httperr.Internal(c, "failed_to_create_stylist", "Could not create stylist.")
		return
	}

	httpresp.Created(c, stylist)
}

func (h *StylistHandler) Update(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	stylist, ok := h.stylist(c, salonID)
	if !ok {
		return
	}

	var req UpdateStylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	if req.Name != "" {
		stylist.Name = req.Name
	}
	if req.Phone != "" {
		stylist.Phone = req.Phone
	}
	if req.PriceModifierCents != nil {
		stylist.PriceModifierCents = *req.PriceModifierCents
	}
	if req.Active != nil {
		stylist.Active = *req.Active
	}

	if err := h.db.Save(stylist).Error; err != nil {
		httperr.Internal(c, "failed_to_update_stylist", "Could not update stylist.")
		return
	}

	httpresp.OK(c, stylist)
}

// ======================================================
// PHOTO UPLOAD
// ======================================================

func (h *StylistHandler) UploadPhoto(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	if h.storage == nil {
		httperr.Internal(c, "storage_not_configured", "Photo storage is not configured.")
		return
	}

	stylist, ok := h.stylist(c, salonID)
	if !ok {
		return
	}

	file, _, err := c.Request.FormFile("photo")
	if err != nil {
		httperr.BadRequest(c, "missing_photo", "A photo file is required.")
		return
	}
	defer file.Close()

	key := strconv.FormatUint(uint64(salonID), 10) + "/stylists/" + strconv.FormatUint(uint64(stylist.ID), 10)
	url, err := h.storage.UploadPhoto(c.Request.Context(), key, file)
	if err != nil {
		httperr.Internal(c, "failed_to_upload_photo", "Could not store the photo.")
		return
	}

	stylist.PhotoURL = url
	if err := h.db.Save(stylist).Error; err != nil {
		httperr.Internal(c, "failed_to_update_stylist", "Could not update stylist.")
		return
	}

	httpresp.OK(c, stylist)
}

// ======================================================
// HELPERS
// ======================================================

func (h *StylistHandler) stylist(c *gin.Context, salonID uint) (*models.User, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_stylist_id", "Invalid stylist id.")
		return nil, false
	}

	var stylist models.User
	if err := h.db.
		Where("id = ? AND salon_id = ?", id, salonID).
		First(&stylist).Error; err != nil {
		httperr.NotFound(c, "stylist_not_found", "Stylist not found.")
		return nil, false
	}

	return &stylist, true
}

package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/VelourStudioApp/salon-scheduler/internal/httperr"
	"github.com/VelourStudioApp/salon-scheduler/internal/httpresp"
	"github.com/VelourStudioApp/salon-scheduler/internal/middleware"
	"github.com/VelourStudioApp/salon-scheduler/internal/models"
)

// CatalogHandler owns the plain-record side: categories, services
// and promotions. No cross-request coordination beyond row updates.
type CatalogHandler struct {
	db *gorm.DB
}

func NewCatalogHandler(db *gorm.DB) *CatalogHandler {
	return &CatalogHandler{db: db}
}

// ======================================================
// REQUESTS
// ======================================================

type CategoryRequest struct {
	Name   string `json:"name" binding:"required"`
	Active *bool  `json:"active"`
}

type ServiceRequest struct {
	CategoryID   uint   `json:"category_id" binding:"required"`
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description"`
	DurationMin  int    `json:"duration_min" binding:"required"`
	PriceCents   int64  `json:"price_cents" binding:"required"`
	DepositCents int64  `json:"deposit_cents"`
	Active       *bool  `json:"active"`
}

type PromotionRequest struct {
	Code          string `json:"code" binding:"required"`
	Description   string `json:"description"`
	DiscountCents int64  `json:"discount_cents" binding:"required"`
	Active        *bool  `json:"active"`
}

// ======================================================
// CATEGORIES
// ======================================================

func (h *CatalogHandler) ListCategories(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var categories []models.ServiceCategory
	if err := h.db.
		Where("salon_id = ?", salonID).
		Order("id ASC").
		Find(&categories).Error; err != nil {
		httperr.Internal(c, "failed_to_list_categories", "Could not list categories.")
		return
	}

	httpresp.List(c, categories)
}

func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	category := models.ServiceCategory{
		SalonID: salonID,
		Name:    req.Name,
		Active:  true,
	}
	if req.Active != nil {
		category.Active = *req.Active
	}

	if err := h.db.Create(&category).Error; err != nil {
		httperr.Internal(c, "failed_to_create_category", "Could not create category.")
		return
	}

	httpresp.Created(c, category)
}

// ======================================================
// SERVICES
// ======================================================

func (h *CatalogHandler) ListServices(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var services []models.Service
	if err := h.db.
		Preload("Category").
		Where("salon_id = ?", salonID).
		Order("id ASC").
		Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Could not list services.")
		return
	}

	httpresp.List(c, services)
}

func (h *CatalogHandler) CreateService(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	var category models.ServiceCategory
	if err := h.db.
		Where("id = ? AND salon_id = ?", req.CategoryID, salonID).
		First(&category).Error; err != nil {
		httperr.BadRequest(c, "category_not_found", "Category not found.")
		return
	}

	svc := models.Service{
		SalonID:      salonID,
		CategoryID:   category.ID,
		Name:         req.Name,
		Description:  req.Description,
		DurationMin:  req.DurationMin,
		PriceCents:   req.PriceCents,
		DepositCents: req.DepositCents,
		Active:       true,
	}
	if req.Active != nil {
		svc.Active = *req.Active
	}

	if err := h.db.Create(&svc).Error; err != nil {
		httperr.Internal(c, "failed_to_create_service", "Could not create service.")
		return
	}

	httpresp.Created(c, svc)
}

func (h *CatalogHandler) UpdateService(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "Invalid service id.")
		return
	}

	var svc models.Service
	if err := h.db.
		Where("id = ? AND salon_id = ?", id, salonID).
		First(&svc).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Service not found.")
		return
	}

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	if req.CategoryID != svc.CategoryID {
		var category models.ServiceCategory
		if err := h.db.
			Where("id = ? AND salon_id = ?", req.CategoryID, salonID).
			First(&category).Error; err != nil {
			httperr.BadRequest(c, "category_not_found", "Category not found.")
			return
		}
	}

	svc.CategoryID = req.CategoryID
	svc.Name = req.Name
	svc.Description = req.Description
	svc.DurationMin = req.DurationMin
	svc.PriceCents = req.PriceCents
	svc.DepositCents = req.DepositCents
	if req.Active != nil {
		svc.Active = *req.Active
	}

	if err := h.db.Save(&svc).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "Could not update service.")
		return
	}

	httpresp.OK(c, svc)
}

// ======================================================
// PROMOTIONS
// ======================================================

func (h *CatalogHandler) ListPromotions(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var promos []models.Promotion
	if err := h.db.
		Where("salon_id = ?", salonID).
		Order("id ASC").
		Find(&promos).Error; err != nil {
		httperr.Internal(c, "failed_to_list_promotions", "Could not list promotions.")
		return
	}

	httpresp.List(c, promos)
}

func (h *CatalogHandler) CreatePromotion(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var req PromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	promo := models.Promotion{
		SalonID:       salonID,
		Code:          req.Code,
		Description:   req.Description,
		DiscountCents: req.DiscountCents,
		Active:        true,
	}
	if req.Active != nil {
		promo.Active = *req.Active
	}

	if err := h.db.Create(&promo).Error; err != nil {
		httperr.Internal(c, "failed_to_create_promotion", "Could not create promotion.")
		return
	}

	httpresp.Created(c, promo)
}

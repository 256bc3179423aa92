package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/VelourStudioApp/salon-scheduler/internal/audit"
	"github.com/VelourStudioApp/salon-scheduler/internal/config"
	"github.com/VelourStudioApp/salon-scheduler/internal/handlers"
	infraRepo "github.com/VelourStudioApp/salon-scheduler/internal/infra/repository"
	"github.com/VelourStudioApp/salon-scheduler/internal/media"
	"github.com/VelourStudioApp/salon-scheduler/internal/middleware"
	"github.com/VelourStudioApp/salon-scheduler/internal/notify"
	"github.com/VelourStudioApp/salon-scheduler/internal/payments"
	ucBooking "github.com/VelourStudioApp/salon-scheduler/internal/usecase/booking"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	gateway payments.Gateway,
	storage *media.Storage,
) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)
	outbox := notify.NewGormOutbox(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// USE CASES - BOOKINGS
	// ======================================================
	reserveUC := ucBooking.NewReserve(
		bookingRepo,
		gateway,
		outbox,
		auditDispatcher,
	)

	updateStatusUC := ucBooking.NewUpdateStatus(
		bookingRepo,
		outbox,
		auditDispatcher,
	)

	checkInUC := ucBooking.NewCheckIn(
		bookingRepo,
		auditDispatcher,
	)

	assignUC := ucBooking.NewAssignStylist(
		bookingRepo,
		auditDispatcher,
	)

	recordPaymentUC := ucBooking.NewRecordPayment(
		bookingRepo,
		gateway,
		auditDispatcher,
	)

	depositIntentUC := ucBooking.NewCreateDepositIntent(
		bookingRepo,
		gateway,
	)

	balanceIntentUC := ucBooking.NewCreateBalanceIntent(
		bookingRepo,
		gateway,
		cfg.GatewayFeeBasisPoints,
	)

	listBookingsUC := ucBooking.NewListBookings(bookingRepo)
	availabilityUC := ucBooking.NewGetAvailability(bookingRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	salonHandler := handlers.NewSalonHandler(db)

	catalogHandler := handlers.NewCatalogHandler(db)
	clientHandler := handlers.NewClientHandler(db)
	stylistHandler := handlers.NewStylistHandler(db, storage)
	workingHoursHandler := handlers.NewWorkingHoursHandler(db)

	bookingHandler := handlers.NewBookingHandler(
		db,
		listBookingsUC,
		updateStatusUC,
		checkInUC,
		assignUC,
		recordPaymentUC,
		balanceIntentUC,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	publicHandler := handlers.NewPublicHandler(
		db,
		reserveUC,
		availabilityUC,
		depositIntentUC,
	)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC API
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/:slug/services", publicHandler.ListServices)
			publicAPI.GET("/:slug/availability", publicHandler.Availability)
			publicAPI.POST("/:slug/payment-intents", publicHandler.CreateDepositIntent)
			publicAPI.POST("/:slug/bookings", publicHandler.Reserve)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE API
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/me/salon", salonHandler.GetMeSalon)
			secured.PATCH("/me/salon", salonHandler.UpdateMeSalon)

			secured.GET("/me/clients", clientHandler.List)

			secured.GET("/me/categories", catalogHandler.ListCategories)
			secured.POST("/me/categories", catalogHandler.CreateCategory)
			secured.GET("/me/services", catalogHandler.ListServices)
			secured.POST("/me/services", catalogHandler.CreateService)
			secured.PATCH("/me/services/:id", catalogHandler.UpdateService)
			secured.GET("/me/promotions", catalogHandler.ListPromotions)
			secured.POST("/me/promotions", catalogHandler.CreatePromotion)

			secured.GET("/me/stylists", stylistHandler.List)
			secured.POST("/me/stylists", stylistHandler.Create)
			secured.PATCH("/me/stylists/:id", stylistHandler.Update)
			secured.POST("/me/stylists/:id/photo", stylistHandler.UploadPhoto)

			secured.GET("/me/working-hours", workingHoursHandler.Get)
			secured.PUT("/me/working-hours", workingHoursHandler.Update)

			// ------------------------------
			// BOOKINGS
			// ------------------------------
			secured.GET("/me/bookings", bookingHandler.ListByDate)
			secured.GET("/me/bookings/month", bookingHandler.ListByMonth)
			secured.PATCH("/me/bookings/:id/status", bookingHandler.UpdateStatus)
			secured.PATCH("/me/bookings/:id/check-in", bookingHandler.CheckIn)
			secured.PATCH("/me/bookings/:id/assign", bookingHandler.Assign)
			secured.POST("/me/bookings/:id/payments", bookingHandler.RecordPayment)
			secured.POST("/me/bookings/:id/payment-intents", bookingHandler.CreateBalanceIntent)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}

package booking

import (
	"context"
	"time"

	"github.com/VelourStudioApp/salon-scheduler/internal/models"
)

type Repository interface {
	// -------- Salon --------
	GetSalonByID(
		ctx context.Context,
		id uint,
	) (*models.Salon, error)

	GetSalonBySlug(
		ctx context.Context,
		slug string,
	) (*models.Salon, error)

	// -------- Catalog --------
	GetService(
		ctx context.Context,
		salonID uint,
		serviceID uint,
	) (*models.Service, error)

	GetPromotion(
		ctx context.Context,
		salonID uint,
		promotionID uint,
	) (*models.Promotion, error)

	GetStylist(
		ctx context.Context,
		salonID uint,
		stylistID uint,
	) (*models.User, error)

	// -------- Client --------
	GetOrCreateClient(
		ctx context.Context,
		salonID uint,
		name string,
		phone string,
		email string,
	) (*models.Client, error)

	// -------- Transaction boundary --------
	// InTx runs fn against a Repository bound to one transaction.
	// The slot check and the booking/payment inserts must share it.
	InTx(
		ctx context.Context,
		fn func(txRepo Repository) error,
	) error

	// -------- Slot ledger --------
	AssertSlotFree(
		ctx context.Context,
		key SlotKey,
		excludeBookingID uint,
	) error

	// -------- Booking --------
	CreateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	CreatePayment(
		ctx context.Context,
		p *models.Payment,
	) error

	GetBooking(
		ctx context.Context,
		salonID uint,
		bookingID uint,
	) (*models.Booking, error)

	UpdateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	// -------- Listing / availability --------
	GetWorkingHours(
		ctx context.Context,
		stylistID uint,
		weekday int,
	) (*models.WorkingHours, error)

	ListBookingsForPeriod(
		ctx context.Context,
		salonID uint,
		stylistID *uint,
		start time.Time,
		end time.Time,
	) ([]models.Booking, error)

	// -------- Reminders --------
	ListBookingsDueForReminder(
		ctx context.Context,
		date time.Time,
		hour int,
	) ([]models.Booking, error)
}

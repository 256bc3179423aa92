package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/VelourStudioApp/salon-scheduler/internal/domain/booking"
	"github.com/VelourStudioApp/salon-scheduler/internal/httperr"
	"github.com/VelourStudioApp/salon-scheduler/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Transaction boundary
// --------------------------------------------------

// InTx hands fn a repository bound to one transaction. The slot
// check and the booking/payment inserts run through it so no
// interleaving of two attempts for the same key can both commit.
func (r *BookingGormRepository) InTx(
	ctx context.Context,
	fn func(txRepo domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&BookingGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Salon
// --------------------------------------------------

func (r *BookingGormRepository) GetSalonByID(
	ctx context.Context,
	id uint,
) (*models.Salon, error) {

	var salon models.Salon
	if err := r.db.WithContext(ctx).First(&salon, id).Error; err != nil {
		return nil, err
	}
	return &salon, nil
}

func (r *BookingGormRepository) GetSalonBySlug(
	ctx context.Context,
	slug string,
) (*models.Salon, error) {

	var salon models.Salon
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&salon).Error; err != nil {
		return nil, err
	}
	return &salon, nil
}

// --------------------------------------------------
// Catalog
// --------------------------------------------------

func (r *BookingGormRepository) GetService(
	ctx context.Context,
	salonID uint,
	serviceID uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND salon_id = ? AND active = true", serviceID, salonID).
		First(&svc).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *BookingGormRepository) GetPromotion(
	ctx context.Context,
	salonID uint,
	promotionID uint,
) (*models.Promotion, error) {

	var promo models.Promotion
	if err := r.db.WithContext(ctx).
		Where("id = ? AND salon_id = ? AND active = true", promotionID, salonID).
		First(&promo).Error; err != nil {
		return nil, err
	}
	return &promo, nil
}

func (r *BookingGormRepository) GetStylist(
	ctx context.Context,
	salonID uint,
	stylistID uint,
) (*models.User, error) {

	var stylist models.User
	if err := r.db.WithContext(ctx).
		Where("id = ? AND salon_id = ? AND active = true", stylistID, salonID).
		First(&stylist).Error; err != nil {
		return nil, err
	}
	return &stylist, nil
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *BookingGormRepository) GetOrCreateClient(
	ctx context.Context,
	salonID uint,
	name string,
	phone string,
	email string,
) (*models.Client, error) {

	var client models.Client
	err := r.db.WithContext(ctx).
		Where("salon_id = ? AND email = ?", salonID, email).
		First(&client).Error

	if err == nil {
		return &client, nil
	}

	client = models.Client{
		SalonID: salonID,
		Name:    name,
		Phone:   phone,
		Email:   email,
	}

	if err := r.db.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, err
	}

	return &client, nil
}

// --------------------------------------------------
// Slot ledger
// --------------------------------------------------

// AssertSlotFree locks and counts live bookings holding the
// candidate key. Must run inside the reservation transaction; the
// partial unique indexes on bookings are the second line of defence.
func (r *BookingGormRepository) AssertSlotFree(
	ctx context.Context,
	key domain.SlotKey,
	excludeBookingID uint,
) error {

	q := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(
			"date = ? AND time_of_day = ? AND status <> ?",
			key.Date.Format("2006-01-02"),
			key.TimeOfDay,
			string(domain.StatusCancelled),
		)

	if key.StylistID != nil {
		q = q.Where("stylist_id = ?", *key.StylistID)
	} else {
		q = q.Where("client_id = ? AND stylist_id IS NULL", key.ClientID)
	}

	if excludeBookingID > 0 {
		q = q.Where("id <> ?", excludeBookingID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return httperr.ErrBusiness(httperr.CodeSlotConflict)
	}

	return nil
}

// --------------------------------------------------
// Booking
// --------------------------------------------------

func (r *BookingGormRepository) CreateBooking(
	ctx context.Context,
	b *models.Booking,
) error {

	if err := r.db.WithContext(ctx).Create(b).Error; err != nil {
		// A concurrent insert that slipped past the locked count
		// trips the partial unique index instead.
		if isUniqueViolation(err) {
			return httperr.ErrBusiness(httperr.CodeSlotConflict)
		}
		return err
	}
	return nil
}

func (r *BookingGormRepository) CreatePayment(
	ctx context.Context,
	p *models.Payment,
) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *BookingGormRepository) GetBooking(
	ctx context.Context,
	salonID uint,
	bookingID uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Preload("Stylist").
		Preload("Promotion").
		Preload("Payments").
		Where("id = ? AND salon_id = ?", bookingID, salonID).
		First(&b).Error; err != nil {
		return nil, err
	}

	return &b, nil
}

func (r *BookingGormRepository) UpdateBooking(
	ctx context.Context,
	b *models.Booking,
) error {

	err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Save(b).Error
	if err != nil && isUniqueViolation(err) {
		// Reassignment or restore landing on a taken slot.
		return httperr.ErrBusiness(httperr.CodeSlotConflict)
	}
	return err
}

// --------------------------------------------------
// Listing / availability
// --------------------------------------------------

func (r *BookingGormRepository) GetWorkingHours(
	ctx context.Context,
	stylistID uint,
	weekday int,
) (*models.WorkingHours, error) {

	var wh models.WorkingHours
	if err := r.db.WithContext(ctx).
		Where("stylist_id = ? AND weekday = ?", stylistID, weekday).
		First(&wh).Error; err != nil {
		return nil, err
	}

	return &wh, nil
}

func (r *BookingGormRepository) ListBookingsForPeriod(
	ctx context.Context,
	salonID uint,
	stylistID *uint,
	start time.Time,
	end time.Time,
) ([]models.Booking, error) {

	q := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Preload("Stylist").
		Preload("Payments").
		Where(
			"salon_id = ? AND date >= ? AND date < ?",
			salonID,
			start.Format("2006-01-02"),
			end.Format("2006-01-02"),
		)

	if stylistID != nil {
		q = q.Where("stylist_id = ?", *stylistID)
	}

	var bookings []models.Booking
	if err := q.
		Order("date ASC, time_of_day ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}

	return bookings, nil
}

// --------------------------------------------------
// Reminders
// --------------------------------------------------

func (r *BookingGormRepository) ListBookingsDueForReminder(
	ctx context.Context,
	date time.Time,
	hour int,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Salon").
		Where(
			"date = ? AND time_of_day LIKE ? AND status <> ?",
			date.Format("2006-01-02"),
			fmt.Sprintf("%02d:%%", hour),
			string(domain.StatusCancelled),
		).
		Find(&bookings).Error; err != nil {
		return nil, err
	}

	return bookings, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)

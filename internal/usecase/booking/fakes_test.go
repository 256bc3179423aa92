package booking

import (
	"context"
	"errors"
	"time"

	domain "github.com/VelourStudioApp/salon-scheduler/internal/domain/booking"
	"github.com/VelourStudioApp/salon-scheduler/internal/httperr"
	"github.com/VelourStudioApp/salon-scheduler/internal/models"
	"github.com/VelourStudioApp/salon-scheduler/internal/notify"
	"github.com/VelourStudioApp/salon-scheduler/internal/payments"
)

// ======================================================
// Fake repository
// ======================================================

type fakeRepo struct {
	salon        *models.Salon
	service      *models.Service
	stylist      *models.User
	promotion    *models.Promotion
	client       *models.Client
	workingHours *models.WorkingHours

	slotTaken bool

	bookings map[uint]*models.Booking
	payments []*models.Payment
	nextID   uint

	txStarted int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		salon: &models.Salon{
			ID:                1,
			Name:              "Velour Studio",
			Slug:              "velour",
			Timezone:          "UTC",
			MinAdvanceMinutes: 120,
			DepositCents:      5000,
		},
		service: &models.Service{
			ID:          10,
			SalonID:     1,
			CategoryID:  3,
			Name:        "Cut & Style",
			DurationMin: 60,
			PriceCents:  8000,
			Active:      true,
		},
		client: &models.Client{
			ID:      20,
			SalonID: 1,
			Name:    "Dana",
			Phone:   "+15550100",
			Email:   "dana@example.com",
		},
		bookings: make(map[uint]*models.Booking),
	}
}

func (r *fakeRepo) GetSalonByID(_ context.Context, id uint) (*models.Salon, error) {
	if r.salon == nil || r.salon.ID != id {
		return nil, errors.New("salon not found")
	}
	return r.salon, nil
}

func (r *fakeRepo) GetSalonBySlug(_ context.Context, slug string) (*models.Salon, error) {
	if r.salon == nil || r.salon.Slug != slug {
		return nil, errors.New("salon not found")
	}
	return r.salon, nil
}

func (r *fakeRepo) GetService(_ context.Context, salonID, serviceID uint) (*models.Service, error) {
	if r.service == nil || r.service.ID != serviceID || r.service.SalonID != salonID {
		return nil, errors.New("service not found")
	}
	return r.service, nil
}

func (r *fakeRepo) GetPromotion(_ context.Context, _ uint, promotionID uint) (*models.Promotion, error) {
	if r.promotion == nil || r.promotion.ID != promotionID {
		return nil, errors.New("promotion not found")
	}
	return r.promotion, nil
}

func (r *fakeRepo) GetStylist(_ context.Context, _ uint, stylistID uint) (*models.User, error) {
	if r.stylist == nil || r.stylist.ID != stylistID {
		return nil, errors.New("stylist not found")
	}
	return r.stylist, nil
}

func (r *fakeRepo) GetOrCreateClient(_ context.Context, _ uint, _, _, _ string) (*models.Client, error) {
	return r.client, nil
}

func (r *fakeRepo) InTx(_ context.Context, fn func(txRepo domain.Repository) error) error {
	r.txStarted++
	return fn(r)
}

func (r *fakeRepo) AssertSlotFree(_ context.Context, _ domain.SlotKey, _ uint) error {
	if r.slotTaken {
		return httperr.ErrBusiness(httperr.CodeSlotConflict)
	}
	return nil
}

func (r *fakeRepo) CreateBooking(_ context.Context, b *models.Booking) error {
	r.nextID++
	b.ID = r.nextID
	r.bookings[b.ID] = b
	return nil
}

func (r *fakeRepo) CreatePayment(_ context.Context, p *models.Payment) error {
	r.payments = append(r.payments, p)
	return nil
}

func (r *fakeRepo) GetBooking(_ context.Context, _, bookingID uint) (*models.Booking, error) {
	b, ok := r.bookings[bookingID]
	if !ok {
		return nil, errors.New("booking not found")
	}

	b.Payments = nil
	for _, p := range r.payments {
		if p.BookingID == b.ID {
			b.Payments = append(b.Payments, *p)
		}
	}
	return b, nil
}

func (r *fakeRepo) UpdateBooking(_ context.Context, b *models.Booking) error {
	r.bookings[b.ID] = b
	return nil
}

func (r *fakeRepo) GetWorkingHours(_ context.Context, _ uint, _ int) (*models.WorkingHours, error) {
	if r.workingHours == nil {
		return nil, errors.New("no working hours")
	}
	return r.workingHours, nil
}

func (r *fakeRepo) ListBookingsForPeriod(_ context.Context, _ uint, _ *uint, _, _ time.Time) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range r.bookings {
		out = append(out, *b)
	}
	return out, nil
}

func (r *fakeRepo) ListBookingsDueForReminder(_ context.Context, _ time.Time, _ int) ([]models.Booking, error) {
	return nil, nil
}

var _ domain.Repository = (*fakeRepo)(nil)

// ======================================================
// Fake payment gateway
// ======================================================

type fakeGateway struct {
	status      payments.Status
	retrieveErr error

	refunds   []string
	refundErr error
}

func (g *fakeGateway) CreateIntent(_ context.Context, _ int64, _ string) (*payments.Intent, error) {
	return &payments.Intent{Reference: "intent_1"}, nil
}

func (g *fakeGateway) Retrieve(_ context.Context, _ string) (payments.Status, error) {
	if g.retrieveErr != nil {
		return "", g.retrieveErr
	}
	return g.status, nil
}

func (g *fakeGateway) Refund(_ context.Context, reference string) error {
	g.refunds = append(g.refunds, reference)
	return g.refundErr
}

var _ payments.Gateway = (*fakeGateway)(nil)

// ======================================================
// Fake outbox
// ======================================================

type fakeOutbox struct {
	records    []notify.Input
	enqueueErr error
}

func (o *fakeOutbox) Enqueue(_ context.Context, in notify.Input) (*models.NotificationRecord, error) {
	if o.enqueueErr != nil {
		return nil, o.enqueueErr
	}
	for _, r := range o.records {
		if r.BookingID == in.BookingID && r.Kind == in.Kind && r.Channel == in.Channel {
			return nil, notify.ErrDuplicate
		}
	}
	o.records = append(o.records, in)
	return &models.NotificationRecord{}, nil
}

func (o *fakeOutbox) Exists(_ context.Context, bookingID uint, kind, channel string) (bool, error) {
	for _, r := range o.records {
		if r.BookingID == bookingID && r.Kind == kind && r.Channel == channel {
			return true, nil
		}
	}
	return false, nil
}

var _ notify.Outbox = (*fakeOutbox)(nil)

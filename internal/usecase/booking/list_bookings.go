package booking

import (
	"context"
	"time"

	domain "github.com/VelourStudioApp/salon-scheduler/internal/domain/booking"
	"github.com/VelourStudioApp/salon-scheduler/internal/dto"
	"github.com/VelourStudioApp/salon-scheduler/internal/models"
	"github.com/VelourStudioApp/salon-scheduler/internal/timezone"
)

type ListBookings struct {
	repo domain.Repository
}

func NewListBookings(repo domain.Repository) *ListBookings {
	return &ListBookings{repo: repo}
}

func (uc *ListBookings) ByDate(
	ctx context.Context,
	salonID uint,
	stylistID *uint,
	date time.Time,
) ([]dto.BookingListDTO, error) {

	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	end := start.AddDate(0, 0, 1)

	return uc.list(ctx, salonID, stylistID, start, end)
}

func (uc *ListBookings) ByMonth(
	ctx context.Context,
	salonID uint,
	stylistID *uint,
	year int,
	month int,
) ([]dto.BookingListDTO, error) {

	salon, err := uc.repo.GetSalonByID(ctx, salonID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(salon.Timezone)
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0)

	return uc.list(ctx, salonID, stylistID, start, end)
}

func (uc *ListBookings) list(
	ctx context.Context,
	salonID uint,
	stylistID *uint,
	start time.Time,
	end time.Time,
) ([]dto.BookingListDTO, error) {

	salon, err := uc.repo.GetSalonByID(ctx, salonID)
	if err != nil {
		return nil, err
	}

	bookings, err := uc.repo.ListBookingsForPeriod(ctx, salonID, stylistID, start, end)
	if err != nil {
		return nil, err
	}

	out := make([]dto.BookingListDTO, 0, len(bookings))
	for i := range bookings {
		out = append(out, toListDTO(salon, &bookings[i]))
	}

	return out, nil
}

func toListDTO(salon *models.Salon, b *models.Booking) dto.BookingListDTO {
	price := domain.QuotedPrice(&b.Service, b.Stylist, b.Promotion)
	deposit := domain.DepositFor(salon, &b.Service)

	return dto.BookingListDTO{
		ID:               b.ID,
		Date:             b.Date.Format("2006-01-02"),
		TimeOfDay:        b.TimeOfDay,
		Status:           b.Status,
		ClientName:       b.Client.Name,
		ServiceName:      b.Service.Name,
		OutstandingCents: domain.Outstanding(price, deposit, b.Payments),
	}
}

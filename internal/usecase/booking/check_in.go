package booking

import (
	"context"

	"github.com/VelourStudioApp/salon-scheduler/internal/audit"
	domain "github.com/VelourStudioApp/salon-scheduler/internal/domain/booking"
	"github.com/VelourStudioApp/salon-scheduler/internal/httperr"
	"github.com/VelourStudioApp/salon-scheduler/internal/models"
	"github.com/VelourStudioApp/salon-scheduler/internal/timezone"
)

type CheckIn struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCheckIn(
	repo domain.Repository,
	auditDispatcher *audit.Dispatcher,
) *CheckIn {
	return &CheckIn{
		repo:  repo,
		audit: auditDispatcher,
	}
}

func (uc *CheckIn) Execute(
	ctx context.Context,
	salonID uint,
	userID uint,
	bookingID uint,
) (*models.Booking, error) {

	salon, err := uc.repo.GetSalonByID(ctx, salonID)
	if err != nil {
		return nil, err
	}

	b, err := uc.repo.GetBooking(ctx, salonID, bookingID)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	loc := timezone.Location(salon.Timezone)
	now := timezone.NowIn(salon.Timezone)

	if err := domain.CheckIn(b, loc, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  salonID,
		UserID:   &userID,
		Action:   audit.ActionBookingStatus,
		Entity:   "booking",
		EntityID: &b.ID,
		Metadata: map[string]any{"status": string(domain.StatusCheckedIn)},
	})

	return b, nil
}

package booking

import (
	"context"

	"github.com/VelourStudioApp/salon-scheduler/internal/audit"
	domain "github.com/VelourStudioApp/salon-scheduler/internal/domain/booking"
	"github.com/VelourStudioApp/salon-scheduler/internal/httperr"
	"github.com/VelourStudioApp/salon-scheduler/internal/models"
)

type AssignStylist struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewAssignStylist(
	repo domain.Repository,
	auditDispatcher *audit.Dispatcher,
) *AssignStylist {
	return &AssignStylist{
		repo:  repo,
		audit: auditDispatcher,
	}
}

// Execute moves a booking to another stylist. The new (stylist,
// date, time) key runs through the same exclusivity check as a fresh
// reservation, excluding the booking itself.
func (uc *AssignStylist) Execute(
	ctx context.Context,
	salonID uint,
	userID uint,
	bookingID uint,
	stylistID uint,
) (*models.Booking, error) {

	b, err := uc.repo.GetBooking(ctx, salonID, bookingID)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	if err := domain.CanReassign(domain.Status(b.Status)); err != nil {
		return nil, err
	}

	stylist, err := uc.repo.GetStylist(ctx, salonID, stylistID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidSelection)
	}

	err = uc.repo.InTx(ctx, func(txRepo domain.Repository) error {
		key := domain.SlotKey{
			StylistID: &stylist.ID,
			ClientID:  b.ClientID,
			Date:      b.Date,
			TimeOfDay: b.TimeOfDay,
		}

		if err := txRepo.AssertSlotFree(ctx, key, b.ID); err != nil {
			return err
		}

		b.StylistID = &stylist.ID
		b.Stylist = stylist
		return txRepo.UpdateBooking(ctx, b)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  salonID,
		UserID:   &userID,
		Action:   audit.ActionBookingReassigned,
		Entity:   "booking",
		EntityID: &b.ID,
		Metadata: map[string]any{"stylist_id": stylist.ID},
	})

	return b, nil
}

package booking

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/VelourStudioApp/salon-scheduler/internal/audit"
	domain "github.com/VelourStudioApp/salon-scheduler/internal/domain/booking"
	"github.com/VelourStudioApp/salon-scheduler/internal/httperr"
	"github.com/VelourStudioApp/salon-scheduler/internal/models"
	"github.com/VelourStudioApp/salon-scheduler/internal/notify"
	"github.com/VelourStudioApp/salon-scheduler/internal/timezone"
)

type UpdateStatus struct {
	repo   domain.Repository
	outbox notify.Outbox
	audit  *audit.Dispatcher
}

func NewUpdateStatus(
	repo domain.Repository,
	outbox notify.Outbox,
	auditDispatcher *audit.Dispatcher,
) *UpdateStatus {
	return &UpdateStatus{
		repo:   repo,
		outbox: outbox,
		audit:  auditDispatcher,
	}
}

func (uc *UpdateStatus) Execute(
	ctx context.Context,
	salonID uint,
	userID uint,
	bookingID uint,
	to domain.Status,
) (*models.Booking, error) {

	salon, err := uc.repo.GetSalonByID(ctx, salonID)
	if err != nil {
		return nil, err
	}

	b, err := uc.repo.GetBooking(ctx, salonID, bookingID)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	now := timezone.NowIn(salon.Timezone)
	restoring := domain.Status(b.Status) == domain.StatusCancelled && to == domain.StatusBooked

	if err := domain.Transition(b, to, now); err != nil {
		return nil, err
	}

	if restoring {
		// The freed slot may have been re-booked since the
		// cancellation; the restore re-claims it under the same
		// exclusivity rule as a fresh reservation.
		err = uc.repo.InTx(ctx, func(txRepo domain.Repository) error {
			key := domain.SlotKey{
				StylistID: b.StylistID,
				ClientID:  b.ClientID,
				Date:      b.Date,
				TimeOfDay: b.TimeOfDay,
			}
			if err := txRepo.AssertSlotFree(ctx, key, b.ID); err != nil {
				return err
			}
			return txRepo.UpdateBooking(ctx, b)
		})
	} else {
		err = uc.repo.UpdateBooking(ctx, b)
	}
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  salonID,
		UserID:   &userID,
		Action:   audit.ActionBookingStatus,
		Entity:   "booking",
		EntityID: &b.ID,
		Metadata: map[string]any{"status": string(to)},
	})

	if to == domain.StatusCompleted {
		uc.enqueueThankYou(ctx, salon, b)
	}

	return b, nil
}

// enqueueThankYou fires once per booking; the ledger's uniqueness
// swallows any repeat coming from a retried request.
func (uc *UpdateStatus) enqueueThankYou(
	ctx context.Context,
	salon *models.Salon,
	b *models.Booking,
) {
	body := fmt.Sprintf(
		"Thank you for visiting %s! We hope to see you again soon.",
		salon.Name,
	)

	if !b.Client.EmailOptOut && b.Client.Email != "" {
		_, err := uc.outbox.Enqueue(ctx, notify.Input{
			Channel:     notify.ChannelEmail,
			Destination: b.Client.Email,
			Subject:     "Thank you!",
			Body:        body,
			BookingID:   b.ID,
			Kind:        notify.KindThankYou,
		})
		if err != nil && !errors.Is(err, notify.ErrDuplicate) {
			log.Printf("thank-you email enqueue failed for booking %d: %v", b.ID, err)
		}
	}

	if !b.Client.SMSOptOut && b.Client.Phone != "" {
		_, err := uc.outbox.Enqueue(ctx, notify.Input{
			Channel:     notify.ChannelSMS,
			Destination: b.Client.Phone,
			Body:        body,
			BookingID:   b.ID,
			Kind:        notify.KindThankYou,
		})
		if err != nil && !errors.Is(err, notify.ErrDuplicate) {
			log.Printf("thank-you sms enqueue failed for booking %d: %v", b.ID, err)
		}
	}
}

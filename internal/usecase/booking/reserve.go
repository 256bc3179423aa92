package booking

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/VelourStudioApp/salon-scheduler/internal/audit"
	domain "github.com/VelourStudioApp/salon-scheduler/internal/domain/booking"
	"github.com/VelourStudioApp/salon-scheduler/internal/httperr"
	"github.com/VelourStudioApp/salon-scheduler/internal/models"
	"github.com/VelourStudioApp/salon-scheduler/internal/notify"
	"github.com/VelourStudioApp/salon-scheduler/internal/payments"
	"github.com/VelourStudioApp/salon-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type ReserveInput struct {
	SalonID uint

	ClientName  string
	ClientPhone string
	ClientEmail string

	ServiceID   uint
	StylistID   *uint
	PromotionID *uint

	Date  string
	Time  string
	Notes string

	// Reference of the deposit charge already captured by the
	// client through the gateway.
	PaymentRef string

	// Optional; resolved from the salon/service when zero.
	DepositCents int64
}

// ======================================================
// SAGA PHASES
// ======================================================

// The reservation interleaves a non-transactional payment capture
// with a transactional slot claim. Phases make the path explicit:
// verifying -> reserving -> committed on success,
// reserving -> compensating -> failed when the claim loses.
type phase string

const (
	phaseVerifying    phase = "verifying"
	phaseReserving    phase = "reserving"
	phaseCommitted    phase = "committed"
	phaseCompensating phase = "compensating"
	phaseFailed       phase = "failed"
)

// refundTimeout bounds the compensation call so a slow gateway never
// holds the client's response hostage.
const refundTimeout = 10 * time.Second

// ======================================================
// USE CASE
// ======================================================

type Reserve struct {
	repo    domain.Repository
	gateway payments.Gateway
	outbox  notify.Outbox
	audit   *audit.Dispatcher
}

func NewReserve(
	repo domain.Repository,
	gateway payments.Gateway,
	outbox notify.Outbox,
	auditDispatcher *audit.Dispatcher,
) *Reserve {
	return &Reserve{
		repo:    repo,
		gateway: gateway,
		outbox:  outbox,
		audit:   auditDispatcher,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *Reserve) Execute(
	ctx context.Context,
	in ReserveInput,
) (*models.Booking, error) {

	// --------------------------------------------------
	// Phase: verifying (no transaction open, nothing to
	// compensate on failure here)
	// --------------------------------------------------
	ph := phaseVerifying
	defer func() {
		if ph != phaseCommitted {
			log.Printf("reservation attempt for salon %d ended in phase %s", in.SalonID, ph)
		}
	}()

	salon, err := uc.repo.GetSalonByID(ctx, in.SalonID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(salon.Timezone)
	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		loc,
	)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidDateOrTime)
	}

	minAdvance := salon.MinAdvanceMinutes
	if minAdvance <= 0 {
		minAdvance = 120
	}

	now := timezone.NowIn(salon.Timezone)
	if start.Before(now.Add(time.Duration(minAdvance) * time.Minute)) {
		return nil, httperr.ErrBusiness(httperr.CodeTooSoon)
	}

	status, err := uc.gateway.Retrieve(ctx, in.PaymentRef)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodePaymentGatewayFailure)
	}
	if status != payments.StatusSucceeded {
		return nil, httperr.ErrBusiness(httperr.CodePaymentNotCaptured)
	}

	svc, err := uc.repo.GetService(ctx, in.SalonID, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidSelection)
	}

	var stylist *models.User
	if in.StylistID != nil {
		stylist, err = uc.repo.GetStylist(ctx, in.SalonID, *in.StylistID)
		if err != nil {
			return nil, httperr.ErrBusiness(httperr.CodeInvalidSelection)
		}
	}

	if in.PromotionID != nil {
		if _, err := uc.repo.GetPromotion(ctx, in.SalonID, *in.PromotionID); err != nil {
			return nil, httperr.ErrBusiness(httperr.CodeInvalidSelection)
		}
	}

	end := start.Add(time.Duration(svc.DurationMin) * time.Minute)
	if stylist != nil {
		wh, err := uc.repo.GetWorkingHours(ctx, stylist.ID, int(start.Weekday()))
		if err != nil || !domain.WithinWorkingHours(wh, start, end) {
			return nil, httperr.ErrBusiness(httperr.CodeOutsideWorkingHours)
		}
	}

	client, err := uc.repo.GetOrCreateClient(
		ctx,
		in.SalonID,
		in.ClientName,
		in.ClientPhone,
		in.ClientEmail,
	)
	if err != nil {
		return nil, err
	}

	deposit := in.DepositCents
	if deposit <= 0 {
		deposit = domain.DepositFor(salon, svc)
	}

	// --------------------------------------------------
	// Phase: reserving. One transaction holding only the
	// slot check and the booking/payment inserts. The
	// gateway is never called while it is open.
	// --------------------------------------------------
	ph = phaseReserving

	b := &models.Booking{
		SalonID:     in.SalonID,
		ClientID:    client.ID,
		ServiceID:   svc.ID,
		CategoryID:  svc.CategoryID,
		StylistID:   in.StylistID,
		PromotionID: in.PromotionID,
		Date:        start,
		TimeOfDay:   start.Format("15:04"),
		Status:      string(domain.InitialStatus()),
		Notes:       in.Notes,
	}

	txErr := uc.repo.InTx(ctx, func(txRepo domain.Repository) error {
		key := domain.SlotKey{
			StylistID: in.StylistID,
			ClientID:  client.ID,
			Date:      start,
			TimeOfDay: b.TimeOfDay,
		}

		if err := txRepo.AssertSlotFree(ctx, key, 0); err != nil {
			return err
		}

		if err := txRepo.CreateBooking(ctx, b); err != nil {
			return err
		}

		dep := &models.Payment{
			BookingID:   b.ID,
			AmountCents: deposit,
			Reference:   in.PaymentRef,
			Status:      models.PaymentStatusSucceeded,
			Method:      models.PaymentMethodGateway,
			Purpose:     models.PaymentPurposeDeposit,
		}
		return txRepo.CreatePayment(ctx, dep)
	})

	if txErr != nil {
		// ----------------------------------------------
		// Phase: compensating. The charge exists but the
		// reservation does not. Refund outside the dead
		// transaction, bounded, and never let its outcome
		// replace the original failure.
		// ----------------------------------------------
		ph = phaseCompensating
		uc.compensate(ctx, salon.ID, in.PaymentRef, deposit, txErr)
		ph = phaseFailed
		return nil, txErr
	}

	// --------------------------------------------------
	// Phase: committed
	// --------------------------------------------------
	ph = phaseCommitted

	uc.audit.Dispatch(audit.Event{
		SalonID:  in.SalonID,
		Action:   audit.ActionBookingReserved,
		Entity:   "booking",
		EntityID: &b.ID,
		Metadata: map[string]any{
			"payment_ref":   in.PaymentRef,
			"deposit_cents": deposit,
		},
	})

	uc.enqueueConfirmations(ctx, salon, client, b)

	return uc.repo.GetBooking(ctx, in.SalonID, b.ID)
}

// compensate refunds a captured charge whose reservation aborted.
// A failed refund is the one state that needs a human: it is logged
// as critical and recorded as an uncompensated_charge audit event,
// while the caller still receives the original abort reason.
func (uc *Reserve) compensate(
	ctx context.Context,
	salonID uint,
	paymentRef string,
	amountCents int64,
	cause error,
) {
	refundCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), refundTimeout)
	defer cancel()

	if err := uc.gateway.Refund(refundCtx, paymentRef); err != nil {
		log.Printf(
			"CRITICAL: refund failed for payment %s after reservation abort (%v): %v. manual reconciliation required",
			paymentRef, cause, err,
		)
		uc.audit.Dispatch(audit.Event{
			SalonID: salonID,
			Action:  audit.ActionUncompensatedCharge,
			Entity:  "payment",
			Metadata: map[string]any{
				"payment_ref":  paymentRef,
				"amount_cents": amountCents,
				"abort_reason": cause.Error(),
				"refund_error": err.Error(),
			},
		})
		return
	}

	uc.audit.Dispatch(audit.Event{
		SalonID: salonID,
		Action:  audit.ActionPaymentRefunded,
		Entity:  "payment",
		Metadata: map[string]any{
			"payment_ref":  paymentRef,
			"amount_cents": amountCents,
			"abort_reason": cause.Error(),
		},
	})
}

// enqueueConfirmations is best-effort: a full outbox or a down
// database for the ledger never rolls back a committed reservation.
func (uc *Reserve) enqueueConfirmations(
	ctx context.Context,
	salon *models.Salon,
	client *models.Client,
	b *models.Booking,
) {
	body := fmt.Sprintf(
		"Your appointment at %s is confirmed for %s at %s.",
		salon.Name, b.Date.Format("2006-01-02"), b.TimeOfDay,
	)

	if !client.EmailOptOut && client.Email != "" {
		_, err := uc.outbox.Enqueue(ctx, notify.Input{
			Channel:     notify.ChannelEmail,
			Destination: client.Email,
			Subject:     "Appointment confirmed",
			Body:        body,
			BookingID:   b.ID,
			Kind:        notify.KindConfirmation,
		})
		if err != nil && !errors.Is(err, notify.ErrDuplicate) {
			log.Printf("confirmation email enqueue failed for booking %d: %v", b.ID, err)
		}
	}

	if !client.SMSOptOut && client.Phone != "" {
		_, err := uc.outbox.Enqueue(ctx, notify.Input{
			Channel:     notify.ChannelSMS,
			Destination: client.Phone,
			Body:        body,
			BookingID:   b.ID,
			Kind:        notify.KindConfirmation,
		})
		if err != nil && !errors.Is(err, notify.ErrDuplicate) {
			log.Printf("confirmation sms enqueue failed for booking %d: %v", b.ID, err)
		}
	}
}

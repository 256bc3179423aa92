package booking

import (
	"context"

	"github.com/VelourStudioApp/salon-scheduler/internal/audit"
	domain "github.com/VelourStudioApp/salon-scheduler/internal/domain/booking"
	"github.com/VelourStudioApp/salon-scheduler/internal/httperr"
	"github.com/VelourStudioApp/salon-scheduler/internal/models"
	"github.com/VelourStudioApp/salon-scheduler/internal/payments"
)

// ======================================================
// INPUT
// ======================================================

type RecordPaymentInput struct {
	SalonID   uint
	UserID    uint
	BookingID uint

	AmountCents int64
	Method      string

	// Gateway reference of an already captured charge. Ignored for
	// cash, which gets a local placeholder.
	Reference string
}

// ======================================================
// USE CASE
// ======================================================

// RecordPayment books the secondary (balance) payment collected
// after service, either in person or through the gateway. The
// recorded amount is what counts toward the balance; any gateway
// processing fee was added to the charge only, never here.
type RecordPayment struct {
	repo    domain.Repository
	gateway payments.Gateway
	audit   *audit.Dispatcher
}

func NewRecordPayment(
	repo domain.Repository,
	gateway payments.Gateway,
	auditDispatcher *audit.Dispatcher,
) *RecordPayment {
	return &RecordPayment{
		repo:    repo,
		gateway: gateway,
		audit:   auditDispatcher,
	}
}

func (uc *RecordPayment) Execute(
	ctx context.Context,
	in RecordPaymentInput,
) (*models.Booking, error) {

	salon, err := uc.repo.GetSalonByID(ctx, in.SalonID)
	if err != nil {
		return nil, err
	}

	b, err := uc.repo.GetBooking(ctx, in.SalonID, in.BookingID)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	price := domain.QuotedPrice(&b.Service, b.Stylist, b.Promotion)
	deposit := domain.DepositFor(salon, &b.Service)
	outstanding := domain.Outstanding(price, deposit, b.Payments)

	if in.AmountCents <= 0 || in.AmountCents > outstanding {
		return nil, httperr.ErrBusiness("invalid_amount")
	}

	reference := in.Reference
	switch in.Method {
	case models.PaymentMethodCash:
		reference = payments.CashReference()
	case models.PaymentMethodGateway:
		status, err := uc.gateway.Retrieve(ctx, reference)
		if err != nil {
			return nil, httperr.ErrBusiness(httperr.CodePaymentGatewayFailure)
		}
		if status != payments.StatusSucceeded {
			return nil, httperr.ErrBusiness(httperr.CodePaymentNotCaptured)
		}
	default:
		return nil, httperr.ErrBusiness("invalid_method")
	}

	p := &models.Payment{
		BookingID:   b.ID,
		AmountCents: in.AmountCents,
		Reference:   reference,
		Status:      models.PaymentStatusSucceeded,
		Method:      in.Method,
		Purpose:     models.PaymentPurposeBalance,
	}

	if err := uc.repo.CreatePayment(ctx, p); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  in.SalonID,
		UserID:   &in.UserID,
		Action:   audit.ActionPaymentRecorded,
		Entity:   "payment",
		EntityID: &p.ID,
		Metadata: map[string]any{
			"booking_id":   b.ID,
			"amount_cents": in.AmountCents,
			"method":       in.Method,
		},
	})

	return uc.repo.GetBooking(ctx, in.SalonID, in.BookingID)
}

package booking

import (
	"context"
	"fmt"

	domain "github.com/VelourStudioApp/salon-scheduler/internal/domain/booking"
	"github.com/VelourStudioApp/salon-scheduler/internal/httperr"
	"github.com/VelourStudioApp/salon-scheduler/internal/payments"
)

// ======================================================
// Deposit intent (public booking page)
// ======================================================

type CreateDepositIntent struct {
	repo    domain.Repository
	gateway payments.Gateway
}

func NewCreateDepositIntent(
	repo domain.Repository,
	gateway payments.Gateway,
) *CreateDepositIntent {
	return &CreateDepositIntent{
		repo:    repo,
		gateway: gateway,
	}
}

type DepositIntentOutput struct {
	Intent       *payments.Intent `json:"intent"`
	DepositCents int64            `json:"deposit_cents"`
}

func (uc *CreateDepositIntent) Execute(
	ctx context.Context,
	slug string,
	serviceID uint,
) (*DepositIntentOutput, error) {

	salon, err := uc.repo.GetSalonBySlug(ctx, slug)
	if err != nil {
		return nil, httperr.ErrBusiness("salon_not_found")
	}

	svc, err := uc.repo.GetService(ctx, salon.ID, serviceID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidSelection)
	}

	deposit := domain.DepositFor(salon, svc)

	intent, err := uc.gateway.CreateIntent(
		ctx,
		deposit,
		fmt.Sprintf("%s: booking deposit (%s)", salon.Name, svc.Name),
	)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodePaymentGatewayFailure)
	}

	return &DepositIntentOutput{
		Intent:       intent,
		DepositCents: deposit,
	}, nil
}

// ======================================================
// Balance intent (secondary collection)
// ======================================================

// CreateBalanceIntent prepares a gateway charge for the remaining
// balance. The processing fee inflates the charged amount only; the
// amount owed toward the service stays the outstanding balance.
type CreateBalanceIntent struct {
	repo           domain.Repository
	gateway        payments.Gateway
	feeBasisPoints int64
}

func NewCreateBalanceIntent(
	repo domain.Repository,
	gateway payments.Gateway,
	feeBasisPoints int64,
) *CreateBalanceIntent {
	return &CreateBalanceIntent{
		repo:           repo,
		gateway:        gateway,
		feeBasisPoints: feeBasisPoints,
	}
}

type BalanceIntentOutput struct {
	Intent           *payments.Intent `json:"intent"`
	OutstandingCents int64            `json:"outstanding_cents"`
	ChargeCents      int64            `json:"charge_cents"`
}

func (uc *CreateBalanceIntent) Execute(
	ctx context.Context,
	salonID uint,
	bookingID uint,
) (*BalanceIntentOutput, error) {

	salon, err := uc.repo.GetSalonByID(ctx, salonID)
	if err != nil {
		return nil, err
	}

	b, err := uc.repo.GetBooking(ctx, salonID, bookingID)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	price := domain.QuotedPrice(&b.Service, b.Stylist, b.Promotion)
	deposit := domain.DepositFor(salon, &b.Service)
	outstanding := domain.Outstanding(price, deposit, b.Payments)

	if outstanding == 0 {
		return nil, httperr.ErrBusiness("nothing_outstanding")
	}

	charge := domain.GatewayCharge(outstanding, uc.feeBasisPoints)

	intent, err := uc.gateway.CreateIntent(
		ctx,
		charge,
		fmt.Sprintf("%s: balance for booking #%d", salon.Name, b.ID),
	)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodePaymentGatewayFailure)
	}

	return &BalanceIntentOutput{
		Intent:           intent,
		OutstandingCents: outstanding,
		ChargeCents:      charge,
	}, nil
}

package payments

import (
	"context"
	"fmt"
	"strconv"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"
	"github.com/mercadopago/sdk-go/pkg/refund"
)

// MercadoPagoGateway adapts the Mercado Pago SDK to the Gateway
// port. References handed back by Retrieve/Refund are payment ids;
// CreateIntent returns a checkout preference whose init point the
// client opens to pay the deposit.
type MercadoPagoGateway struct {
	payments    payment.Client
	refunds     refund.Client
	preferences preference.Client
	currency    string
}

func NewMercadoPagoGateway(accessToken, currency string) (*MercadoPagoGateway, error) {
	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}

	return &MercadoPagoGateway{
		payments:    payment.NewClient(cfg),
		refunds:     refund.NewClient(cfg),
		preferences: preference.NewClient(cfg),
		currency:    currency,
	}, nil
}

func (g *MercadoPagoGateway) CreateIntent(
	ctx context.Context,
	amountCents int64,
	description string,
) (*Intent, error) {

	req := preference.Request{
		Items: []preference.ItemRequest{
			{
				Title:      description,
				Quantity:   1,
				UnitPrice:  float64(amountCents) / 100,
				CurrencyID: g.currency,
			},
		},
	}

	resource, err := g.preferences.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create preference: %w", err)
	}

	return &Intent{
		Reference:    resource.ID,
		ClientSecret: resource.InitPoint,
	}, nil
}

func (g *MercadoPagoGateway) Retrieve(
	ctx context.Context,
	reference string,
) (Status, error) {

	id, err := strconv.Atoi(reference)
	if err != nil {
		return StatusFailed, fmt.Errorf("invalid payment reference %q: %w", reference, err)
	}

	resource, err := g.payments.Get(ctx, id)
	if err != nil {
		return StatusFailed, fmt.Errorf("retrieve payment %d: %w", id, err)
	}

	switch resource.Status {
	case "approved":
		return StatusSucceeded, nil
	case "pending", "in_process", "authorized":
		return StatusPending, nil
	default:
		return StatusFailed, nil
	}
}

func (g *MercadoPagoGateway) Refund(
	ctx context.Context,
	reference string,
) error {

	id, err := strconv.Atoi(reference)
	if err != nil {
		return fmt.Errorf("invalid payment reference %q: %w", reference, err)
	}

	if _, err := g.refunds.Create(ctx, id); err != nil {
		return fmt.Errorf("refund payment %d: %w", id, err)
	}

	return nil
}

var _ Gateway = (*MercadoPagoGateway)(nil)

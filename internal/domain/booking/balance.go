package booking

import "github.com/VelourStudioApp/salon-scheduler/internal/models"

// ===============================
// Pricing / Balance
// ===============================

// QuotedPrice is the full service price for a booking: the base
// service price, plus the assigned stylist's price modifier, minus
// any promotion discount. Never negative.
func QuotedPrice(svc *models.Service, stylist *models.User, promo *models.Promotion) int64 {
	price := svc.PriceCents
	if stylist != nil {
		price += stylist.PriceModifierCents
	}
	if promo != nil && promo.Active {
		price -= promo.DiscountCents
	}
	if price < 0 {
		price = 0
	}
	return price
}

// DepositFor resolves the deposit owed for a service: the service
// override when set, else the salon default.
func DepositFor(salon *models.Salon, svc *models.Service) int64 {
	if svc.DepositCents > 0 {
		return svc.DepositCents
	}
	return salon.DepositCents
}

// Outstanding computes the balance still owed toward a booking.
// The amount owed is the service price plus the deposit; the deposit
// payment counts toward it, so a freshly reserved booking owes the
// bare service price.
func Outstanding(priceCents, depositCents int64, payments []models.Payment) int64 {
	var paid int64
	for _, p := range payments {
		if p.Status == models.PaymentStatusSucceeded {
			paid += p.AmountCents
		}
	}

	owed := priceCents + depositCents - paid
	if owed < 0 {
		owed = 0
	}
	return owed
}

// GatewayCharge adds the processing-fee surcharge to an amount that
// will be collected through the payment gateway. The fee inflates
// only what the processor charges, never the recorded amount owed.
func GatewayCharge(amountCents, feeBasisPoints int64) int64 {
	return amountCents + amountCents*feeBasisPoints/10000
}

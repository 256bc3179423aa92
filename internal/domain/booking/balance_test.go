package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/VelourStudioApp/salon-scheduler/internal/models"
)

func succeeded(cents int64) models.Payment {
	return models.Payment{AmountCents: cents, Status: models.PaymentStatusSucceeded}
}

func TestOutstanding(t *testing.T) {
	// $80 service with a $50 deposit: after the deposit payment the
	// client still owes the full $80; after paying it, nothing.
	price := int64(8000)
	deposit := int64(5000)

	assert.Equal(t, int64(13000), Outstanding(price, deposit, nil))
	assert.Equal(t, int64(8000), Outstanding(price, deposit, []models.Payment{
		succeeded(5000),
	}))
	assert.Equal(t, int64(0), Outstanding(price, deposit, []models.Payment{
		succeeded(5000),
		succeeded(8000),
	}))
}

func TestOutstanding_IgnoresNonSucceededPayments(t *testing.T) {
	payments := []models.Payment{
		succeeded(5000),
		{AmountCents: 8000, Status: models.PaymentStatusPending},
		{AmountCents: 8000, Status: models.PaymentStatusFailed},
	}
	assert.Equal(t, int64(8000), Outstanding(8000, 5000, payments))
}

func TestOutstanding_NeverNegative(t *testing.T) {
	assert.Equal(t, int64(0), Outstanding(8000, 5000, []models.Payment{
		succeeded(20000),
	}))
}

func TestQuotedPrice(t *testing.T) {
	svc := &models.Service{PriceCents: 8000}

	assert.Equal(t, int64(8000), QuotedPrice(svc, nil, nil))

	senior := &models.User{PriceModifierCents: 1500}
	assert.Equal(t, int64(9500), QuotedPrice(svc, senior, nil))

	promo := &models.Promotion{DiscountCents: 2000, Active: true}
	assert.Equal(t, int64(7500), QuotedPrice(svc, senior, promo))

	inactive := &models.Promotion{DiscountCents: 2000, Active: false}
	assert.Equal(t, int64(9500), QuotedPrice(svc, senior, inactive))

	// discount larger than the price clamps to zero
	huge := &models.Promotion{DiscountCents: 99999, Active: true}
	assert.Equal(t, int64(0), QuotedPrice(svc, nil, huge))
}

func TestDepositFor(t *testing.T) {
	salon := &models.Salon{DepositCents: 5000}

	assert.Equal(t, int64(5000), DepositFor(salon, &models.Service{}))
	assert.Equal(t, int64(7500), DepositFor(salon, &models.Service{DepositCents: 7500}))
}

func TestGatewayCharge(t *testing.T) {
	// 3% fee on $80
	assert.Equal(t, int64(8240), GatewayCharge(8000, 300))

	assert.Equal(t, int64(8000), GatewayCharge(8000, 0))

	// fee applies to the charged amount only, truncating fractions
	assert.Equal(t, int64(103), GatewayCharge(101, 250))
}

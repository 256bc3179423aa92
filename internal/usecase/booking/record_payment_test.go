package booking

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VelourStudioApp/salon-scheduler/internal/audit"
	domain "github.com/VelourStudioApp/salon-scheduler/internal/domain/booking"
	"github.com/VelourStudioApp/salon-scheduler/internal/httperr"
	"github.com/VelourStudioApp/salon-scheduler/internal/models"
	"github.com/VelourStudioApp/salon-scheduler/internal/payments"
)

func newRecordPayment(repo *fakeRepo, gw *fakeGateway) *RecordPayment {
	return NewRecordPayment(repo, gw, audit.NewDispatcher(nil))
}

func seedBookingWithDeposit(repo *fakeRepo) *models.Booking {
	b := seedBooking(repo, domain.StatusCheckedIn)
	repo.payments = append(repo.payments, &models.Payment{
		BookingID:   b.ID,
		AmountCents: repo.salon.DepositCents,
		Status:      models.PaymentStatusSucceeded,
		Purpose:     models.PaymentPurposeDeposit,
	})
	return b
}

func TestRecordPayment_Cash(t *testing.T) {
	repo := newFakeRepo()
	b := seedBookingWithDeposit(repo)

	// price 8000 + deposit 5000 - paid 5000 = 8000 outstanding
	out, err := newRecordPayment(repo, &fakeGateway{}).Execute(context.Background(), RecordPaymentInput{
		SalonID:     1,
		UserID:      5,
		BookingID:   b.ID,
		AmountCents: 8000,
		Method:      models.PaymentMethodCash,
	})
	require.NoError(t, err)

	require.Len(t, out.Payments, 2)
	balance := out.Payments[1]
	assert.Equal(t, int64(8000), balance.AmountCents)
	assert.Equal(t, models.PaymentPurposeBalance, balance.Purpose)
	assert.True(t, strings.HasPrefix(balance.Reference, "cash_"))
}

func TestRecordPayment_GatewayRequiresCapturedCharge(t *testing.T) {
	repo := newFakeRepo()
	b := seedBookingWithDeposit(repo)
	gw := &fakeGateway{status: payments.StatusPending}

	_, err := newRecordPayment(repo, gw).Execute(context.Background(), RecordPaymentInput{
		SalonID:     1,
		UserID:      5,
		BookingID:   b.ID,
		AmountCents: 8000,
		Method:      models.PaymentMethodGateway,
		Reference:   "pay_456",
	})
	require.Error(t, err)
	assert.Equal(t, httperr.CodePaymentNotCaptured, httperr.BusinessCode(err))
	assert.Len(t, repo.payments, 1, "no payment recorded")
}

func TestRecordPayment_RejectsOverpayment(t *testing.T) {
	repo := newFakeRepo()
	b := seedBookingWithDeposit(repo)

	_, err := newRecordPayment(repo, &fakeGateway{}).Execute(context.Background(), RecordPaymentInput{
		SalonID:     1,
		UserID:      5,
		BookingID:   b.ID,
		AmountCents: 8001,
		Method:      models.PaymentMethodCash,
	})
	require.Error(t, err)
	assert.Equal(t, "invalid_amount", httperr.BusinessCode(err))
}

func TestRecordPayment_RejectsUnknownMethod(t *testing.T) {
	repo := newFakeRepo()
	b := seedBookingWithDeposit(repo)

	_, err := newRecordPayment(repo, &fakeGateway{}).Execute(context.Background(), RecordPaymentInput{
		SalonID:     1,
		UserID:      5,
		BookingID:   b.ID,
		AmountCents: 100,
		Method:      "barter",
	})
	require.Error(t, err)
	assert.Equal(t, "invalid_method", httperr.BusinessCode(err))
}

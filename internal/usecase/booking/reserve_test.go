package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VelourStudioApp/salon-scheduler/internal/audit"
	"github.com/VelourStudioApp/salon-scheduler/internal/httperr"
	"github.com/VelourStudioApp/salon-scheduler/internal/models"
	"github.com/VelourStudioApp/salon-scheduler/internal/notify"
	"github.com/VelourStudioApp/salon-scheduler/internal/payments"
)

func reserveInput() ReserveInput {
	// far enough out to clear any minimum-advance setting
	day := time.Now().UTC().AddDate(0, 0, 14)
	return ReserveInput{
		SalonID:     1,
		ClientName:  "Dana",
		ClientPhone: "+15550100",
		ClientEmail: "dana@example.com",
		ServiceID:   10,
		Date:        day.Format("2006-01-02"),
		Time:        "14:00",
		PaymentRef:  "pay_123",
	}
}

func newReserve(repo *fakeRepo, gw *fakeGateway, ob *fakeOutbox) *Reserve {
	return NewReserve(repo, gw, ob, audit.NewDispatcher(nil))
}

func TestReserve_Success(t *testing.T) {
	repo := newFakeRepo()
	gw := &fakeGateway{status: payments.StatusSucceeded}
	ob := &fakeOutbox{}

	b, err := newReserve(repo, gw, ob).Execute(context.Background(), reserveInput())
	require.NoError(t, err)
	require.NotNil(t, b)

	assert.Equal(t, "booked", b.Status)
	assert.Equal(t, "14:00", b.TimeOfDay)
	assert.Equal(t, repo.client.ID, b.ClientID)

	require.Len(t, repo.payments, 1)
	dep := repo.payments[0]
	assert.Equal(t, b.ID, dep.BookingID)
	assert.Equal(t, repo.salon.DepositCents, dep.AmountCents)
	assert.Equal(t, "pay_123", dep.Reference)
	assert.Equal(t, models.PaymentStatusSucceeded, dep.Status)
	assert.Equal(t, models.PaymentPurposeDeposit, dep.Purpose)

	assert.Empty(t, gw.refunds, "nothing to refund on success")

	// one confirmation per consented channel
	require.Len(t, ob.records, 2)
	channels := map[string]bool{}
	for _, r := range ob.records {
		assert.Equal(t, notify.KindConfirmation, r.Kind)
		assert.Equal(t, b.ID, r.BookingID)
		channels[r.Channel] = true
	}
	assert.True(t, channels[notify.ChannelEmail])
	assert.True(t, channels[notify.ChannelSMS])
}

func TestReserve_ServiceDepositOverride(t *testing.T) {
	repo := newFakeRepo()
	repo.service.DepositCents = 7500
	gw := &fakeGateway{status: payments.StatusSucceeded}

	_, err := newReserve(repo, gw, &fakeOutbox{}).Execute(context.Background(), reserveInput())
	require.NoError(t, err)

	require.Len(t, repo.payments, 1)
	assert.Equal(t, int64(7500), repo.payments[0].AmountCents)
}

func TestReserve_PaymentNotCaptured(t *testing.T) {
	repo := newFakeRepo()
	gw := &fakeGateway{status: payments.StatusPending}

	_, err := newReserve(repo, gw, &fakeOutbox{}).Execute(context.Background(), reserveInput())
	require.Error(t, err)
	assert.Equal(t, httperr.CodePaymentNotCaptured, httperr.BusinessCode(err))

	assert.Zero(t, repo.txStarted, "no reservation attempted without a captured payment")
	assert.Empty(t, repo.bookings)
	assert.Empty(t, gw.refunds, "nothing was charged against this attempt")
}

func TestReserve_GatewayDown(t *testing.T) {
	repo := newFakeRepo()
	gw := &fakeGateway{retrieveErr: errors.New("connection refused")}

	_, err := newReserve(repo, gw, &fakeOutbox{}).Execute(context.Background(), reserveInput())
	require.Error(t, err)
	assert.Equal(t, httperr.CodePaymentGatewayFailure, httperr.BusinessCode(err))
	assert.Zero(t, repo.txStarted)
}

func TestReserve_SlotConflictRefunds(t *testing.T) {
	repo := newFakeRepo()
	repo.slotTaken = true
	gw := &fakeGateway{status: payments.StatusSucceeded}
	ob := &fakeOutbox{}

	_, err := newReserve(repo, gw, ob).Execute(context.Background(), reserveInput())
	require.Error(t, err)
	assert.Equal(t, httperr.CodeSlotConflict, httperr.BusinessCode(err))

	require.Len(t, gw.refunds, 1, "captured deposit must be refunded")
	assert.Equal(t, "pay_123", gw.refunds[0])

	assert.Empty(t, repo.payments)
	assert.Empty(t, ob.records, "no confirmation for a failed reservation")
}

func TestReserve_RefundFailureKeepsOriginalError(t *testing.T) {
	repo := newFakeRepo()
	repo.slotTaken = true
	gw := &fakeGateway{
		status:    payments.StatusSucceeded,
		refundErr: errors.New("processor 5xx"),
	}

	_, err := newReserve(repo, gw, &fakeOutbox{}).Execute(context.Background(), reserveInput())
	require.Error(t, err)

	// the caller sees the reservation failure, never the refund failure
	assert.Equal(t, httperr.CodeSlotConflict, httperr.BusinessCode(err))
	require.Len(t, gw.refunds, 1)
}

func TestReserve_InvalidService(t *testing.T) {
	repo := newFakeRepo()
	repo.service = nil
	gw := &fakeGateway{status: payments.StatusSucceeded}

	_, err := newReserve(repo, gw, &fakeOutbox{}).Execute(context.Background(), reserveInput())
	require.Error(t, err)
	assert.Equal(t, httperr.CodeInvalidSelection, httperr.BusinessCode(err))
	assert.Empty(t, gw.refunds, "fails before any slot claim, nothing to compensate")
}

func TestReserve_UnknownStylist(t *testing.T) {
	repo := newFakeRepo()
	gw := &fakeGateway{status: payments.StatusSucceeded}

	in := reserveInput()
	stylistID := uint(99)
	in.StylistID = &stylistID

	_, err := newReserve(repo, gw, &fakeOutbox{}).Execute(context.Background(), in)
	require.Error(t, err)
	assert.Equal(t, httperr.CodeInvalidSelection, httperr.BusinessCode(err))
}

func TestReserve_StylistOutsideWorkingHours(t *testing.T) {
	repo := newFakeRepo()
	repo.stylist = &models.User{ID: 7, SalonID: 1, Active: true}
	repo.workingHours = &models.WorkingHours{
		Active:    true,
		StartTime: "09:00",
		EndTime:   "12:00",
	}
	gw := &fakeGateway{status: payments.StatusSucceeded}

	in := reserveInput()
	stylistID := uint(7)
	in.StylistID = &stylistID
	in.Time = "14:00"

	_, err := newReserve(repo, gw, &fakeOutbox{}).Execute(context.Background(), in)
	require.Error(t, err)
	assert.Equal(t, httperr.CodeOutsideWorkingHours, httperr.BusinessCode(err))
}

func TestReserve_TooSoon(t *testing.T) {
	repo := newFakeRepo()
	gw := &fakeGateway{status: payments.StatusSucceeded}

	in := reserveInput()
	now := time.Now().UTC().Add(30 * time.Minute)
	in.Date = now.Format("2006-01-02")
	in.Time = now.Format("15:04")

	_, err := newReserve(repo, gw, &fakeOutbox{}).Execute(context.Background(), in)
	require.Error(t, err)
	assert.Equal(t, httperr.CodeTooSoon, httperr.BusinessCode(err))
}

func TestReserve_SkipsOptedOutChannels(t *testing.T) {
	repo := newFakeRepo()
	repo.client.SMSOptOut = true
	gw := &fakeGateway{status: payments.StatusSucceeded}
	ob := &fakeOutbox{}

	_, err := newReserve(repo, gw, ob).Execute(context.Background(), reserveInput())
	require.NoError(t, err)

	require.Len(t, ob.records, 1)
	assert.Equal(t, notify.ChannelEmail, ob.records[0].Channel)
}

func TestReserve_OutboxFailureDoesNotFailReservation(t *testing.T) {
	repo := newFakeRepo()
	gw := &fakeGateway{status: payments.StatusSucceeded}
	ob := &fakeOutbox{enqueueErr: errors.New("outbox down")}

	b, err := newReserve(repo, gw, ob).Execute(context.Background(), reserveInput())
	require.NoError(t, err)
	require.NotNil(t, b)
	assert.Len(t, repo.bookings, 1)
}

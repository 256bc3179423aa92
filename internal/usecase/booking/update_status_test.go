package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VelourStudioApp/salon-scheduler/internal/audit"
	domain "github.com/VelourStudioApp/salon-scheduler/internal/domain/booking"
	"github.com/VelourStudioApp/salon-scheduler/internal/httperr"
	"github.com/VelourStudioApp/salon-scheduler/internal/models"
	"github.com/VelourStudioApp/salon-scheduler/internal/notify"
)

func seedBooking(repo *fakeRepo, status domain.Status) *models.Booking {
	b := &models.Booking{
		SalonID:   1,
		ClientID:  repo.client.ID,
		Client:    *repo.client,
		ServiceID: repo.service.ID,
		Service:   *repo.service,
		Date:      time.Now().UTC().AddDate(0, 0, 7),
		TimeOfDay: "14:00",
		Status:    string(status),
	}
	_ = repo.CreateBooking(context.Background(), b)
	return b
}

func newUpdateStatus(repo *fakeRepo, ob *fakeOutbox) *UpdateStatus {
	return NewUpdateStatus(repo, ob, audit.NewDispatcher(nil))
}

func TestUpdateStatus_Cancel(t *testing.T) {
	repo := newFakeRepo()
	b := seedBooking(repo, domain.StatusBooked)

	out, err := newUpdateStatus(repo, &fakeOutbox{}).Execute(
		context.Background(), 1, 5, b.ID, domain.StatusCancelled,
	)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), out.Status)
	require.NotNil(t, out.CancelledAt)
}

func TestUpdateStatus_InvalidTransition(t *testing.T) {
	repo := newFakeRepo()
	b := seedBooking(repo, domain.StatusCompleted)

	_, err := newUpdateStatus(repo, &fakeOutbox{}).Execute(
		context.Background(), 1, 5, b.ID, domain.StatusCancelled,
	)
	require.Error(t, err)
	assert.Equal(t, httperr.CodeInvalidState, httperr.BusinessCode(err))
}

func TestUpdateStatus_RestoreReclaimsSlot(t *testing.T) {
	repo := newFakeRepo()
	b := seedBooking(repo, domain.StatusCancelled)
	now := time.Now()
	b.CancelledAt = &now

	out, err := newUpdateStatus(repo, &fakeOutbox{}).Execute(
		context.Background(), 1, 5, b.ID, domain.StatusBooked,
	)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusBooked), out.Status)
	assert.Nil(t, out.CancelledAt)
	assert.Equal(t, 1, repo.txStarted, "restore must run the slot check transactionally")
}

func TestUpdateStatus_RestoreLosesTakenSlot(t *testing.T) {
	repo := newFakeRepo()
	b := seedBooking(repo, domain.StatusCancelled)
	repo.slotTaken = true

	_, err := newUpdateStatus(repo, &fakeOutbox{}).Execute(
		context.Background(), 1, 5, b.ID, domain.StatusBooked,
	)
	require.Error(t, err)
	assert.Equal(t, httperr.CodeSlotConflict, httperr.BusinessCode(err))
}

func TestUpdateStatus_CompleteSendsThankYou(t *testing.T) {
	repo := newFakeRepo()
	b := seedBooking(repo, domain.StatusInProgress)
	ob := &fakeOutbox{}

	out, err := newUpdateStatus(repo, ob).Execute(
		context.Background(), 1, 5, b.ID, domain.StatusCompleted,
	)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), out.Status)

	require.Len(t, ob.records, 2)
	for _, r := range ob.records {
		assert.Equal(t, notify.KindThankYou, r.Kind)
	}

	// a retried complete request must not enqueue twice; the fake
	// mirrors the ledger's uniqueness rule
	before := len(ob.records)
	b.Status = string(domain.StatusInProgress)
	_, err = newUpdateStatus(repo, ob).Execute(
		context.Background(), 1, 5, b.ID, domain.StatusCompleted,
	)
	require.NoError(t, err)
	assert.Equal(t, before, len(ob.records))
}

func TestAssignStylist(t *testing.T) {
	repo := newFakeRepo()
	repo.stylist = &models.User{ID: 7, SalonID: 1, Active: true}
	b := seedBooking(repo, domain.StatusBooked)

	uc := NewAssignStylist(repo, audit.NewDispatcher(nil))

	out, err := uc.Execute(context.Background(), 1, 5, b.ID, 7)
	require.NoError(t, err)
	require.NotNil(t, out.StylistID)
	assert.Equal(t, uint(7), *out.StylistID)
	assert.Equal(t, 1, repo.txStarted)
}

func TestAssignStylist_ConflictingSlot(t *testing.T) {
	repo := newFakeRepo()
	repo.stylist = &models.User{ID: 7, SalonID: 1, Active: true}
	repo.slotTaken = true
	b := seedBooking(repo, domain.StatusBooked)

	uc := NewAssignStylist(repo, audit.NewDispatcher(nil))

	_, err := uc.Execute(context.Background(), 1, 5, b.ID, 7)
	require.Error(t, err)
	assert.Equal(t, httperr.CodeSlotConflict, httperr.BusinessCode(err))
	assert.Nil(t, repo.bookings[b.ID].StylistID)
}

func TestAssignStylist_RejectsFinishedBookings(t *testing.T) {
	repo := newFakeRepo()
	repo.stylist = &models.User{ID: 7, SalonID: 1, Active: true}

	for _, status := range []domain.Status{domain.StatusCompleted, domain.StatusCancelled} {
		b := seedBooking(repo, status)
		uc := NewAssignStylist(repo, audit.NewDispatcher(nil))

		_, err := uc.Execute(context.Background(), 1, 5, b.ID, 7)
		require.Error(t, err, "status %s", status)
		assert.Equal(t, httperr.CodeInvalidState, httperr.BusinessCode(err))
	}
}

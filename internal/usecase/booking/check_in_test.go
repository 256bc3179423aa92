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
)

func TestCheckIn_WithinWindow(t *testing.T) {
	repo := newFakeRepo()
	b := seedBooking(repo, domain.StatusBooked)

	now := time.Now().UTC()
	b.Date = now
	b.TimeOfDay = now.Format("15:04")

	uc := NewCheckIn(repo, audit.NewDispatcher(nil))

	out, err := uc.Execute(context.Background(), 1, 5, b.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCheckedIn), out.Status)
	require.NotNil(t, out.CheckedInAt)
}

func TestCheckIn_TooEarly(t *testing.T) {
	repo := newFakeRepo()
	b := seedBooking(repo, domain.StatusBooked)

	later := time.Now().UTC().Add(2 * time.Hour)
	b.Date = later
	b.TimeOfDay = later.Format("15:04")

	uc := NewCheckIn(repo, audit.NewDispatcher(nil))

	_, err := uc.Execute(context.Background(), 1, 5, b.ID)
	require.Error(t, err)
	assert.Equal(t, httperr.CodeOutsideCheckInWindow, httperr.BusinessCode(err))
	assert.Equal(t, string(domain.StatusBooked), repo.bookings[b.ID].Status)
}

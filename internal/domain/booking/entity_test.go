package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VelourStudioApp/salon-scheduler/internal/httperr"
	"github.com/VelourStudioApp/salon-scheduler/internal/models"
)

func newBookingAt(date, timeOfDay string) *models.Booking {
	d, _ := time.Parse("2006-01-02", date)
	return &models.Booking{
		Date:      d,
		TimeOfDay: timeOfDay,
		Status:    string(StatusBooked),
	}
}

func TestTransition_SetsTimestamps(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

	b := newBookingAt("2026-03-10", "14:00")
	require.NoError(t, Transition(b, StatusCheckedIn, now))
	require.NotNil(t, b.CheckedInAt)
	assert.Equal(t, now, *b.CheckedInAt)

	require.NoError(t, Transition(b, StatusInProgress, now))
	require.NoError(t, Transition(b, StatusCompleted, now))
	require.NotNil(t, b.CompletedAt)
	assert.Equal(t, string(StatusCompleted), b.Status)
}

func TestTransition_RestoreClearsCancelledAt(t *testing.T) {
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

	b := newBookingAt("2026-03-10", "14:00")
	require.NoError(t, Cancel(b, now))
	require.NotNil(t, b.CancelledAt)

	require.NoError(t, Transition(b, StatusBooked, now.Add(time.Minute)))
	assert.Nil(t, b.CancelledAt)
	assert.Equal(t, string(StatusBooked), b.Status)
}

func TestCheckIn_Window(t *testing.T) {
	loc := time.UTC
	scheduled := time.Date(2026, 3, 10, 14, 0, 0, 0, loc)

	cases := []struct {
		name    string
		now     time.Time
		wantErr bool
	}{
		{"exactly on time", scheduled, false},
		{"30 minutes early", scheduled.Add(-30 * time.Minute), false},
		{"30 minutes late", scheduled.Add(30 * time.Minute), false},
		{"31 minutes early", scheduled.Add(-31 * time.Minute), true},
		{"31 minutes late", scheduled.Add(31 * time.Minute), true},
		{"an hour late", scheduled.Add(time.Hour), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := newBookingAt("2026-03-10", "14:00")
			err := CheckIn(b, loc, tc.now)

			if tc.wantErr {
				require.Error(t, err)
				assert.Equal(t, httperr.CodeOutsideCheckInWindow, httperr.BusinessCode(err))
				assert.Equal(t, string(StatusBooked), b.Status)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, string(StatusCheckedIn), b.Status)
			require.NotNil(t, b.CheckedInAt)
		})
	}
}

func TestCheckIn_RejectsBadTimeOfDay(t *testing.T) {
	b := newBookingAt("2026-03-10", "2pm")
	err := CheckIn(b, time.UTC, time.Now())
	require.Error(t, err)
	assert.Equal(t, httperr.CodeInvalidDateOrTime, httperr.BusinessCode(err))
}

func TestScheduledAt_UsesSalonLocation(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	b := newBookingAt("2026-03-10", "09:30")
	at, err := ScheduledAt(b, loc)
	require.NoError(t, err)

	assert.Equal(t, 9, at.Hour())
	assert.Equal(t, 30, at.Minute())
	assert.Equal(t, loc, at.Location())
}

package booking

import (
	"time"

	"github.com/VelourStudioApp/salon-scheduler/internal/httperr"
	"github.com/VelourStudioApp/salon-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// CheckInWindow bounds check-in around the scheduled instant.
const CheckInWindow = 30 * time.Minute

func Transition(b *models.Booking, to Status, now time.Time) error {
	if err := CanTransition(Status(b.Status), to); err != nil {
		return err
	}

	b.Status = string(to)
	switch to {
	case StatusCheckedIn:
		b.CheckedInAt = &now
	case StatusCancelled:
		b.CancelledAt = &now
	case StatusCompleted:
		b.CompletedAt = &now
	case StatusBooked:
		// restore from cancelled
		b.CancelledAt = nil
	}
	return nil
}

func Cancel(b *models.Booking, now time.Time) error {
	return Transition(b, StatusCancelled, now)
}

func Complete(b *models.Booking, now time.Time) error {
	return Transition(b, StatusCompleted, now)
}

// CheckIn transitions to checked_in only inside the ±30 minute
// window around the scheduled instant.
func CheckIn(b *models.Booking, loc *time.Location, now time.Time) error {
	scheduled, err := ScheduledAt(b, loc)
	if err != nil {
		return err
	}

	delta := now.Sub(scheduled)
	if delta < -CheckInWindow || delta > CheckInWindow {
		return httperr.ErrBusiness(httperr.CodeOutsideCheckInWindow)
	}

	return Transition(b, StatusCheckedIn, now)
}

// ScheduledAt combines the stored date and time-of-day into a single
// instant in the salon's location.
func ScheduledAt(b *models.Booking, loc *time.Location) (time.Time, error) {
	t, err := time.Parse("15:04", b.TimeOfDay)
	if err != nil {
		return time.Time{}, httperr.ErrBusiness(httperr.CodeInvalidDateOrTime)
	}

	return time.Date(
		b.Date.Year(), b.Date.Month(), b.Date.Day(),
		t.Hour(), t.Minute(), 0, 0,
		loc,
	), nil
}

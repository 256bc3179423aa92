package booking

import "github.com/VelourStudioApp/salon-scheduler/internal/httperr"

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusBooked     Status = "booked"
	StatusCheckedIn  Status = "checked_in"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

func InitialStatus() Status {
	return StatusBooked
}

// transitions is the full state machine. completed is terminal;
// cancelled can only be restored back to booked.
var transitions = map[Status][]Status{
	StatusBooked:     {StatusCheckedIn, StatusCancelled},
	StatusCheckedIn:  {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted},
	StatusCancelled:  {StatusBooked},
	StatusCompleted:  {},
}

func CanTransition(from, to Status) error {
	for _, next := range transitions[from] {
		if next == to {
			return nil
		}
	}
	return httperr.ErrBusiness(httperr.CodeInvalidState)
}

// CanCancel reports whether a booking in the given status may still
// be cancelled.
func CanCancel(current Status) error {
	return CanTransition(current, StatusCancelled)
}

func CanComplete(current Status) error {
	return CanTransition(current, StatusCompleted)
}

// CanReassign gates stylist changes. Cancelled and completed
// bookings keep whoever they had.
func CanReassign(current Status) error {
	if current == StatusCancelled || current == StatusCompleted {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
	return nil
}

// Blocks reports whether a booking in this status occupies its slot.
// Only cancellation frees the slot.
func Blocks(current Status) bool {
	return current != StatusCancelled
}

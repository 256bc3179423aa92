package audit

import "log"

type Event struct {
	SalonID  uint
	UserID   *uint
	Action   string
	Entity   string
	EntityID *uint
	Metadata any
}

// Actions recorded by the booking core. uncompensated_charge is the
// operator alert: a captured payment whose reservation failed and
// whose refund also failed.
const (
	ActionBookingReserved     = "booking_reserved"
	ActionBookingStatus       = "booking_status_changed"
	ActionBookingReassigned   = "booking_reassigned"
	ActionPaymentRecorded     = "payment_recorded"
	ActionPaymentRefunded     = "payment_refunded"
	ActionUncompensatedCharge = "uncompensated_charge"
)

type Dispatcher struct {
	logger *Logger
	queue  chan Event
}

func NewDispatcher(logger *Logger) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		queue:  make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if d.logger == nil {
			continue
		}
		if err := d.logger.Log(
			ev.SalonID,
			ev.UserID,
			ev.Action,
			ev.Entity,
			ev.EntityID,
			ev.Metadata,
		); err != nil {
			log.Println("audit error:", err)
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		// full queue must never block the API
		log.Println("audit queue full, dropping event")
	}
}

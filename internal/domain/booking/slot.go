package booking

import "time"

// SlotKey is the uniqueness predicate guarded by the reservation
// transaction: with a stylist assigned no two live bookings may share
// (stylist, date, time); without one, no client may hold two live
// bookings at the same (date, time).
type SlotKey struct {
	StylistID *uint
	ClientID  uint
	Date      time.Time
	TimeOfDay string
}

package models

import "time"

// Append-only notification ledger. Rows are handed to the external
// dispatcher and double as the reminder dedup source of truth; they
// are never mutated after creation.
type NotificationRecord struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BookingID uint   `gorm:"uniqueIndex:idx_notifications_booking_kind_channel" json:"booking_id"`
	Kind      string `gorm:"size:30;uniqueIndex:idx_notifications_booking_kind_channel" json:"kind"`
	Channel   string `gorm:"size:10;uniqueIndex:idx_notifications_booking_kind_channel" json:"channel"`

	Destination string `gorm:"size:100;not null" json:"destination"`
	Subject     string `gorm:"size:150" json:"subject"`
	Body        string `gorm:"type:text" json:"body"`

	CreatedAt time.Time `json:"created_at"`
}

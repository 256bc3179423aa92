package models

import "time"

// Guest customer record, matched by email. No login.
type Client struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	SalonID uint `json:"salon_id"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Phone string `gorm:"size:20" json:"phone"`
	Email string `gorm:"size:100;index" json:"email"`

	EmailOptOut bool `gorm:"default:false" json:"email_opt_out"`
	SMSOptOut   bool `gorm:"default:false" json:"sms_opt_out"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

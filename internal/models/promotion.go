package models

import "time"

type Promotion struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	SalonID uint `json:"salon_id"`

	Code          string `gorm:"size:50;not null" json:"code"`
	Description   string `gorm:"size:255" json:"description"`
	DiscountCents int64  `json:"discount_cents"`
	Active        bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

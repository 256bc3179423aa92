package models

import "time"

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	SalonID uint  `json:"salon_id"`
	Salon   Salon `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"salon"`

	ClientID uint   `json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	CategoryID uint `json:"category_id"`

	// Optional assigned stylist. Nil means "any stylist".
	StylistID *uint `json:"stylist_id"`
	Stylist   *User `gorm:"foreignKey:StylistID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"stylist"`

	PromotionID *uint      `json:"promotion_id"`
	Promotion   *Promotion `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"promotion"`

	// Calendar date and time-of-day are stored independently; the
	// slot key compares the time by hour and minute only.
	Date      time.Time `gorm:"type:date" json:"date"`
	TimeOfDay string    `gorm:"size:5" json:"time_of_day"`

	Status string `gorm:"size:20;default:'booked'" json:"status"`

	Notes       string     `gorm:"size:255" json:"notes"`
	CheckedInAt *time.Time `json:"checked_in_at"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	Payments []Payment `json:"payments"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

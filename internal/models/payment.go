package models

import "time"

type Payment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BookingID uint `gorm:"index" json:"booking_id"`

	AmountCents int64 `json:"amount_cents"`

	// Processor id, or a locally generated placeholder for cash.
	Reference string `gorm:"size:100;not null" json:"reference"`

	Status  string `gorm:"size:20;default:'pending'" json:"status"`
	Method  string `gorm:"size:20" json:"method"`
	Purpose string `gorm:"size:20" json:"purpose"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	PaymentStatusPending   = "pending"
	PaymentStatusSucceeded = "succeeded"
	PaymentStatusFailed    = "failed"

	PaymentMethodGateway = "gateway"
	PaymentMethodCash    = "cash"

	PaymentPurposeDeposit = "deposit"
	PaymentPurposeBalance = "balance"
)

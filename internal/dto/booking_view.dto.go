package dto

import (
	domain "github.com/VelourStudioApp/salon-scheduler/internal/domain/booking"
	"github.com/VelourStudioApp/salon-scheduler/internal/models"
)

// BookingView is the projected state returned by every booking
// operation: the stored row plus computed price and outstanding
// balance.
type BookingView struct {
	ID          uint   `json:"id"`
	Date        string `json:"date"`
	TimeOfDay   string `json:"time_of_day"`
	Status      string `json:"status"`
	Notes       string `json:"notes"`
	ClientName  string `json:"client_name"`
	ServiceName string `json:"service_name"`
	StylistName string `json:"stylist_name,omitempty"`

	PriceCents       int64 `json:"price_cents"`
	DepositCents     int64 `json:"deposit_cents"`
	OutstandingCents int64 `json:"outstanding_cents"`

	Payments []models.Payment `json:"payments"`
}

// NewBookingView requires Service, Client, Stylist, Promotion and
// Payments to be loaded on b.
func NewBookingView(salon *models.Salon, b *models.Booking) BookingView {
	price := domain.QuotedPrice(&b.Service, b.Stylist, b.Promotion)
	deposit := domain.DepositFor(salon, &b.Service)

	view := BookingView{
		ID:          b.ID,
		Date:        b.Date.Format("2006-01-02"),
		TimeOfDay:   b.TimeOfDay,
		Status:      b.Status,
		Notes:       b.Notes,
		ClientName:  b.Client.Name,
		ServiceName: b.Service.Name,

		PriceCents:       price,
		DepositCents:     deposit,
		OutstandingCents: domain.Outstanding(price, deposit, b.Payments),

		Payments: b.Payments,
	}

	if b.Stylist != nil {
		view.StylistName = b.Stylist.Name
	}

	return view
}

type BookingListDTO struct {
	ID          uint   `json:"id"`
	Date        string `json:"date"`
	TimeOfDay   string `json:"time_of_day"`
	Status      string `json:"status"`
	ClientName  string `json:"client_name"`
	ServiceName string `json:"service_name"`

	OutstandingCents int64 `json:"outstanding_cents"`
}

package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/VelourStudioApp/salon-scheduler/internal/httperr"
)

// writeBookingError maps business error codes coming out of the
// booking core onto HTTP responses. Unknown errors fall through as
// internal.
func writeBookingError(c *gin.Context, err error) {
	switch code := httperr.BusinessCode(err); code {
	case httperr.CodeSlotConflict:
		httperr.Conflict(c, code, "That time slot was just taken. Your deposit is being refunded; please pick another slot.")
	case httperr.CodePaymentNotCaptured:
		httperr.BadRequest(c, code, "The deposit payment has not been captured yet. Please complete payment and try again.")
	case httperr.CodeInvalidSelection:
		httperr.BadRequest(c, code, "Unknown service, stylist or promotion.")
	case httperr.CodeOutsideCheckInWindow:
		httperr.BadRequest(c, code, "Check-in is only possible within 30 minutes of the appointment.")
	case httperr.CodeInvalidState:
		httperr.BadRequest(c, code, "This booking cannot change to that status.")
	case httperr.CodeOutsideWorkingHours:
		httperr.BadRequest(c, code, "Outside the stylist's working hours.")
	case httperr.CodeTooSoon:
		httperr.BadRequest(c, code, "That time is too soon.")
	case httperr.CodeInvalidDateOrTime:
		httperr.BadRequest(c, code, "Invalid date or time.")
	case httperr.CodePaymentGatewayFailure:
		httperr.Write(c, 503, code, "The payment provider is unavailable. Please retry.")
	case "booking_not_found", "salon_not_found":
		httperr.NotFound(c, code, "Not found.")
	case "invalid_amount", "invalid_method", "nothing_outstanding":
		httperr.BadRequest(c, code, "Invalid payment request.")
	case "":
		httperr.Internal(c, "internal_error", "Unexpected error.")
	default:
		httperr.BadRequest(c, code, "Request rejected.")
	}
}

package httperr

import "errors"

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// BusinessCode extracts the code from a BusinessError, or "".
func BusinessCode(err error) string {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}

// Codes returned by the booking core.
const (
	CodePaymentNotCaptured    = "payment_not_captured"
	CodeInvalidSelection      = "invalid_selection"
	CodeSlotConflict          = "slot_conflict"
	CodeOutsideCheckInWindow  = "outside_check_in_window"
	CodeInvalidState          = "invalid_state"
	CodeOutsideWorkingHours   = "outside_working_hours"
	CodeTooSoon               = "too_soon"
	CodeInvalidDateOrTime     = "invalid_date_or_time"
	CodePaymentGatewayFailure = "payment_gateway_failure"
)

package confirm_payment

import "errors"

var (
	ErrInvalidRequest     = errors.New("invalid request")
	ErrBookingNotFound    = errors.New("booking not found")
	ErrAccessDenied       = errors.New("access denied")
	ErrAlreadyProcessed   = errors.New("booking already processed")
	ErrHoldExpired        = errors.New("payment hold has expired")
	ErrPaymentNotVerified = errors.New("payment not verified")
	ErrAmountMismatch     = errors.New("paid amount does not match advance amount")
	ErrSlotLost           = errors.New("slot is no longer available")
	ErrContention         = errors.New("too much contention, try again")
	ErrInternal           = errors.New("internal error")
)

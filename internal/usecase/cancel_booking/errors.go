package cancel_booking

import "errors"

var (
	ErrInvalidRequest       = errors.New("invalid request")
	ErrBookingNotFound      = errors.New("booking not found")
	ErrAccessDenied         = errors.New("access denied")
	ErrAlreadyProcessed     = errors.New("booking already processed")
	ErrCancellationWindow   = errors.New("cancellation window has passed")
	ErrContention           = errors.New("too much contention, try again")
	ErrInternal             = errors.New("internal error")
)

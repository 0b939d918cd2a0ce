package expire_booking

import "errors"

var (
	ErrInvalidRequest    = errors.New("invalid request")
	ErrBookingNotFound   = errors.New("booking not found")
	ErrAlreadyProcessed  = errors.New("booking already processed")
	ErrHoldNotYetExpired = errors.New("hold has not expired yet")
	ErrInternal          = errors.New("internal error")
)

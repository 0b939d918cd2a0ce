package bookings

import "errors"

var (
	ErrBookingNotFound = errors.New("bookings: booking not found")
	ErrInternal        = errors.New("bookings: internal error")
)

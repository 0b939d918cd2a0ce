package manage_slot

import "errors"

var (
	ErrInvalidRequest    = errors.New("invalid request")
	ErrVenueNotFound     = errors.New("venue not found")
	ErrAccessDenied      = errors.New("access denied")
	ErrSlotAlreadyBooked = errors.New("slot is already booked")
	ErrSlotHeldByOther   = errors.New("slot is held by a customer")
	ErrContention        = errors.New("too much contention, try again")
	ErrInternal          = errors.New("internal error")
)

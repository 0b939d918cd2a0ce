package create_physical_booking

import "errors"

var (
	ErrInvalidRequest    = errors.New("invalid request")
	ErrVenueNotFound     = errors.New("venue not found")
	ErrAccessDenied      = errors.New("access denied")
	ErrSlotNotOnGrid     = errors.New("slot is not on the venue grid")
	ErrSlotInPast        = errors.New("slot is in the past")
	ErrSlotBlocked       = errors.New("slot is blocked")
	ErrSlotAlreadyBooked = errors.New("slot is already booked")
	ErrSlotHeldByOther   = errors.New("slot is held by a customer")
	ErrContention        = errors.New("too much contention, try again")
	ErrInternal          = errors.New("internal error")
)

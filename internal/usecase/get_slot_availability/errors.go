package get_slot_availability

import "errors"

var (
	ErrInvalidVenueID   = errors.New("invalid venue id")
	ErrInvalidDateRange = errors.New("invalid date range")
	ErrVenueNotFound    = errors.New("venue not found")
	ErrInternal         = errors.New("internal error")
)

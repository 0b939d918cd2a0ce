package venueconfig

import "errors"

var (
	ErrVenueNotFound      = errors.New("venueconfig: venue state not found")
	ErrVenueAlreadyExists = errors.New("venueconfig: venue state already exists")
	ErrInvalidConfig      = errors.New("venueconfig: invalid slot config")
	ErrContention         = errors.New("venueconfig: too much contention on venue state")
	ErrInternal           = errors.New("venueconfig: internal error")
)

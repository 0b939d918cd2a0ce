package get_slot_availability

import (
	"fmt"
	"time"

	"github.com/m04kA/SVB-ReservationService/internal/domain"
)

func validateRequest(req *Request) error {
	if req.VenueID <= 0 {
		return ErrInvalidVenueID
	}
	if err := req.FromDate.Validate(); err != nil {
		return fmt.Errorf("%w: fromDate: %v", ErrInvalidDateRange, err)
	}
	if err := req.ToDate.Validate(); err != nil {
		return fmt.Errorf("%w: toDate: %v", ErrInvalidDateRange, err)
	}
	if req.ToDate.IsBefore(req.FromDate) {
		return fmt.Errorf("%w: toDate is before fromDate", ErrInvalidDateRange)
	}

	from, err := req.FromDate.Time(time.UTC)
	if err != nil {
		return fmt.Errorf("%w: fromDate: %v", ErrInvalidDateRange, err)
	}
	to, err := req.ToDate.Time(time.UTC)
	if err != nil {
		return fmt.Errorf("%w: toDate: %v", ErrInvalidDateRange, err)
	}
	if int(to.Sub(from).Hours()/24) > domain.MaxProjectionRangeDays {
		return fmt.Errorf("%w: range exceeds %d days", ErrInvalidDateRange, domain.MaxProjectionRangeDays)
	}
	return nil
}

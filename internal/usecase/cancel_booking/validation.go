package cancel_booking

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SVB-ReservationService/internal/domain"
)

func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: user id must be positive", ErrInvalidRequest)
	}
	if req.BookingID == uuid.Nil {
		return fmt.Errorf("%w: booking id must not be empty", ErrInvalidRequest)
	}
	if req.Reason != nil && len(*req.Reason) > domain.MaxBlockReasonLength {
		return fmt.Errorf("%w: reason is too long", ErrInvalidRequest)
	}
	return nil
}

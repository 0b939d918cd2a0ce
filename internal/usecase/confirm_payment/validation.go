package confirm_payment

import (
	"fmt"

	"github.com/google/uuid"
)

func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: user id must be positive", ErrInvalidRequest)
	}
	if req.BookingID == uuid.Nil {
		return fmt.Errorf("%w: booking id must not be empty", ErrInvalidRequest)
	}
	if req.TransactionID == "" {
		return fmt.Errorf("%w: transaction id must not be empty", ErrInvalidRequest)
	}
	return nil
}

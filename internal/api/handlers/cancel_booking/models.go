package cancel_booking

import (
	"time"

	cancelBooking "github.com/m04kA/SVB-ReservationService/internal/usecase/cancel_booking"
)

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// CancelBookingResponse HTTP response model
type CancelBookingResponse struct {
	ID          string `json:"id"`
	VenueID     int64  `json:"venueId"`
	Date        string `json:"date"`
	StartTime   string `json:"startTime"`
	Status      string `json:"status"`
	CancelledAt string `json:"cancelledAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelBooking.Response) *CancelBookingResponse {
	return &CancelBookingResponse{
		ID:          resp.ID.String(),
		VenueID:     resp.VenueID,
		Date:        resp.Date.String(),
		StartTime:   resp.StartTime.String(),
		Status:      resp.Status,
		CancelledAt: resp.CancelledAt.Format(time.RFC3339),
	}
}

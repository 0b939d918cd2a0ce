package create_booking

import (
	"time"

	"github.com/shopspring/decimal"

	createBooking "github.com/m04kA/SVB-ReservationService/internal/usecase/create_booking"
	"github.com/m04kA/SVB-ReservationService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	VenueID   int64  `json:"venueId"`
	Date      string `json:"date"`      // "2026-09-15"
	StartTime string `json:"startTime"` // "10:00"
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID            string          `json:"id"`
	VenueID       int64           `json:"venueId"`
	UserID        int64           `json:"userId"`
	Date          string          `json:"date"`
	StartTime     string          `json:"startTime"`
	EndTime       string          `json:"endTime"`
	Status        string          `json:"status"`
	Amount        decimal.Decimal `json:"amount"`
	AdvanceAmount decimal.Decimal `json:"advanceAmount"`
	DueAmount     decimal.Decimal `json:"dueAmount"`
	HoldExpiresAt string          `json:"holdExpiresAt"`
	CreatedAt     string          `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*createBooking.Request, error) {
	date, err := types.NewDateStringFromString(r.Date)
	if err != nil {
		return nil, err
	}
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		UserID:    userID,
		VenueID:   r.VenueID,
		Date:      date,
		StartTime: startTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:            resp.ID.String(),
		VenueID:       resp.VenueID,
		UserID:        resp.UserID,
		Date:          resp.Date.String(),
		StartTime:     resp.StartTime.String(),
		EndTime:       resp.EndTime.String(),
		Status:        resp.Status,
		Amount:        resp.Amount,
		AdvanceAmount: resp.AdvanceAmount,
		DueAmount:     resp.DueAmount,
		HoldExpiresAt: resp.HoldExpiresAt.Format(time.RFC3339),
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
	}
}

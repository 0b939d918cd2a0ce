package create_physical_booking

import (
	"time"

	"github.com/shopspring/decimal"

	createPhysical "github.com/m04kA/SVB-ReservationService/internal/usecase/create_physical_booking"
	"github.com/m04kA/SVB-ReservationService/pkg/types"
)

// CreatePhysicalBookingRequest HTTP request model
type CreatePhysicalBookingRequest struct {
	Date          string           `json:"date"`      // "2026-09-15"
	StartTime     string           `json:"startTime"` // "10:00"
	CustomerName  string           `json:"customerName"`
	CustomerPhone *string          `json:"customerPhone,omitempty"`
	Amount        *decimal.Decimal `json:"amount,omitempty"`
}

// PhysicalBookingResponse HTTP response model
type PhysicalBookingResponse struct {
	ID            string          `json:"id"`
	VenueID       int64           `json:"venueId"`
	Date          string          `json:"date"`
	StartTime     string          `json:"startTime"`
	EndTime       string          `json:"endTime"`
	Status        string          `json:"status"`
	BookingType   string          `json:"bookingType"`
	Amount        decimal.Decimal `json:"amount"`
	CustomerName  string          `json:"customerName"`
	CustomerPhone *string         `json:"customerPhone,omitempty"`
	CreatedAt     string          `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreatePhysicalBookingRequest) ToUseCaseRequest(managerID, venueID int64) (*createPhysical.Request, error) {
	date, err := types.NewDateStringFromString(r.Date)
	if err != nil {
		return nil, err
	}
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createPhysical.Request{
		ManagerID:     managerID,
		VenueID:       venueID,
		Date:          date,
		StartTime:     startTime,
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		Amount:        r.Amount,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createPhysical.Response) *PhysicalBookingResponse {
	return &PhysicalBookingResponse{
		ID:            resp.ID.String(),
		VenueID:       resp.VenueID,
		Date:          resp.Date.String(),
		StartTime:     resp.StartTime.String(),
		EndTime:       resp.EndTime.String(),
		Status:        resp.Status,
		BookingType:   resp.BookingType,
		Amount:        resp.Amount,
		CustomerName:  resp.CustomerName,
		CustomerPhone: resp.CustomerPhone,
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
	}
}

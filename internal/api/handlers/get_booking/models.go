package get_booking

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SVB-ReservationService/internal/domain"
)

// BookingResponse HTTP response model
type BookingResponse struct {
	ID                   string          `json:"id"`
	VenueID              int64           `json:"venueId"`
	UserID               int64           `json:"userId"`
	Date                 string          `json:"date"`
	StartTime            string          `json:"startTime"`
	EndTime              string          `json:"endTime"`
	BookingType          string          `json:"bookingType"`
	Status               string          `json:"status"`
	Amount               decimal.Decimal `json:"amount"`
	AdvanceAmount        decimal.Decimal `json:"advanceAmount"`
	DueAmount            decimal.Decimal `json:"dueAmount"`
	HoldExpiresAt        *string         `json:"holdExpiresAt,omitempty"`
	PaymentTransactionID *string         `json:"paymentTransactionId,omitempty"`
	PaymentTimestamp     *string         `json:"paymentTimestamp,omitempty"`
	CancellationReason   *string         `json:"cancellationReason,omitempty"`
	CancelledAt          *string         `json:"cancelledAt,omitempty"`
	ExpiredAt            *string         `json:"expiredAt,omitempty"`
	CustomerName         *string         `json:"customerName,omitempty"`
	CustomerPhone        *string         `json:"customerPhone,omitempty"`
	CreatedAt            string          `json:"createdAt"`
	UpdatedAt            string          `json:"updatedAt"`
}

// FromDomainBooking конвертирует доменное бронирование в HTTP response
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	return &BookingResponse{
		ID:                   b.ID.String(),
		VenueID:              b.VenueID,
		UserID:               b.UserID,
		Date:                 b.Date.String(),
		StartTime:            b.StartTime.String(),
		EndTime:              b.EndTime.String(),
		BookingType:          string(b.BookingType),
		Status:               string(b.Status),
		Amount:               b.Amount,
		AdvanceAmount:        b.AdvanceAmount,
		DueAmount:            b.DueAmount,
		HoldExpiresAt:        formatTimePtr(b.HoldExpiresAt),
		PaymentTransactionID: b.PaymentTransactionID,
		PaymentTimestamp:     formatTimePtr(b.PaymentTimestamp),
		CancellationReason:   b.CancellationReason,
		CancelledAt:          formatTimePtr(b.CancelledAt),
		ExpiredAt:            formatTimePtr(b.ExpiredAt),
		CustomerName:         b.CustomerName,
		CustomerPhone:        b.CustomerPhone,
		CreatedAt:            b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:            b.UpdatedAt.Format(time.RFC3339),
	}
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

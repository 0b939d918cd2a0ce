package confirm_payment

import (
	"time"

	"github.com/shopspring/decimal"

	confirmPayment "github.com/m04kA/SVB-ReservationService/internal/usecase/confirm_payment"
)

// ConfirmPaymentRequest HTTP request model
type ConfirmPaymentRequest struct {
	TransactionID string `json:"transactionId"`
}

// ConfirmPaymentResponse HTTP response model
type ConfirmPaymentResponse struct {
	ID               string          `json:"id"`
	VenueID          int64           `json:"venueId"`
	Date             string          `json:"date"`
	StartTime        string          `json:"startTime"`
	Status           string          `json:"status"`
	Amount           decimal.Decimal `json:"amount"`
	AdvanceAmount    decimal.Decimal `json:"advanceAmount"`
	DueAmount        decimal.Decimal `json:"dueAmount"`
	PaymentTimestamp string          `json:"paymentTimestamp"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *confirmPayment.Response) *ConfirmPaymentResponse {
	return &ConfirmPaymentResponse{
		ID:               resp.ID.String(),
		VenueID:          resp.VenueID,
		Date:             resp.Date.String(),
		StartTime:        resp.StartTime.String(),
		Status:           resp.Status,
		Amount:           resp.Amount,
		AdvanceAmount:    resp.AdvanceAmount,
		DueAmount:        resp.DueAmount,
		PaymentTimestamp: resp.PaymentTimestamp.Format(time.RFC3339),
	}
}

package confirm_payment

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SVB-ReservationService/pkg/types"
)

// Request модель запроса подтверждения оплаты бронирования
type Request struct {
	UserID        int64     // ID пользователя из контекста авторизации
	BookingID     uuid.UUID // ID бронирования
	TransactionID string    // ID транзакции в платёжном шлюзе
}

// Response модель ответа с подтверждённым бронированием
type Response struct {
	ID               uuid.UUID        `json:"id"`
	VenueID          int64            `json:"venueId"`
	Date             types.DateString `json:"date"`
	StartTime        types.TimeString `json:"startTime"`
	Status           string           `json:"status"`
	Amount           decimal.Decimal  `json:"amount"`
	AdvanceAmount    decimal.Decimal  `json:"advanceAmount"`
	DueAmount        decimal.Decimal  `json:"dueAmount"`
	PaymentTimestamp time.Time        `json:"paymentTimestamp"`
}

package create_booking

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SVB-ReservationService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID    int64            // ID пользователя из контекста авторизации
	VenueID   int64            // ID площадки
	Date      types.DateString // Дата слота
	StartTime types.TimeString // Время начала слота
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID            uuid.UUID        `json:"id"`
	VenueID       int64            `json:"venueId"`
	UserID        int64            `json:"userId"`
	Date          types.DateString `json:"date"`
	StartTime     types.TimeString `json:"startTime"`
	EndTime       types.TimeString `json:"endTime"`
	Status        string           `json:"status"`
	Amount        decimal.Decimal  `json:"amount"`
	AdvanceAmount decimal.Decimal  `json:"advanceAmount"`
	DueAmount     decimal.Decimal  `json:"dueAmount"`
	HoldExpiresAt time.Time        `json:"holdExpiresAt"`
	CreatedAt     time.Time        `json:"createdAt"`
}

package cancel_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SVB-ReservationService/pkg/types"
)

// Request модель запроса отмены бронирования
type Request struct {
	UserID    int64     // ID пользователя из контекста авторизации
	BookingID uuid.UUID // ID бронирования
	Reason    *string   // Причина отмены (опционально)
}

// Response модель ответа с отменённым бронированием
type Response struct {
	ID          uuid.UUID        `json:"id"`
	VenueID     int64            `json:"venueId"`
	Date        types.DateString `json:"date"`
	StartTime   types.TimeString `json:"startTime"`
	Status      string           `json:"status"`
	CancelledAt time.Time        `json:"cancelledAt"`
}

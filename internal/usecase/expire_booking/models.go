package expire_booking

import (
	"time"

	"github.com/google/uuid"
)

// Request модель запроса перевода бронирования в expired
type Request struct {
	BookingID uuid.UUID // ID бронирования
}

// Response модель ответа
type Response struct {
	ID        uuid.UUID `json:"id"`
	Status    string    `json:"status"`
	ExpiredAt time.Time `json:"expiredAt"`
}

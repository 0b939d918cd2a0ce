package create_physical_booking

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SVB-ReservationService/pkg/types"
)

// Request модель запроса на создание бронирования через стойку администратора
type Request struct {
	ManagerID     int64            // ID менеджера из контекста авторизации
	VenueID       int64            // ID площадки
	Date          types.DateString // Дата слота
	StartTime     types.TimeString // Время начала слота
	CustomerName  string           // Имя клиента
	CustomerPhone *string          // Телефон клиента (опционально)
	Amount        *decimal.Decimal // Сумма, если оплата принята на месте (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID            uuid.UUID        `json:"id"`
	VenueID       int64            `json:"venueId"`
	Date          types.DateString `json:"date"`
	StartTime     types.TimeString `json:"startTime"`
	EndTime       types.TimeString `json:"endTime"`
	Status        string           `json:"status"`
	BookingType   string           `json:"bookingType"`
	Amount        decimal.Decimal  `json:"amount"`
	CustomerName  string           `json:"customerName"`
	CustomerPhone *string          `json:"customerPhone,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
}

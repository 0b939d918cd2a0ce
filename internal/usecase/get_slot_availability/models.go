package get_slot_availability

import (
	"github.com/m04kA/SVB-ReservationService/internal/domain"
	"github.com/m04kA/SVB-ReservationService/pkg/types"
)

// Request модель запроса проекции доступности слотов
type Request struct {
	VenueID  int64            // ID площадки
	FromDate types.DateString // Начало диапазона (включительно)
	ToDate   types.DateString // Конец диапазона (включительно)
}

// Response модель ответа со слотами диапазона
type Response struct {
	VenueID  int64            `json:"venueId"`
	FromDate types.DateString `json:"fromDate"`
	ToDate   types.DateString `json:"toDate"`
	Slots    []Slot           `json:"slots"`
}

// Slot одна ячейка проекции
type Slot struct {
	Date            types.DateString  `json:"date"`
	StartTime       types.TimeString  `json:"startTime"`
	DurationMinutes int               `json:"durationMinutes"`
	Status          domain.SlotStatus `json:"status"`
}

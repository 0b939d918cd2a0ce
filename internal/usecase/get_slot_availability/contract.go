package get_slot_availability

import (
	"context"
	"time"

	"github.com/m04kA/SVB-ReservationService/internal/domain"
)

// VenueStateRepository интерфейс хранилища состояния слотов
type VenueStateRepository interface {
	Get(ctx context.Context, venueID int64) (*domain.VenueSlotState, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

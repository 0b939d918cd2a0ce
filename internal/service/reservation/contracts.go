package reservation

import (
	"context"
	"time"

	"github.com/m04kA/SVB-ReservationService/internal/domain"
)

// VenueStateRepository - доступ к агрегатам состояния слотов площадок.
type VenueStateRepository interface {
	Get(ctx context.Context, venueID int64) (*domain.VenueSlotState, error)
	Save(ctx context.Context, state *domain.VenueSlotState) error
}

type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Metrics - бизнес-метрики движка резервирования.
type Metrics interface {
	HoldPlaced()
	HoldReleased()
	BookingCommitted(bookingType string)
	ConflictRejected(reason string)
	RetryOccurred(operation string)
}

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

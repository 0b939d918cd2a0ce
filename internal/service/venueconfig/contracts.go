package venueconfig

import (
	"context"
	"time"

	"github.com/m04kA/SVB-ReservationService/internal/domain"
)

type VenueStateRepository interface {
	Create(ctx context.Context, state *domain.VenueSlotState) error
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

type Logger interface {
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

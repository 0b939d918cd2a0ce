package sweep_expired_holds

import (
	"context"
	"time"
)

// VenueStateRepository интерфейс хранилища состояния слотов
type VenueStateRepository interface {
	ListVenueIDs(ctx context.Context) ([]int64, error)
	PurgeExpiredHolds(ctx context.Context, venueID int64, now time.Time) (int, error)
}

// Metrics интерфейс метрик чистильщика
type Metrics interface {
	SweepRun(trigger string)
	SweepHoldsRemoved(count int)
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

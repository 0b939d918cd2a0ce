package create_physical_booking

import (
	"context"
	"time"

	"github.com/m04kA/SVB-ReservationService/internal/domain"
	"github.com/m04kA/SVB-ReservationService/internal/integrations/identityservice"
	"github.com/m04kA/SVB-ReservationService/pkg/types"
)

// VenueStateRepository интерфейс хранилища состояния слотов
type VenueStateRepository interface {
	Get(ctx context.Context, venueID int64) (*domain.VenueSlotState, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error)
}

// ReservationEngine интерфейс движка резервирования слотов
type ReservationEngine interface {
	ConfirmBooking(ctx context.Context, venueID int64, details domain.BookingEntry) error
	RemoveBooking(ctx context.Context, venueID int64, date types.DateString, startTime types.TimeString) error
}

// IdentityServiceClient интерфейс клиента сервиса пользователей
type IdentityServiceClient interface {
	GetActor(ctx context.Context, userID int64) (*identityservice.Actor, error)
}

// TransactionManager интерфейс менеджера транзакций
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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

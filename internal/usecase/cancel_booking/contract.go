package cancel_booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SVB-ReservationService/internal/domain"
	"github.com/m04kA/SVB-ReservationService/internal/integrations/identityservice"
	"github.com/m04kA/SVB-ReservationService/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	Cancel(ctx context.Context, id uuid.UUID, status domain.BookingStatus, reason *string) error
}

// VenueStateRepository интерфейс хранилища состояния слотов
type VenueStateRepository interface {
	Get(ctx context.Context, venueID int64) (*domain.VenueSlotState, error)
}

// ReservationEngine интерфейс движка резервирования слотов
type ReservationEngine interface {
	RemoveBooking(ctx context.Context, venueID int64, date types.DateString, startTime types.TimeString) error
	ReleaseHold(ctx context.Context, venueID int64, date types.DateString, startTime types.TimeString) error
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

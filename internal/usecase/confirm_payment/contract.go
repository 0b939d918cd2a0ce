package confirm_payment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SVB-ReservationService/internal/domain"
	"github.com/m04kA/SVB-ReservationService/internal/integrations/paymentgateway"
	"github.com/m04kA/SVB-ReservationService/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	MarkConfirmed(ctx context.Context, id uuid.UUID, transactionID string, paidAt time.Time) error
}

// ReservationEngine интерфейс движка резервирования слотов
type ReservationEngine interface {
	ConfirmBooking(ctx context.Context, venueID int64, details domain.BookingEntry) error
	RemoveBooking(ctx context.Context, venueID int64, date types.DateString, startTime types.TimeString) error
}

// PaymentGatewayClient интерфейс клиента платёжного шлюза
type PaymentGatewayClient interface {
	VerifyPayment(ctx context.Context, transactionID string) (*paymentgateway.VerificationResult, error)
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

package manage_slot

import (
	"context"

	"github.com/m04kA/SVB-ReservationService/internal/integrations/identityservice"
	"github.com/m04kA/SVB-ReservationService/pkg/types"
)

// ReservationEngine интерфейс движка резервирования слотов
type ReservationEngine interface {
	BlockSlot(ctx context.Context, venueID int64, date types.DateString, startTime types.TimeString, reason *string) error
	UnblockSlot(ctx context.Context, venueID int64, date types.DateString, startTime types.TimeString) error
	ReserveSlot(ctx context.Context, venueID int64, date types.DateString, startTime types.TimeString, note *string) error
	UnreserveSlot(ctx context.Context, venueID int64, date types.DateString, startTime types.TimeString) error
}

// IdentityServiceClient интерфейс клиента сервиса пользователей
type IdentityServiceClient interface {
	GetActor(ctx context.Context, userID int64) (*identityservice.Actor, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

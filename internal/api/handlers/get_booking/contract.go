package get_booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SVB-ReservationService/internal/domain"
	"github.com/m04kA/SVB-ReservationService/internal/integrations/identityservice"
)

type BookingService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
}

type IdentityServiceClient interface {
	GetActor(ctx context.Context, userID int64) (*identityservice.Actor, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package bookings

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SVB-ReservationService/internal/domain"
)

type BookingRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error)
	GetByVenueWithFilter(ctx context.Context, filter domain.VenueBookingsFilter) ([]*domain.Booking, error)
}

type Logger interface {
	Info(format string, args ...any)
	Error(format string, args ...any)
}

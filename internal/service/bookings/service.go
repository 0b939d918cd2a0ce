package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SVB-ReservationService/internal/domain"
	"github.com/m04kA/SVB-ReservationService/internal/infra/storage/booking"
)

// Service - операции чтения бронирований. Проверки доступа выполняют юзкейсы.
type Service struct {
	repo   BookingRepository
	logger Logger
}

func New(repo BookingRepository, logger Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, booking.ErrBookingNotFound) {
			return nil, fmt.Errorf("%w: GetByID - booking %s: %v", ErrBookingNotFound, id, err)
		}
		return nil, fmt.Errorf("%w: GetByID - booking %s: %v", ErrInternal, id, err)
	}
	return b, nil
}

func (s *Service) GetUserBookings(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	list, err := s.repo.GetByUserID(ctx, userID, status)
	if err != nil {
		return nil, fmt.Errorf("%w: GetUserBookings - user %d: %v", ErrInternal, userID, err)
	}
	return list, nil
}

func (s *Service) GetVenueBookings(ctx context.Context, filter domain.VenueBookingsFilter) ([]*domain.Booking, error) {
	list, err := s.repo.GetByVenueWithFilter(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: GetVenueBookings - venue %d: %v", ErrInternal, filter.VenueID, err)
	}
	return list, nil
}

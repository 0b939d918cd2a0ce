package expire_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SVB-ReservationService/internal/domain"
	bookingRepo "github.com/m04kA/SVB-ReservationService/internal/infra/storage/booking"
	"github.com/m04kA/SVB-ReservationService/internal/service/reservation"
)

// UseCase use case перевода неоплаченного бронирования в expired
type UseCase struct {
	bookingRepo  BookingRepository
	engine       ReservationEngine
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	engine ReservationEngine,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		engine:       engine,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute переводит бронирование в expired. Срок удержания проверяется по
// серверным часам: пока TTL не истёк, операция отклоняется независимо от
// того, что утверждает клиент.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ExpireBooking: booking=%s", req.BookingID)

	if req.BookingID == uuid.Nil {
		return nil, fmt.Errorf("%w: booking id must not be empty", ErrInvalidRequest)
	}

	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("ExpireBooking: booking %s not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("ExpireBooking: failed to get booking %s: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	if !booking.IsPendingPayment() {
		uc.logger.Warn("ExpireBooking: booking %s has status %s", req.BookingID, booking.Status)
		return nil, ErrAlreadyProcessed
	}

	now := uc.timeProvider.Now()
	if !booking.HoldExpired(now) {
		uc.logger.Warn("ExpireBooking: hold for booking %s is still active until %s", req.BookingID, booking.HoldExpiresAt)
		return nil, ErrHoldNotYetExpired
	}

	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		return uc.bookingRepo.MarkExpired(txCtx, booking.ID)
	})
	if err != nil {
		if errors.Is(err, bookingRepo.ErrStatusConflict) {
			uc.logger.Warn("ExpireBooking: booking %s changed status concurrently", booking.ID)
			return nil, ErrAlreadyProcessed
		}
		uc.logger.Error("ExpireBooking: failed to mark booking %s expired: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: failed to mark booking expired: %v", ErrInternal, err)
	}

	// Удержание истекло и так, но физическую запись лучше не оставлять
	if err := uc.engine.ReleaseHold(ctx, booking.VenueID, booking.Date, booking.StartTime); err != nil {
		if !errors.Is(err, reservation.ErrVenueNotFound) {
			uc.logger.Error("ExpireBooking: failed to release hold for booking %s: %v", booking.ID, err)
		}
	}

	uc.logger.Info("ExpireBooking: booking %s expired", booking.ID)
	return &Response{
		ID:        booking.ID,
		Status:    string(domain.StatusExpired),
		ExpiredAt: now,
	}, nil
}

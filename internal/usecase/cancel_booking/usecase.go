package cancel_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SVB-ReservationService/internal/domain"
	bookingRepo "github.com/m04kA/SVB-ReservationService/internal/infra/storage/booking"
	"github.com/m04kA/SVB-ReservationService/internal/infra/storage/venuestate"
	identityClient "github.com/m04kA/SVB-ReservationService/internal/integrations/identityservice"
	"github.com/m04kA/SVB-ReservationService/internal/service/reservation"
)

// UseCase use case отмены бронирования
type UseCase struct {
	bookingRepo    BookingRepository
	stateRepo      VenueStateRepository
	engine         ReservationEngine
	identityClient IdentityServiceClient
	txManager      TransactionManager
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	stateRepo VenueStateRepository,
	engine ReservationEngine,
	identityClient IdentityServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:    bookingRepo,
		stateRepo:      stateRepo,
		engine:         engine,
		identityClient: identityClient,
		txManager:      txManager,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute отменяет бронирование. Владелец связан окном отмены площадки,
// менеджер площадки может отменить в любой момент. Статус записи и
// освобождение слота фиксируются в одной транзакции: при сбое снятия
// слота отмена откатывается, и повтор запроса доводит её до конца.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelBooking: user=%d, booking=%s", req.UserID, req.BookingID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CancelBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем бронирование
	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("CancelBooking: booking %s not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("CancelBooking: failed to get booking %s: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	// 3. Определяем, кто отменяет: владелец или менеджер площадки
	byManager, err := uc.resolveActor(ctx, booking, req.UserID)
	if err != nil {
		return nil, err
	}

	// 4. Проверяем статус
	if !booking.CanBeCancelled() {
		uc.logger.Warn("CancelBooking: booking %s has status %s", req.BookingID, booking.Status)
		return nil, ErrAlreadyProcessed
	}

	// 5. Окно отмены: владелец не может отменить ближе к началу слота,
	// чем разрешает конфигурация площадки. Менеджер окном не связан.
	state, err := uc.stateRepo.Get(ctx, booking.VenueID)
	if err != nil && !errors.Is(err, venuestate.ErrVenueStateNotFound) {
		uc.logger.Error("CancelBooking: failed to get state for venue %d: %v", booking.VenueID, err)
		return nil, fmt.Errorf("%w: failed to get venue state: %v", ErrInternal, err)
	}
	now := uc.timeProvider.Now()
	if !byManager && state != nil {
		if err := uc.checkCancellationWindow(booking, &state.Config, now); err != nil {
			return nil, err
		}
	}

	// 6. Фиксируем отмену и освобождаем слот в одной транзакции: запись
	// бронирования и состояние площадки не должны разойтись по статусу
	status := domain.StatusCancelled
	if byManager {
		status = domain.StatusCancelledByManager
	}
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := uc.bookingRepo.Cancel(txCtx, booking.ID, status, req.Reason); err != nil {
			return err
		}
		return uc.releaseSlot(txCtx, booking)
	})
	if err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrStatusConflict):
			uc.logger.Warn("CancelBooking: booking %s changed status concurrently", booking.ID)
			return nil, ErrAlreadyProcessed
		case errors.Is(err, ErrContention), errors.Is(err, ErrInternal):
			return nil, err
		default:
			uc.logger.Error("CancelBooking: failed to cancel booking %s: %v", booking.ID, err)
			return nil, fmt.Errorf("%w: failed to cancel booking: %v", ErrInternal, err)
		}
	}

	uc.logger.Info("CancelBooking: booking %s cancelled with status %s", booking.ID, status)
	return &Response{
		ID:          booking.ID,
		VenueID:     booking.VenueID,
		Date:        booking.Date,
		StartTime:   booking.StartTime,
		Status:      string(status),
		CancelledAt: now,
	}, nil
}

// resolveActor возвращает true, если отменяет менеджер площадки
func (uc *UseCase) resolveActor(ctx context.Context, booking *domain.Booking, userID int64) (bool, error) {
	if booking.UserID == userID {
		return false, nil
	}

	actor, err := uc.identityClient.GetActor(ctx, userID)
	if err != nil {
		if errors.Is(err, identityClient.ErrActorNotFound) {
			uc.logger.Warn("CancelBooking: actor %d not found", userID)
			return false, ErrAccessDenied
		}
		uc.logger.Error("CancelBooking: failed to get actor %d: %v", userID, err)
		return false, fmt.Errorf("%w: failed to get actor: %v", ErrInternal, err)
	}
	if !actor.ManagesVenue(booking.VenueID) {
		uc.logger.Warn("CancelBooking: user %d does not manage venue %d", userID, booking.VenueID)
		return false, ErrAccessDenied
	}
	return true, nil
}

func (uc *UseCase) checkCancellationWindow(booking *domain.Booking, cfg *domain.SlotConfig, now time.Time) error {
	slotStart, err := booking.StartDateTime(cfg.Location())
	if err != nil {
		uc.logger.Error("CancelBooking: failed to compute slot start for booking %s: %v", booking.ID, err)
		return fmt.Errorf("%w: failed to compute slot start: %v", ErrInternal, err)
	}

	limit := time.Duration(cfg.CancellationHoursLimit) * time.Hour
	if slotStart.Sub(now) < limit {
		uc.logger.Warn("CancelBooking: booking %s is within the %d hour cancellation window", booking.ID, cfg.CancellationHoursLimit)
		return fmt.Errorf("%w: less than %d hours before slot start", ErrCancellationWindow, cfg.CancellationHoursLimit)
	}
	return nil
}

func (uc *UseCase) releaseSlot(ctx context.Context, booking *domain.Booking) error {
	err := uc.engine.RemoveBooking(ctx, booking.VenueID, booking.Date, booking.StartTime)
	if err == nil {
		return nil
	}
	if errors.Is(err, reservation.ErrContention) {
		uc.logger.Warn("CancelBooking: contention while releasing slot for booking %s", booking.ID)
		return ErrContention
	}
	if errors.Is(err, reservation.ErrVenueNotFound) {
		// Состояние площадки удалено, освобождать нечего
		return nil
	}
	uc.logger.Error("CancelBooking: failed to release slot for booking %s: %v", booking.ID, err)
	return fmt.Errorf("%w: failed to release slot: %v", ErrInternal, err)
}

package reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SVB-ReservationService/internal/domain"
	"github.com/m04kA/SVB-ReservationService/internal/infra/storage/venuestate"
	"github.com/m04kA/SVB-ReservationService/pkg/types"
)

// MaxWriteAttempts - число попыток применить изменение поверх конкурентных записей.
const MaxWriteAttempts = 3

const (
	conflictReasonBlocked       = "blocked"
	conflictReasonAlreadyBooked = "already_booked"
	conflictReasonHeldByOther   = "held_by_other"
	conflictReasonContention    = "contention"
)

// Service - единственная точка изменения состояния слотов площадки.
// Каждая операция выполняет цикл "прочитать - проверить - записать" над одной
// записью площадки; при конфликте версий цикл повторяется с начала на свежих данных.
type Service struct {
	stateRepo VenueStateRepository
	time      TimeProvider
	metrics   Metrics
	logger    Logger
	holdTTL   time.Duration
}

func New(stateRepo VenueStateRepository, timeProvider TimeProvider, metrics Metrics, logger Logger, holdTTL time.Duration) *Service {
	return &Service{
		stateRepo: stateRepo,
		time:      timeProvider,
		metrics:   metrics,
		logger:    logger,
		holdTTL:   holdTTL,
	}
}

// PlaceHold захватывает слот за пользователем на время оплаты.
// Истёкшие удержания при проверке считаются несуществующими и вычищаются попутно.
func (s *Service) PlaceHold(ctx context.Context, venueID int64, date types.DateString, startTime types.TimeString, userID int64, bookingID uuid.UUID) (*domain.HoldEntry, error) {
	var placed *domain.HoldEntry

	err := s.mutate(ctx, "place_hold", venueID, func(state *domain.VenueSlotState, now time.Time) error {
		if state.FindBlocked(date, startTime) != nil {
			s.rejected(conflictReasonBlocked)
			return ErrSlotBlocked
		}
		if state.FindBooking(date, startTime) != nil {
			s.rejected(conflictReasonAlreadyBooked)
			return ErrSlotAlreadyBooked
		}
		if hold := state.FindHold(date, startTime); hold != nil {
			if !hold.IsExpired(now) && !hold.BelongsTo(userID) {
				s.rejected(conflictReasonHeldByOther)
				return ErrSlotHeldByOther
			}
			state.RemoveHold(date, startTime)
		}

		entry := domain.HoldEntry{
			Date:          date,
			StartTime:     startTime,
			UserID:        userID,
			BookingID:     bookingID,
			HoldExpiresAt: now.Add(s.holdTTL),
			CreatedAt:     now,
		}
		state.AddHold(entry)
		placed = &entry
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.HoldPlaced()
	}
	s.logger.Info("reservation.PlaceHold - venue %d, slot %s %s held by user %d until %s", venueID, date, startTime, userID, placed.HoldExpiresAt.Format(time.RFC3339))
	return placed, nil
}

// ReleaseHold снимает удержание слота. Отсутствие удержания не является ошибкой:
// повторный вызов и вызов после истечения TTL завершаются успешно без записи.
func (s *Service) ReleaseHold(ctx context.Context, venueID int64, date types.DateString, startTime types.TimeString) error {
	released := false

	err := s.mutate(ctx, "release_hold", venueID, func(state *domain.VenueSlotState, now time.Time) error {
		released = state.RemoveHold(date, startTime)
		if !released {
			return errNoChange
		}
		return nil
	})
	if err != nil {
		return err
	}

	if released && s.metrics != nil {
		s.metrics.HoldReleased()
	}
	return nil
}

// ConfirmBooking переводит слот из удержанного в забронированный.
// Живое удержание чужого бронирования не перезаписывается: менеджерская запись
// через кассу не должна отбирать слот у клиента, ожидающего оплаты.
func (s *Service) ConfirmBooking(ctx context.Context, venueID int64, details domain.BookingEntry) error {
	err := s.mutate(ctx, "confirm_booking", venueID, func(state *domain.VenueSlotState, now time.Time) error {
		if existing := state.FindBooking(details.Date, details.StartTime); existing != nil {
			if existing.BookingID == details.BookingID {
				// Повторное применение того же бронирования, слот уже наш
				return errNoChange
			}
			s.rejected(conflictReasonAlreadyBooked)
			return ErrSlotAlreadyBooked
		}
		if state.FindBlocked(details.Date, details.StartTime) != nil {
			s.rejected(conflictReasonBlocked)
			return ErrSlotBlocked
		}
		if hold := state.FindHold(details.Date, details.StartTime); hold != nil {
			if !hold.IsExpired(now) && hold.BookingID != details.BookingID {
				s.rejected(conflictReasonHeldByOther)
				return ErrSlotHeldByOther
			}
		}

		state.RemoveHold(details.Date, details.StartTime)
		details.Status = string(domain.StatusConfirmed)
		if details.CreatedAt.IsZero() {
			details.CreatedAt = now
		}
		state.AddBooking(details)
		return nil
	})
	if err != nil {
		return err
	}

	if s.metrics != nil {
		s.metrics.BookingCommitted(string(details.BookingType))
	}
	s.logger.Info("reservation.ConfirmBooking - venue %d, slot %s %s booked (booking %s)", venueID, details.Date, details.StartTime, details.BookingID)
	return nil
}

// RemoveBooking освобождает слот после отмены бронирования.
// Попутно снимается удержание, если оно осталось. Идемпотентна.
func (s *Service) RemoveBooking(ctx context.Context, venueID int64, date types.DateString, startTime types.TimeString) error {
	return s.mutate(ctx, "remove_booking", venueID, func(state *domain.VenueSlotState, now time.Time) error {
		removedBooking := state.RemoveBooking(date, startTime)
		removedHold := state.RemoveHold(date, startTime)
		if !removedBooking && !removedHold {
			return errNoChange
		}
		return nil
	})
}

// BlockSlot закрывает слот от бронирования. Слот с активным бронированием или
// чужим живым удержанием закрыть нельзя, сначала его нужно освободить.
func (s *Service) BlockSlot(ctx context.Context, venueID int64, date types.DateString, startTime types.TimeString, reason *string) error {
	return s.mutate(ctx, "block_slot", venueID, func(state *domain.VenueSlotState, now time.Time) error {
		if state.FindBlocked(date, startTime) != nil {
			return errNoChange
		}
		if state.FindBooking(date, startTime) != nil {
			s.rejected(conflictReasonAlreadyBooked)
			return ErrSlotAlreadyBooked
		}
		if hold := state.FindHold(date, startTime); hold != nil {
			if !hold.IsExpired(now) {
				s.rejected(conflictReasonHeldByOther)
				return ErrSlotHeldByOther
			}
			state.RemoveHold(date, startTime)
		}

		state.AddBlocked(domain.BlockedEntry{
			Date:      date,
			StartTime: startTime,
			Reason:    reason,
			CreatedAt: now,
		})
		return nil
	})
}

// UnblockSlot снимает закрытие слота. Идемпотентна.
func (s *Service) UnblockSlot(ctx context.Context, venueID int64, date types.DateString, startTime types.TimeString) error {
	return s.mutate(ctx, "unblock_slot", venueID, func(state *domain.VenueSlotState, now time.Time) error {
		if !state.RemoveBlocked(date, startTime) {
			return errNoChange
		}
		return nil
	})
}

// ReserveSlot помечает слот как предварительно занятый. Пометка информационная,
// бронированию не мешает и ни с чем не конфликтует.
func (s *Service) ReserveSlot(ctx context.Context, venueID int64, date types.DateString, startTime types.TimeString, note *string) error {
	return s.mutate(ctx, "reserve_slot", venueID, func(state *domain.VenueSlotState, now time.Time) error {
		if state.FindReserved(date, startTime) != nil {
			return errNoChange
		}
		state.AddReserved(domain.ReservedEntry{
			Date:      date,
			StartTime: startTime,
			Note:      note,
			CreatedAt: now,
		})
		return nil
	})
}

// UnreserveSlot снимает предварительную пометку. Идемпотентна.
func (s *Service) UnreserveSlot(ctx context.Context, venueID int64, date types.DateString, startTime types.TimeString) error {
	return s.mutate(ctx, "unreserve_slot", venueID, func(state *domain.VenueSlotState, now time.Time) error {
		if !state.RemoveReserved(date, startTime) {
			return errNoChange
		}
		return nil
	})
}

// errNoChange - внутренний маркер: проверка прошла, но записывать нечего.
var errNoChange = errors.New("no change")

// mutate выполняет цикл "прочитать - проверить - записать" с ограниченным числом
// повторов при конфликте версий. fn валидирует и меняет агрегат; доменные ошибки
// из fn прерывают цикл без записи.
func (s *Service) mutate(ctx context.Context, operation string, venueID int64, fn func(state *domain.VenueSlotState, now time.Time) error) error {
	for attempt := 1; attempt <= MaxWriteAttempts; attempt++ {
		state, err := s.stateRepo.Get(ctx, venueID)
		if err != nil {
			if errors.Is(err, venuestate.ErrVenueStateNotFound) {
				return fmt.Errorf("%w: mutate - get state for venue %d: %v", ErrVenueNotFound, venueID, err)
			}
			return fmt.Errorf("%w: mutate - get state for venue %d: %v", ErrInternal, venueID, err)
		}

		now := s.time.Now()
		if err := fn(state, now); err != nil {
			if errors.Is(err, errNoChange) {
				return nil
			}
			return err
		}

		err = s.stateRepo.Save(ctx, state)
		if err == nil {
			return nil
		}
		if !errors.Is(err, venuestate.ErrVersionConflict) {
			return fmt.Errorf("%w: mutate - save state for venue %d: %v", ErrInternal, venueID, err)
		}

		// Кто-то успел записать раньше, перечитываем и пробуем заново.
		if s.metrics != nil {
			s.metrics.RetryOccurred(operation)
		}
		s.logger.Warn("reservation.mutate - version conflict on venue %d, operation %s, attempt %d/%d", venueID, operation, attempt, MaxWriteAttempts)
	}

	s.rejected(conflictReasonContention)
	return fmt.Errorf("%w: mutate - venue %d exhausted %d attempts", ErrContention, venueID, MaxWriteAttempts)
}

func (s *Service) rejected(reason string) {
	if s.metrics != nil {
		s.metrics.ConflictRejected(reason)
	}
}

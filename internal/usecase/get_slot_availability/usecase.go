package get_slot_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SVB-ReservationService/internal/infra/storage/venuestate"
)

// UseCase use case проекции доступности слотов площадки
type UseCase struct {
	stateRepo    VenueStateRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(stateRepo VenueStateRepository, logger Logger) *UseCase {
	return &UseCase{
		stateRepo:    stateRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет проекцию доступности. Операция только читает состояние:
// истёкшие удержания показываются как свободные слоты, даже если чистильщик
// до них ещё не добрался.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetSlotAvailability: venue=%d, from=%s, to=%s", req.VenueID, req.FromDate, req.ToDate)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetSlotAvailability: validation failed: %v", err)
		return nil, err
	}

	state, err := uc.stateRepo.Get(ctx, req.VenueID)
	if err != nil {
		if errors.Is(err, venuestate.ErrVenueStateNotFound) {
			uc.logger.Warn("GetSlotAvailability: venue id=%d not found", req.VenueID)
			return nil, ErrVenueNotFound
		}
		uc.logger.Error("GetSlotAvailability: failed to get state for venue id=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to get venue state: %v", ErrInternal, err)
	}

	now := uc.timeProvider.Now()
	projected, err := projectSlots(state, req.FromDate, req.ToDate, now)
	if err != nil {
		uc.logger.Error("GetSlotAvailability: projection failed for venue id=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: projection failed: %v", ErrInternal, err)
	}

	slots := make([]Slot, 0, len(projected))
	for _, s := range projected {
		slots = append(slots, Slot{
			Date:            s.Date,
			StartTime:       s.StartTime,
			DurationMinutes: s.DurationMinutes,
			Status:          s.Status,
		})
	}

	uc.logger.Info("GetSlotAvailability: venue=%d, generated %d slots", req.VenueID, len(slots))
	return &Response{
		VenueID:  req.VenueID,
		FromDate: req.FromDate,
		ToDate:   req.ToDate,
		Slots:    slots,
	}, nil
}

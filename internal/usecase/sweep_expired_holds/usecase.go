package sweep_expired_holds

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SVB-ReservationService/internal/infra/storage/venuestate"
)

// ErrInternal инфраструктурная ошибка, при которой проход не состоялся
var ErrInternal = errors.New("internal error")

// UseCase фоновая чистка истёкших удержаний. Подстраховка: все пути чтения и
// записи и так игнорируют истёкшие удержания, чистка лишь убирает мусор из
// записей состояния.
type UseCase struct {
	stateRepo    VenueStateRepository
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(stateRepo VenueStateRepository, metrics Metrics, logger Logger) *UseCase {
	return &UseCase{
		stateRepo:    stateRepo,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет один проход по всем площадкам. Ошибка на отдельной
// площадке не прерывает проход: конфликт версий означает, что запись только
// что менялась, следующий проход её догонит.
func (uc *UseCase) Execute(ctx context.Context, trigger string) (*Result, error) {
	if uc.metrics != nil {
		uc.metrics.SweepRun(trigger)
	}

	venueIDs, err := uc.stateRepo.ListVenueIDs(ctx)
	if err != nil {
		uc.logger.Error("SweepExpiredHolds: failed to list venues: %v", err)
		return nil, fmt.Errorf("%w: failed to list venues: %v", ErrInternal, err)
	}

	now := uc.timeProvider.Now()
	result := &Result{}

	for _, venueID := range venueIDs {
		result.VenuesScanned++

		removed, err := uc.stateRepo.PurgeExpiredHolds(ctx, venueID, now)
		if err != nil {
			if errors.Is(err, venuestate.ErrVersionConflict) {
				uc.logger.Info("SweepExpiredHolds: venue %d is busy, skipping until next pass", venueID)
			} else {
				uc.logger.Error("SweepExpiredHolds: failed to purge venue %d: %v", venueID, err)
			}
			result.Errors++
			continue
		}
		result.HoldsRemoved += removed
	}

	if uc.metrics != nil && result.HoldsRemoved > 0 {
		uc.metrics.SweepHoldsRemoved(result.HoldsRemoved)
	}
	uc.logger.Info("SweepExpiredHolds: trigger=%s, venues=%d, removed=%d, errors=%d",
		trigger, result.VenuesScanned, result.HoldsRemoved, result.Errors)
	return result, nil
}

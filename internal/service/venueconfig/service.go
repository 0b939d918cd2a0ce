package venueconfig

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SVB-ReservationService/internal/domain"
	"github.com/m04kA/SVB-ReservationService/internal/infra/storage/venuestate"
)

const maxWriteAttempts = 3

// Service управляет сеткой слотов площадки: заведение площадки и изменение
// конфигурации. Изменения проходят через ту же версионную запись, что и
// операции движка резервирования, поэтому не теряют конкурентные правки.
type Service struct {
	stateRepo VenueStateRepository
	time      TimeProvider
	logger    Logger

	// Порог отмены по умолчанию, если площадка не задала свой
	defaultCancellationHours int
}

func New(stateRepo VenueStateRepository, timeProvider TimeProvider, logger Logger, defaultCancellationHours int) *Service {
	if defaultCancellationHours <= 0 {
		defaultCancellationHours = domain.DefaultCancellationHoursLimit
	}
	return &Service{
		stateRepo:                stateRepo,
		time:                     timeProvider,
		logger:                   logger,
		defaultCancellationHours: defaultCancellationHours,
	}
}

// CreateVenue заводит запись состояния слотов для новой площадки.
func (s *Service) CreateVenue(ctx context.Context, venueID int64, cfg domain.SlotConfig) (*domain.VenueSlotState, error) {
	s.applyConfigDefaults(&cfg)
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	state := &domain.VenueSlotState{
		VenueID: venueID,
		Config:  cfg,
	}
	err := s.stateRepo.Create(ctx, state)
	if err != nil {
		if errors.Is(err, venuestate.ErrVenueStateExists) {
			return nil, fmt.Errorf("%w: CreateVenue - venue %d: %v", ErrVenueAlreadyExists, venueID, err)
		}
		return nil, fmt.Errorf("%w: CreateVenue - venue %d: %v", ErrInternal, venueID, err)
	}

	s.logger.Info("venueconfig.CreateVenue - venue %d created, slots %s-%s every %d min", venueID, cfg.StartTime, cfg.EndTime, cfg.SlotDurationMinutes)
	return state, nil
}

// GetConfig возвращает текущую конфигурацию сетки слотов площадки.
func (s *Service) GetConfig(ctx context.Context, venueID int64) (*domain.SlotConfig, error) {
	state, err := s.stateRepo.Get(ctx, venueID)
	if err != nil {
		if errors.Is(err, venuestate.ErrVenueStateNotFound) {
			return nil, fmt.Errorf("%w: GetConfig - venue %d: %v", ErrVenueNotFound, venueID, err)
		}
		return nil, fmt.Errorf("%w: GetConfig - venue %d: %v", ErrInternal, venueID, err)
	}
	cfg := state.Config
	return &cfg, nil
}

// UpdateConfig заменяет конфигурацию сетки слотов. Уже размещённые брони,
// блокировки и удержания не трогаются: исключения могут оказаться вне новой
// сетки, но движок резервирования продолжает их учитывать.
func (s *Service) UpdateConfig(ctx context.Context, venueID int64, cfg domain.SlotConfig) (*domain.SlotConfig, error) {
	s.applyConfigDefaults(&cfg)
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	for attempt := 1; attempt <= maxWriteAttempts; attempt++ {
		state, err := s.stateRepo.Get(ctx, venueID)
		if err != nil {
			if errors.Is(err, venuestate.ErrVenueStateNotFound) {
				return nil, fmt.Errorf("%w: UpdateConfig - venue %d: %v", ErrVenueNotFound, venueID, err)
			}
			return nil, fmt.Errorf("%w: UpdateConfig - venue %d: %v", ErrInternal, venueID, err)
		}

		state.Config = cfg
		err = s.stateRepo.Save(ctx, state)
		if err == nil {
			s.logger.Info("venueconfig.UpdateConfig - venue %d config updated", venueID)
			return &cfg, nil
		}
		if !errors.Is(err, venuestate.ErrVersionConflict) {
			return nil, fmt.Errorf("%w: UpdateConfig - venue %d: %v", ErrInternal, venueID, err)
		}
		s.logger.Warn("venueconfig.UpdateConfig - version conflict on venue %d, attempt %d/%d", venueID, attempt, maxWriteAttempts)
	}

	return nil, fmt.Errorf("%w: UpdateConfig - venue %d exhausted %d attempts", ErrContention, venueID, maxWriteAttempts)
}

func (s *Service) applyConfigDefaults(cfg *domain.SlotConfig) {
	if cfg.SlotDurationMinutes == 0 {
		cfg.SlotDurationMinutes = domain.DefaultSlotDurationMinutes
	}
	if cfg.AdvancePercent == 0 {
		cfg.AdvancePercent = domain.DefaultAdvancePercent
	}
	if cfg.CancellationHoursLimit == 0 {
		cfg.CancellationHoursLimit = s.defaultCancellationHours
	}
}

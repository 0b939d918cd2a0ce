package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SVB-ReservationService/internal/domain"
	"github.com/m04kA/SVB-ReservationService/internal/infra/storage/venuestate"
	"github.com/m04kA/SVB-ReservationService/internal/service/reservation"
)

// UseCase use case создания онлайн-бронирования
type UseCase struct {
	stateRepo    VenueStateRepository
	bookingRepo  BookingRepository
	engine       ReservationEngine
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	stateRepo VenueStateRepository,
	bookingRepo BookingRepository,
	engine ReservationEngine,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		stateRepo:    stateRepo,
		bookingRepo:  bookingRepo,
		engine:       engine,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute создает бронирование: захватывает слот удержанием через движок
// резервирования и заводит запись бронирования в статусе pending_payment.
// Если запись завести не удалось, удержание снимается компенсирующим вызовом.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, venue=%d, date=%s, time=%s",
		req.UserID, req.VenueID, req.Date, req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем конфигурацию сетки площадки
	state, err := uc.stateRepo.Get(ctx, req.VenueID)
	if err != nil {
		if errors.Is(err, venuestate.ErrVenueStateNotFound) {
			uc.logger.Warn("CreateBooking: venue id=%d not found", req.VenueID)
			return nil, ErrVenueNotFound
		}
		uc.logger.Error("CreateBooking: failed to get state for venue id=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to get venue state: %v", ErrInternal, err)
	}
	cfg := state.Config

	// 3. Слот должен лежать на сетке площадки и быть в будущем
	if err := validateSlotOnGrid(&cfg, req.Date, req.StartTime); err != nil {
		uc.logger.Warn("CreateBooking: grid validation failed: %v", err)
		return nil, err
	}
	now := uc.timeProvider.Now()
	if err := validateSlotInFuture(&cfg, req.Date, req.StartTime, now); err != nil {
		uc.logger.Warn("CreateBooking: slot in past: %v", err)
		return nil, err
	}

	// 4. Считаем стоимость и размер предоплаты
	amount := cfg.PricePerSlot
	advance := amount.Mul(decimal.NewFromInt(int64(cfg.AdvancePercent))).Div(decimal.NewFromInt(100)).Round(2)
	due := amount.Sub(advance)

	endTime, err := req.StartTime.AddMinutes(cfg.SlotDurationMinutes)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to compute end time: %v", err)
		return nil, fmt.Errorf("%w: failed to compute end time: %v", ErrInternal, err)
	}

	// 5. Захватываем слот удержанием
	bookingID := uuid.New()
	hold, err := uc.engine.PlaceHold(ctx, req.VenueID, req.Date, req.StartTime, req.UserID, bookingID)
	if err != nil {
		return nil, uc.mapEngineError(err, req)
	}

	// 6. Заводим запись бронирования
	booking := &domain.Booking{
		ID:            bookingID,
		VenueID:       req.VenueID,
		UserID:        req.UserID,
		Date:          req.Date,
		StartTime:     req.StartTime,
		EndTime:       endTime,
		BookingType:   domain.BookingTypeOnline,
		Status:        domain.StatusPendingPayment,
		Amount:        amount,
		AdvanceAmount: advance,
		DueAmount:     due,
		HoldExpiresAt: &hold.HoldExpiresAt,
	}

	var created *domain.Booking
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		created, err = uc.bookingRepo.Create(txCtx, booking)
		return err
	})
	if err != nil {
		uc.logger.Error("CreateBooking: failed to create booking record: %v", err)
		// Запись не создана, слот держать незачем
		if relErr := uc.engine.ReleaseHold(ctx, req.VenueID, req.Date, req.StartTime); relErr != nil {
			uc.logger.Error("CreateBooking: failed to release hold after create failure: %v", relErr)
		}
		return nil, fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateBooking: booking %s created, hold until %s", created.ID, hold.HoldExpiresAt)
	return &Response{
		ID:            created.ID,
		VenueID:       created.VenueID,
		UserID:        created.UserID,
		Date:          created.Date,
		StartTime:     created.StartTime,
		EndTime:       created.EndTime,
		Status:        string(created.Status),
		Amount:        created.Amount,
		AdvanceAmount: created.AdvanceAmount,
		DueAmount:     created.DueAmount,
		HoldExpiresAt: hold.HoldExpiresAt,
		CreatedAt:     created.CreatedAt,
	}, nil
}

func (uc *UseCase) mapEngineError(err error, req *Request) error {
	switch {
	case errors.Is(err, reservation.ErrSlotBlocked):
		uc.logger.Warn("CreateBooking: slot %s %s is blocked", req.Date, req.StartTime)
		return ErrSlotBlocked
	case errors.Is(err, reservation.ErrSlotAlreadyBooked):
		uc.logger.Warn("CreateBooking: slot %s %s is already booked", req.Date, req.StartTime)
		return ErrSlotAlreadyBooked
	case errors.Is(err, reservation.ErrSlotHeldByOther):
		uc.logger.Warn("CreateBooking: slot %s %s is held by another user", req.Date, req.StartTime)
		return ErrSlotHeldByOther
	case errors.Is(err, reservation.ErrContention):
		uc.logger.Warn("CreateBooking: contention on venue %d", req.VenueID)
		return ErrContention
	case errors.Is(err, reservation.ErrVenueNotFound):
		return ErrVenueNotFound
	default:
		uc.logger.Error("CreateBooking: failed to place hold: %v", err)
		return fmt.Errorf("%w: failed to place hold: %v", ErrInternal, err)
	}
}

package create_physical_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SVB-ReservationService/internal/domain"
	"github.com/m04kA/SVB-ReservationService/internal/infra/storage/venuestate"
	identityClient "github.com/m04kA/SVB-ReservationService/internal/integrations/identityservice"
	"github.com/m04kA/SVB-ReservationService/internal/service/reservation"
)

// UseCase use case создания бронирования менеджером на стойке
type UseCase struct {
	stateRepo      VenueStateRepository
	bookingRepo    BookingRepository
	engine         ReservationEngine
	identityClient IdentityServiceClient
	txManager      TransactionManager
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	stateRepo VenueStateRepository,
	bookingRepo BookingRepository,
	engine ReservationEngine,
	identityClient IdentityServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		stateRepo:      stateRepo,
		bookingRepo:    bookingRepo,
		engine:         engine,
		identityClient: identityClient,
		txManager:      txManager,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute создает бронирование без этапа оплаты: слот сразу переводится в
// забронированный. Доступно только менеджеру площадки. Клиент записывается
// метаданными, личного кабинета у него может не быть.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreatePhysicalBooking: manager=%d, venue=%d, date=%s, time=%s",
		req.ManagerID, req.VenueID, req.Date, req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreatePhysicalBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем полномочия менеджера
	actor, err := uc.identityClient.GetActor(ctx, req.ManagerID)
	if err != nil {
		if errors.Is(err, identityClient.ErrActorNotFound) {
			uc.logger.Warn("CreatePhysicalBooking: actor %d not found", req.ManagerID)
			return nil, ErrAccessDenied
		}
		uc.logger.Error("CreatePhysicalBooking: failed to get actor %d: %v", req.ManagerID, err)
		return nil, fmt.Errorf("%w: failed to get actor: %v", ErrInternal, err)
	}
	if !actor.ManagesVenue(req.VenueID) {
		uc.logger.Warn("CreatePhysicalBooking: user %d does not manage venue %d", req.ManagerID, req.VenueID)
		return nil, ErrAccessDenied
	}

	// 3. Получаем конфигурацию сетки и проверяем слот
	state, err := uc.stateRepo.Get(ctx, req.VenueID)
	if err != nil {
		if errors.Is(err, venuestate.ErrVenueStateNotFound) {
			uc.logger.Warn("CreatePhysicalBooking: venue id=%d not found", req.VenueID)
			return nil, ErrVenueNotFound
		}
		uc.logger.Error("CreatePhysicalBooking: failed to get state for venue id=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to get venue state: %v", ErrInternal, err)
	}
	cfg := state.Config

	if err := validateSlotOnGrid(&cfg, req.Date, req.StartTime); err != nil {
		uc.logger.Warn("CreatePhysicalBooking: grid validation failed: %v", err)
		return nil, err
	}
	now := uc.timeProvider.Now()
	if err := validateSlotInFuture(&cfg, req.Date, req.StartTime, now); err != nil {
		uc.logger.Warn("CreatePhysicalBooking: slot in past: %v", err)
		return nil, err
	}

	endTime, err := req.StartTime.AddMinutes(cfg.SlotDurationMinutes)
	if err != nil {
		uc.logger.Error("CreatePhysicalBooking: failed to compute end time: %v", err)
		return nil, fmt.Errorf("%w: failed to compute end time: %v", ErrInternal, err)
	}

	// Оплата на стойке фиксируется как есть, без расчёта предоплаты
	amount := decimal.Zero
	if req.Amount != nil {
		amount = *req.Amount
	}

	// 4. Занимаем слот, минуя этап удержания
	bookingID := uuid.New()
	entry := domain.BookingEntry{
		Date:          req.Date,
		StartTime:     req.StartTime,
		BookingID:     bookingID,
		BookingType:   domain.BookingTypePhysical,
		CustomerName:  &req.CustomerName,
		CustomerPhone: req.CustomerPhone,
	}
	if err := uc.engine.ConfirmBooking(ctx, req.VenueID, entry); err != nil {
		return nil, uc.mapEngineError(err, req)
	}

	// 5. Заводим запись бронирования, слот уже занят
	booking := &domain.Booking{
		ID:            bookingID,
		VenueID:       req.VenueID,
		UserID:        req.ManagerID,
		Date:          req.Date,
		StartTime:     req.StartTime,
		EndTime:       endTime,
		BookingType:   domain.BookingTypePhysical,
		Status:        domain.StatusConfirmed,
		Amount:        amount,
		AdvanceAmount: amount,
		DueAmount:     decimal.Zero,
		CustomerName:  &req.CustomerName,
		CustomerPhone: req.CustomerPhone,
	}

	var created *domain.Booking
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		created, err = uc.bookingRepo.Create(txCtx, booking)
		return err
	})
	if err != nil {
		uc.logger.Error("CreatePhysicalBooking: failed to create booking record: %v", err)
		if rbErr := uc.engine.RemoveBooking(ctx, req.VenueID, req.Date, req.StartTime); rbErr != nil {
			uc.logger.Error("CreatePhysicalBooking: failed to free slot after create failure: %v", rbErr)
		}
		return nil, fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
	}

	uc.logger.Info("CreatePhysicalBooking: booking %s created for %s", created.ID, req.CustomerName)
	return &Response{
		ID:            created.ID,
		VenueID:       created.VenueID,
		Date:          created.Date,
		StartTime:     created.StartTime,
		EndTime:       created.EndTime,
		Status:        string(created.Status),
		BookingType:   string(created.BookingType),
		Amount:        created.Amount,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CreatedAt:     created.CreatedAt,
	}, nil
}

func (uc *UseCase) mapEngineError(err error, req *Request) error {
	switch {
	case errors.Is(err, reservation.ErrSlotBlocked):
		uc.logger.Warn("CreatePhysicalBooking: slot %s %s is blocked", req.Date, req.StartTime)
		return ErrSlotBlocked
	case errors.Is(err, reservation.ErrSlotAlreadyBooked):
		uc.logger.Warn("CreatePhysicalBooking: slot %s %s is already booked", req.Date, req.StartTime)
		return ErrSlotAlreadyBooked
	case errors.Is(err, reservation.ErrSlotHeldByOther):
		uc.logger.Warn("CreatePhysicalBooking: slot %s %s is held by a customer", req.Date, req.StartTime)
		return ErrSlotHeldByOther
	case errors.Is(err, reservation.ErrContention):
		return ErrContention
	case errors.Is(err, reservation.ErrVenueNotFound):
		return ErrVenueNotFound
	default:
		uc.logger.Error("CreatePhysicalBooking: failed to confirm slot: %v", err)
		return fmt.Errorf("%w: failed to confirm slot: %v", ErrInternal, err)
	}
}

package manage_slot

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SVB-ReservationService/internal/domain"
	identityClient "github.com/m04kA/SVB-ReservationService/internal/integrations/identityservice"
	"github.com/m04kA/SVB-ReservationService/internal/service/reservation"
)

// UseCase use case менеджерских пометок слотов: блокировка и предварительное
// резервирование. Все операции идемпотентны и доступны только менеджеру площадки.
type UseCase struct {
	engine         ReservationEngine
	identityClient IdentityServiceClient
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(engine ReservationEngine, identityClient IdentityServiceClient, logger Logger) *UseCase {
	return &UseCase{
		engine:         engine,
		identityClient: identityClient,
		logger:         logger,
	}
}

// Block закрывает слот от бронирования
func (uc *UseCase) Block(ctx context.Context, req *Request) error {
	if err := uc.authorize(ctx, req, "Block"); err != nil {
		return err
	}
	err := uc.engine.BlockSlot(ctx, req.VenueID, req.Date, req.StartTime, req.Note)
	if err != nil {
		return uc.mapEngineError(err, "Block", req)
	}
	uc.logger.Info("ManageSlot.Block: venue=%d, slot %s %s blocked by manager %d", req.VenueID, req.Date, req.StartTime, req.ManagerID)
	return nil
}

// Unblock снимает блокировку слота
func (uc *UseCase) Unblock(ctx context.Context, req *Request) error {
	if err := uc.authorize(ctx, req, "Unblock"); err != nil {
		return err
	}
	err := uc.engine.UnblockSlot(ctx, req.VenueID, req.Date, req.StartTime)
	if err != nil {
		return uc.mapEngineError(err, "Unblock", req)
	}
	uc.logger.Info("ManageSlot.Unblock: venue=%d, slot %s %s unblocked by manager %d", req.VenueID, req.Date, req.StartTime, req.ManagerID)
	return nil
}

// Reserve ставит предварительную пометку на слот
func (uc *UseCase) Reserve(ctx context.Context, req *Request) error {
	if err := uc.authorize(ctx, req, "Reserve"); err != nil {
		return err
	}
	err := uc.engine.ReserveSlot(ctx, req.VenueID, req.Date, req.StartTime, req.Note)
	if err != nil {
		return uc.mapEngineError(err, "Reserve", req)
	}
	uc.logger.Info("ManageSlot.Reserve: venue=%d, slot %s %s reserved by manager %d", req.VenueID, req.Date, req.StartTime, req.ManagerID)
	return nil
}

// Unreserve снимает предварительную пометку
func (uc *UseCase) Unreserve(ctx context.Context, req *Request) error {
	if err := uc.authorize(ctx, req, "Unreserve"); err != nil {
		return err
	}
	err := uc.engine.UnreserveSlot(ctx, req.VenueID, req.Date, req.StartTime)
	if err != nil {
		return uc.mapEngineError(err, "Unreserve", req)
	}
	uc.logger.Info("ManageSlot.Unreserve: venue=%d, slot %s %s unreserved by manager %d", req.VenueID, req.Date, req.StartTime, req.ManagerID)
	return nil
}

func (uc *UseCase) authorize(ctx context.Context, req *Request, op string) error {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ManageSlot.%s: validation failed: %v", op, err)
		return err
	}

	actor, err := uc.identityClient.GetActor(ctx, req.ManagerID)
	if err != nil {
		if errors.Is(err, identityClient.ErrActorNotFound) {
			uc.logger.Warn("ManageSlot.%s: actor %d not found", op, req.ManagerID)
			return ErrAccessDenied
		}
		uc.logger.Error("ManageSlot.%s: failed to get actor %d: %v", op, req.ManagerID, err)
		return fmt.Errorf("%w: failed to get actor: %v", ErrInternal, err)
	}
	if !actor.ManagesVenue(req.VenueID) {
		uc.logger.Warn("ManageSlot.%s: user %d does not manage venue %d", op, req.ManagerID, req.VenueID)
		return ErrAccessDenied
	}
	return nil
}

func (uc *UseCase) mapEngineError(err error, op string, req *Request) error {
	switch {
	case errors.Is(err, reservation.ErrSlotAlreadyBooked):
		uc.logger.Warn("ManageSlot.%s: slot %s %s is booked", op, req.Date, req.StartTime)
		return ErrSlotAlreadyBooked
	case errors.Is(err, reservation.ErrSlotHeldByOther):
		uc.logger.Warn("ManageSlot.%s: slot %s %s is held", op, req.Date, req.StartTime)
		return ErrSlotHeldByOther
	case errors.Is(err, reservation.ErrContention):
		return ErrContention
	case errors.Is(err, reservation.ErrVenueNotFound):
		return ErrVenueNotFound
	default:
		uc.logger.Error("ManageSlot.%s: engine failed: %v", op, err)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}

func validateRequest(req *Request) error {
	if req.ManagerID <= 0 {
		return fmt.Errorf("%w: manager id must be positive", ErrInvalidRequest)
	}
	if req.VenueID <= 0 {
		return fmt.Errorf("%w: venue id must be positive", ErrInvalidRequest)
	}
	if err := req.Date.Validate(); err != nil {
		return fmt.Errorf("%w: date: %v", ErrInvalidRequest, err)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: startTime: %v", ErrInvalidRequest, err)
	}
	if req.Note != nil && len(*req.Note) > domain.MaxBlockReasonLength {
		return fmt.Errorf("%w: note is too long", ErrInvalidRequest)
	}
	return nil
}

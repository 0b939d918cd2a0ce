package create_physical_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SVB-ReservationService/internal/api/handlers"
	"github.com/m04kA/SVB-ReservationService/internal/api/middleware"
	createPhysical "github.com/m04kA/SVB-ReservationService/internal/usecase/create_physical_booking"
)

const (
	msgInvalidVenueID     = "некорректный ID площадки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректные дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgVenueNotFound      = "площадка не найдена"
	msgForbidden          = "доступ запрещен"
	msgSlotNotOnGrid      = "слот не входит в сетку площадки"
	msgSlotInPast         = "слот уже начался"
	msgSlotBlocked        = "слот закрыт для бронирования"
	msgSlotAlreadyBooked  = "слот уже забронирован"
	msgSlotHeld           = "слот удержан клиентом, ожидающим оплаты"
	msgContention         = "не удалось применить изменение, попробуйте ещё раз"
)

type Handler struct {
	useCase CreatePhysicalBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreatePhysicalBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/venues/{venueId}/physical-bookings
// Только для менеджера площадки
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	venueID, err := strconv.ParseInt(vars["venueId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /venues/{id}/physical-bookings - Invalid venue ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	managerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "отсутствует идентификатор пользователя")
		return
	}

	var req CreatePhysicalBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /venues/{id}/physical-bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(managerID, venueID)
	if err != nil {
		h.logger.Warn("POST /venues/{id}/physical-bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createPhysical.ErrInvalidRequest):
			h.logger.Warn("POST /venues/{id}/physical-bookings - Invalid request: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, createPhysical.ErrVenueNotFound):
			h.logger.Warn("POST /venues/{id}/physical-bookings - Venue not found: venue_id=%d", venueID)
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, createPhysical.ErrAccessDenied):
			h.logger.Warn("POST /venues/{id}/physical-bookings - Access denied: manager_id=%d, venue_id=%d", managerID, venueID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, createPhysical.ErrSlotNotOnGrid):
			handlers.RespondBadRequest(w, msgSlotNotOnGrid)

		case errors.Is(err, createPhysical.ErrSlotInPast):
			handlers.RespondBadRequest(w, msgSlotInPast)

		case errors.Is(err, createPhysical.ErrSlotBlocked):
			handlers.RespondConflict(w, msgSlotBlocked)

		case errors.Is(err, createPhysical.ErrSlotAlreadyBooked):
			handlers.RespondConflict(w, msgSlotAlreadyBooked)

		case errors.Is(err, createPhysical.ErrSlotHeldByOther):
			handlers.RespondConflict(w, msgSlotHeld)

		case errors.Is(err, createPhysical.ErrContention):
			handlers.RespondConflict(w, msgContention)

		default:
			h.logger.Error("POST /venues/{id}/physical-bookings - Failed: venue_id=%d, error=%v", venueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /venues/{id}/physical-bookings - Booking created: booking_id=%s, venue_id=%d, manager_id=%d",
		result.ID, venueID, managerID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

package block_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SVB-ReservationService/internal/api/handlers"
	"github.com/m04kA/SVB-ReservationService/internal/api/middleware"
	manageSlot "github.com/m04kA/SVB-ReservationService/internal/usecase/manage_slot"
	"github.com/m04kA/SVB-ReservationService/pkg/types"
)

const (
	msgInvalidVenueID     = "некорректный ID площадки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректные дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgVenueNotFound      = "площадка не найдена"
	msgForbidden          = "доступ запрещен"
	msgSlotBooked         = "слот занят бронированием, сначала отмените его"
	msgSlotHeld           = "слот удержан клиентом, ожидающим оплаты"
	msgContention         = "не удалось применить изменение, попробуйте ещё раз"
)

// BlockSlotRequest HTTP request model
type BlockSlotRequest struct {
	Date      string  `json:"date"`      // "2026-09-15"
	StartTime string  `json:"startTime"` // "10:00"
	Reason    *string `json:"reason,omitempty"`
}

type Handler struct {
	useCase ManageSlotUseCase
	logger  Logger
}

func NewHandler(useCase ManageSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// HandleBlock POST /api/v1/venues/{venueId}/blocked-slots
// Только для менеджера площадки
func (h *Handler) HandleBlock(w http.ResponseWriter, r *http.Request) {
	req, ok := h.parseBody(w, r)
	if !ok {
		return
	}

	if err := h.useCase.Block(r.Context(), req); err != nil {
		h.respondError(w, "POST /venues/{id}/blocked-slots", err)
		return
	}

	h.logger.Info("POST /venues/{id}/blocked-slots - Slot blocked: venue_id=%d, date=%s, time=%s",
		req.VenueID, req.Date, req.StartTime)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

// HandleUnblock DELETE /api/v1/venues/{venueId}/blocked-slots?date=&startTime=
// Только для менеджера площадки. Идемпотентна.
func (h *Handler) HandleUnblock(w http.ResponseWriter, r *http.Request) {
	req, ok := h.parseQuery(w, r)
	if !ok {
		return
	}

	if err := h.useCase.Unblock(r.Context(), req); err != nil {
		h.respondError(w, "DELETE /venues/{id}/blocked-slots", err)
		return
	}

	h.logger.Info("DELETE /venues/{id}/blocked-slots - Slot unblocked: venue_id=%d, date=%s, time=%s",
		req.VenueID, req.Date, req.StartTime)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) parseBody(w http.ResponseWriter, r *http.Request) (*manageSlot.Request, bool) {
	venueID, managerID, ok := h.parseIdentity(w, r)
	if !ok {
		return nil, false
	}

	var body BlockSlotRequest
	if err := handlers.DecodeJSON(r, &body); err != nil {
		h.logger.Warn("blocked-slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return nil, false
	}

	date, err := types.NewDateStringFromString(body.Date)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return nil, false
	}
	startTime, err := types.NewTimeStringFromString(body.StartTime)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return nil, false
	}

	return &manageSlot.Request{
		ManagerID: managerID,
		VenueID:   venueID,
		Date:      date,
		StartTime: startTime,
		Note:      body.Reason,
	}, true
}

func (h *Handler) parseQuery(w http.ResponseWriter, r *http.Request) (*manageSlot.Request, bool) {
	venueID, managerID, ok := h.parseIdentity(w, r)
	if !ok {
		return nil, false
	}

	date, err := types.NewDateStringFromString(r.URL.Query().Get("date"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return nil, false
	}
	startTime, err := types.NewTimeStringFromString(r.URL.Query().Get("startTime"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return nil, false
	}

	return &manageSlot.Request{
		ManagerID: managerID,
		VenueID:   venueID,
		Date:      date,
		StartTime: startTime,
	}, true
}

func (h *Handler) parseIdentity(w http.ResponseWriter, r *http.Request) (venueID, managerID int64, ok bool) {
	vars := mux.Vars(r)
	venueID, err := strconv.ParseInt(vars["venueId"], 10, 64)
	if err != nil {
		h.logger.Warn("blocked-slots - Invalid venue ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return 0, 0, false
	}

	managerID, authOK := middleware.GetUserID(r.Context())
	if !authOK {
		handlers.RespondUnauthorized(w, "отсутствует идентификатор пользователя")
		return 0, 0, false
	}
	return venueID, managerID, true
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, manageSlot.ErrInvalidRequest):
		h.logger.Warn("%s - Invalid request: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)

	case errors.Is(err, manageSlot.ErrVenueNotFound):
		h.logger.Warn("%s - Venue not found: %v", route, err)
		handlers.RespondNotFound(w, msgVenueNotFound)

	case errors.Is(err, manageSlot.ErrAccessDenied):
		h.logger.Warn("%s - Access denied: %v", route, err)
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, manageSlot.ErrSlotAlreadyBooked):
		handlers.RespondConflict(w, msgSlotBooked)

	case errors.Is(err, manageSlot.ErrSlotHeldByOther):
		handlers.RespondConflict(w, msgSlotHeld)

	case errors.Is(err, manageSlot.ErrContention):
		handlers.RespondConflict(w, msgContention)

	default:
		h.logger.Error("%s - Failed: %v", route, err)
		handlers.RespondInternalError(w)
	}
}

package reserve_slot

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
	msgContention         = "не удалось применить изменение, попробуйте ещё раз"
)

// ReserveSlotRequest HTTP request model
type ReserveSlotRequest struct {
	Date      string  `json:"date"`      // "2026-09-15"
	StartTime string  `json:"startTime"` // "10:00"
	Note      *string `json:"note,omitempty"`
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

// HandleReserve POST /api/v1/venues/{venueId}/reserved-slots
// Только для менеджера площадки. Пометка информационная, бронированию не мешает.
func (h *Handler) HandleReserve(w http.ResponseWriter, r *http.Request) {
	venueID, managerID, ok := h.parseIdentity(w, r)
	if !ok {
		return
	}

	var body ReserveSlotRequest
	if err := handlers.DecodeJSON(r, &body); err != nil {
		h.logger.Warn("reserved-slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	req, ok := h.buildRequest(w, venueID, managerID, body.Date, body.StartTime, body.Note)
	if !ok {
		return
	}

	if err := h.useCase.Reserve(r.Context(), req); err != nil {
		h.respondError(w, "POST /venues/{id}/reserved-slots", err)
		return
	}

	h.logger.Info("POST /venues/{id}/reserved-slots - Slot reserved: venue_id=%d, date=%s, time=%s",
		venueID, req.Date, req.StartTime)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

// HandleUnreserve DELETE /api/v1/venues/{venueId}/reserved-slots?date=&startTime=
// Только для менеджера площадки. Идемпотентна.
func (h *Handler) HandleUnreserve(w http.ResponseWriter, r *http.Request) {
	venueID, managerID, ok := h.parseIdentity(w, r)
	if !ok {
		return
	}

	req, ok := h.buildRequest(w, venueID, managerID, r.URL.Query().Get("date"), r.URL.Query().Get("startTime"), nil)
	if !ok {
		return
	}

	if err := h.useCase.Unreserve(r.Context(), req); err != nil {
		h.respondError(w, "DELETE /venues/{id}/reserved-slots", err)
		return
	}

	h.logger.Info("DELETE /venues/{id}/reserved-slots - Slot unreserved: venue_id=%d, date=%s, time=%s",
		venueID, req.Date, req.StartTime)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) parseIdentity(w http.ResponseWriter, r *http.Request) (venueID, managerID int64, ok bool) {
	vars := mux.Vars(r)
	venueID, err := strconv.ParseInt(vars["venueId"], 10, 64)
	if err != nil {
		h.logger.Warn("reserved-slots - Invalid venue ID: %v", err)
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

func (h *Handler) buildRequest(w http.ResponseWriter, venueID, managerID int64, dateStr, timeStr string, note *string) (*manageSlot.Request, bool) {
	date, err := types.NewDateStringFromString(dateStr)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return nil, false
	}
	startTime, err := types.NewTimeStringFromString(timeStr)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return nil, false
	}

	return &manageSlot.Request{
		ManagerID: managerID,
		VenueID:   venueID,
		Date:      date,
		StartTime: startTime,
		Note:      note,
	}, true
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

	case errors.Is(err, manageSlot.ErrContention):
		handlers.RespondConflict(w, msgContention)

	default:
		h.logger.Error("%s - Failed: %v", route, err)
		handlers.RespondInternalError(w)
	}
}

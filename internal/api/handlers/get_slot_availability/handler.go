package get_slot_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SVB-ReservationService/internal/api/handlers"
	getSlots "github.com/m04kA/SVB-ReservationService/internal/usecase/get_slot_availability"
	"github.com/m04kA/SVB-ReservationService/pkg/types"
)

const (
	msgInvalidVenueID   = "некорректный ID площадки"
	msgInvalidDateRange = "некорректный диапазон дат, ожидается from и to в формате YYYY-MM-DD"
	msgVenueNotFound    = "площадка не найдена"
)

type Handler struct {
	useCase GetSlotAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetSlotAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/venues/{venueId}/availability?from=YYYY-MM-DD&to=YYYY-MM-DD
// Публичный endpoint - без авторизации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	venueID, err := strconv.ParseInt(vars["venueId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /venues/{id}/availability - Invalid venue ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	from, err := types.NewDateStringFromString(r.URL.Query().Get("from"))
	if err != nil {
		h.logger.Warn("GET /venues/{id}/availability - Invalid from date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateRange)
		return
	}
	to, err := types.NewDateStringFromString(r.URL.Query().Get("to"))
	if err != nil {
		h.logger.Warn("GET /venues/{id}/availability - Invalid to date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateRange)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getSlots.Request{
		VenueID:  venueID,
		FromDate: from,
		ToDate:   to,
	})
	if err != nil {
		switch {
		case errors.Is(err, getSlots.ErrVenueNotFound):
			h.logger.Warn("GET /venues/{id}/availability - Venue not found: venue_id=%d", venueID)
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, getSlots.ErrInvalidVenueID), errors.Is(err, getSlots.ErrInvalidDateRange):
			h.logger.Warn("GET /venues/{id}/availability - Invalid request: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDateRange)

		default:
			h.logger.Error("GET /venues/{id}/availability - Failed: venue_id=%d, error=%v", venueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /venues/{id}/availability - %d slots returned: venue_id=%d", len(result.Slots), venueID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

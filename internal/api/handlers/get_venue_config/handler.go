package get_venue_config

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SVB-ReservationService/internal/api/handlers"
	"github.com/m04kA/SVB-ReservationService/internal/service/venueconfig"
)

const (
	msgInvalidVenueID = "некорректный ID площадки"
	msgVenueNotFound  = "площадка не найдена"
)

type Handler struct {
	service VenueConfigService
	logger  Logger
}

func NewHandler(service VenueConfigService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/venues/{venueId}/config
// Публичный endpoint - без авторизации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	venueID, err := strconv.ParseInt(vars["venueId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /venues/{id}/config - Invalid venue ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	cfg, err := h.service.GetConfig(r.Context(), venueID)
	if err != nil {
		if errors.Is(err, venueconfig.ErrVenueNotFound) {
			h.logger.Warn("GET /venues/{id}/config - Venue not found: venue_id=%d", venueID)
			handlers.RespondNotFound(w, msgVenueNotFound)
			return
		}
		h.logger.Error("GET /venues/{id}/config - Failed: venue_id=%d, error=%v", venueID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /venues/{id}/config - Config retrieved: venue_id=%d", venueID)
	handlers.RespondJSON(w, http.StatusOK, FromDomainConfig(venueID, cfg))
}

package update_venue_config

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SVB-ReservationService/internal/api/handlers"
	"github.com/m04kA/SVB-ReservationService/internal/api/middleware"
	identityClient "github.com/m04kA/SVB-ReservationService/internal/integrations/identityservice"
	"github.com/m04kA/SVB-ReservationService/internal/service/venueconfig"
)

const (
	msgInvalidVenueID     = "некорректный ID площадки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidConfig      = "некорректная конфигурация сетки слотов"
	msgForbidden          = "доступ запрещен"
	msgContention         = "не удалось применить изменение, попробуйте ещё раз"
)

type Handler struct {
	service        VenueConfigService
	identityClient IdentityServiceClient
	logger         Logger
}

func NewHandler(service VenueConfigService, identityClient IdentityServiceClient, logger Logger) *Handler {
	return &Handler{
		service:        service,
		identityClient: identityClient,
		logger:         logger,
	}
}

// Handle PUT /api/v1/venues/{venueId}/config
// Только для менеджера площадки. Если площадка ещё не заведена, заводит её.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	venueID, err := strconv.ParseInt(vars["venueId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /venues/{id}/config - Invalid venue ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "отсутствует идентификатор пользователя")
		return
	}

	actor, err := h.identityClient.GetActor(r.Context(), userID)
	if err != nil {
		if errors.Is(err, identityClient.ErrActorNotFound) {
			handlers.RespondForbidden(w, msgForbidden)
			return
		}
		h.logger.Error("PUT /venues/{id}/config - Failed to get actor %d: %v", userID, err)
		handlers.RespondInternalError(w)
		return
	}
	if !actor.ManagesVenue(venueID) {
		h.logger.Warn("PUT /venues/{id}/config - Access denied: user_id=%d, venue_id=%d", userID, venueID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	var req UpdateConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /venues/{id}/config - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	cfg, err := req.ToDomainConfig()
	if err != nil {
		h.logger.Warn("PUT /venues/{id}/config - Failed to parse config: %v", err)
		handlers.RespondBadRequest(w, msgInvalidConfig)
		return
	}

	updated, err := h.service.UpdateConfig(r.Context(), venueID, cfg)
	if err != nil && errors.Is(err, venueconfig.ErrVenueNotFound) {
		// Площадка ещё не заведена, создаём запись состояния
		state, createErr := h.service.CreateVenue(r.Context(), venueID, cfg)
		if createErr != nil {
			if errors.Is(createErr, venueconfig.ErrVenueAlreadyExists) {
				// Конкурентное создание, повторяем обновление
				updated, err = h.service.UpdateConfig(r.Context(), venueID, cfg)
			} else {
				err = createErr
			}
		} else {
			updated, err = &state.Config, nil
		}
	}
	if err != nil {
		switch {
		case errors.Is(err, venueconfig.ErrInvalidConfig):
			h.logger.Warn("PUT /venues/{id}/config - Invalid config: venue_id=%d, error=%v", venueID, err)
			handlers.RespondBadRequest(w, msgInvalidConfig)

		case errors.Is(err, venueconfig.ErrContention):
			h.logger.Warn("PUT /venues/{id}/config - Contention: venue_id=%d", venueID)
			handlers.RespondConflict(w, msgContention)

		default:
			h.logger.Error("PUT /venues/{id}/config - Failed: venue_id=%d, error=%v", venueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /venues/{id}/config - Config updated: venue_id=%d, user_id=%d", venueID, userID)
	handlers.RespondJSON(w, http.StatusOK, FromDomainConfig(venueID, updated))
}

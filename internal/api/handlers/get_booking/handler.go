package get_booking

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SVB-ReservationService/internal/api/handlers"
	"github.com/m04kA/SVB-ReservationService/internal/api/middleware"
	identityClient "github.com/m04kA/SVB-ReservationService/internal/integrations/identityservice"
	"github.com/m04kA/SVB-ReservationService/internal/service/bookings"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgNotFound         = "бронирование не найдено"
	msgForbidden        = "доступ запрещен"
)

type Handler struct {
	service        BookingService
	identityClient IdentityServiceClient
	logger         Logger
}

func NewHandler(service BookingService, identityClient IdentityServiceClient, logger Logger) *Handler {
	return &Handler{
		service:        service,
		identityClient: identityClient,
		logger:         logger,
	}
}

// Handle GET /api/v1/bookings/{bookingId}
// Бронирование видит его владелец или менеджер площадки
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID, err := uuid.Parse(vars["bookingId"])
	if err != nil {
		h.logger.Warn("GET /bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "отсутствует идентификатор пользователя")
		return
	}

	booking, err := h.service.GetByID(r.Context(), bookingID)
	if err != nil {
		if errors.Is(err, bookings.ErrBookingNotFound) {
			h.logger.Warn("GET /bookings/{id} - Not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("GET /bookings/{id} - Failed: booking_id=%s, error=%v", bookingID, err)
		handlers.RespondInternalError(w)
		return
	}

	if booking.UserID != userID {
		actor, err := h.identityClient.GetActor(r.Context(), userID)
		if err != nil {
			if errors.Is(err, identityClient.ErrActorNotFound) {
				handlers.RespondForbidden(w, msgForbidden)
				return
			}
			h.logger.Error("GET /bookings/{id} - Failed to get actor %d: %v", userID, err)
			handlers.RespondInternalError(w)
			return
		}
		if !actor.ManagesVenue(booking.VenueID) {
			h.logger.Warn("GET /bookings/{id} - Access denied: booking_id=%s, user_id=%d", bookingID, userID)
			handlers.RespondForbidden(w, msgForbidden)
			return
		}
	}

	h.logger.Info("GET /bookings/{id} - Booking retrieved: booking_id=%s, user_id=%d", bookingID, userID)
	handlers.RespondJSON(w, http.StatusOK, FromDomainBooking(booking))
}

package expire_booking

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SVB-ReservationService/internal/api/handlers"
	expireBooking "github.com/m04kA/SVB-ReservationService/internal/usecase/expire_booking"
)

const (
	msgInvalidBookingID  = "некорректный ID бронирования"
	msgNotFound          = "бронирование не найдено"
	msgAlreadyProcessed  = "бронирование уже обработано"
	msgHoldNotYetExpired = "время на оплату ещё не истекло"
)

// ExpireBookingResponse HTTP response model
type ExpireBookingResponse struct {
	ID        string `json:"id"`
	Status    string `json:"status"`
	ExpiredAt string `json:"expiredAt"`
}

type Handler struct {
	useCase ExpireBookingUseCase
	logger  Logger
}

func NewHandler(useCase ExpireBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/expire
// Срок удержания проверяется по серверным часам, клиенту недостаточно
// просто попросить.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID, err := uuid.Parse(vars["bookingId"])
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/expire - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &expireBooking.Request{BookingID: bookingID})
	if err != nil {
		switch {
		case errors.Is(err, expireBooking.ErrInvalidRequest):
			handlers.RespondBadRequest(w, msgInvalidBookingID)

		case errors.Is(err, expireBooking.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/expire - Not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, expireBooking.ErrAlreadyProcessed):
			h.logger.Warn("POST /bookings/{id}/expire - Already processed: booking_id=%s", bookingID)
			handlers.RespondConflict(w, msgAlreadyProcessed)

		case errors.Is(err, expireBooking.ErrHoldNotYetExpired):
			h.logger.Warn("POST /bookings/{id}/expire - Hold still active: booking_id=%s", bookingID)
			handlers.RespondUnprocessable(w, msgHoldNotYetExpired)

		default:
			h.logger.Error("POST /bookings/{id}/expire - Failed: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/expire - Booking expired: booking_id=%s", bookingID)
	handlers.RespondJSON(w, http.StatusOK, &ExpireBookingResponse{
		ID:        result.ID.String(),
		Status:    result.Status,
		ExpiredAt: result.ExpiredAt.Format(time.RFC3339),
	})
}

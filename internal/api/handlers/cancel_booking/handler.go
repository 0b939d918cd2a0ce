package cancel_booking

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SVB-ReservationService/internal/api/handlers"
	"github.com/m04kA/SVB-ReservationService/internal/api/middleware"
	cancelBooking "github.com/m04kA/SVB-ReservationService/internal/usecase/cancel_booking"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "бронирование не найдено"
	msgForbidden          = "доступ запрещен"
	msgAlreadyProcessed   = "бронирование уже обработано"
	msgCancellationWindow = "срок бесплатной отмены истёк"
	msgContention         = "не удалось применить изменение, попробуйте ещё раз"
)

type Handler struct {
	useCase CancelBookingUseCase
	logger  Logger
}

func NewHandler(useCase CancelBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID, err := uuid.Parse(vars["bookingId"])
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/cancel - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "отсутствует идентификатор пользователя")
		return
	}

	// Body опционален: отмена без причины допустима
	var req CancelBookingRequest
	if r.ContentLength > 0 {
		if err := handlers.DecodeJSON(r, &req); err != nil {
			h.logger.Warn("PATCH /bookings/{id}/cancel - Invalid request body: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
	}

	result, err := h.useCase.Execute(r.Context(), &cancelBooking.Request{
		UserID:    userID,
		BookingID: bookingID,
		Reason:    req.Reason,
	})
	if err != nil {
		switch {
		case errors.Is(err, cancelBooking.ErrInvalidRequest):
			h.logger.Warn("PATCH /bookings/{id}/cancel - Invalid request: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, cancelBooking.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/cancel - Not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, cancelBooking.ErrAccessDenied):
			h.logger.Warn("PATCH /bookings/{id}/cancel - Access denied: booking_id=%s, user_id=%d", bookingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, cancelBooking.ErrAlreadyProcessed):
			h.logger.Warn("PATCH /bookings/{id}/cancel - Already processed: booking_id=%s", bookingID)
			handlers.RespondConflict(w, msgAlreadyProcessed)

		case errors.Is(err, cancelBooking.ErrCancellationWindow):
			h.logger.Warn("PATCH /bookings/{id}/cancel - Cancellation window passed: booking_id=%s", bookingID)
			handlers.RespondUnprocessable(w, msgCancellationWindow)

		case errors.Is(err, cancelBooking.ErrContention):
			h.logger.Warn("PATCH /bookings/{id}/cancel - Contention: booking_id=%s", bookingID)
			handlers.RespondConflict(w, msgContention)

		default:
			h.logger.Error("PATCH /bookings/{id}/cancel - Failed: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/cancel - Booking cancelled: booking_id=%s, user_id=%d, status=%s",
		bookingID, userID, result.Status)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

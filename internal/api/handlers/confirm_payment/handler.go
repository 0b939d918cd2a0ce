package confirm_payment

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SVB-ReservationService/internal/api/handlers"
	"github.com/m04kA/SVB-ReservationService/internal/api/middleware"
	confirmPayment "github.com/m04kA/SVB-ReservationService/internal/usecase/confirm_payment"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "бронирование не найдено"
	msgForbidden          = "доступ запрещен"
	msgAlreadyProcessed   = "бронирование уже обработано"
	msgHoldExpired        = "время на оплату истекло"
	msgPaymentNotVerified = "платёж не подтверждён"
	msgAmountMismatch     = "сумма платежа не совпадает с размером предоплаты"
	msgSlotLost           = "слот больше недоступен"
	msgContention         = "не удалось применить изменение, попробуйте ещё раз"
)

type Handler struct {
	useCase ConfirmPaymentUseCase
	logger  Logger
}

func NewHandler(useCase ConfirmPaymentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/confirm-payment
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID, err := uuid.Parse(vars["bookingId"])
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/confirm-payment - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "отсутствует идентификатор пользователя")
		return
	}

	var req ConfirmPaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/confirm-payment - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &confirmPayment.Request{
		UserID:        userID,
		BookingID:     bookingID,
		TransactionID: req.TransactionID,
	})
	if err != nil {
		switch {
		case errors.Is(err, confirmPayment.ErrInvalidRequest):
			h.logger.Warn("POST /bookings/{id}/confirm-payment - Invalid request: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, confirmPayment.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/confirm-payment - Not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, confirmPayment.ErrAccessDenied):
			h.logger.Warn("POST /bookings/{id}/confirm-payment - Access denied: booking_id=%s, user_id=%d", bookingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, confirmPayment.ErrAlreadyProcessed):
			h.logger.Warn("POST /bookings/{id}/confirm-payment - Already processed: booking_id=%s", bookingID)
			handlers.RespondConflict(w, msgAlreadyProcessed)

		case errors.Is(err, confirmPayment.ErrHoldExpired):
			h.logger.Warn("POST /bookings/{id}/confirm-payment - Hold expired: booking_id=%s", bookingID)
			handlers.RespondUnprocessable(w, msgHoldExpired)

		case errors.Is(err, confirmPayment.ErrPaymentNotVerified):
			h.logger.Warn("POST /bookings/{id}/confirm-payment - Payment not verified: booking_id=%s", bookingID)
			handlers.RespondUnprocessable(w, msgPaymentNotVerified)

		case errors.Is(err, confirmPayment.ErrAmountMismatch):
			h.logger.Warn("POST /bookings/{id}/confirm-payment - Amount mismatch: booking_id=%s", bookingID)
			handlers.RespondUnprocessable(w, msgAmountMismatch)

		case errors.Is(err, confirmPayment.ErrSlotLost):
			h.logger.Warn("POST /bookings/{id}/confirm-payment - Slot lost: booking_id=%s", bookingID)
			handlers.RespondConflict(w, msgSlotLost)

		case errors.Is(err, confirmPayment.ErrContention):
			h.logger.Warn("POST /bookings/{id}/confirm-payment - Contention: booking_id=%s", bookingID)
			handlers.RespondConflict(w, msgContention)

		default:
			h.logger.Error("POST /bookings/{id}/confirm-payment - Failed: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/confirm-payment - Payment confirmed: booking_id=%s, user_id=%d", bookingID, userID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SVB-ReservationService/internal/api/handlers"
	"github.com/m04kA/SVB-ReservationService/internal/api/middleware"
	createBooking "github.com/m04kA/SVB-ReservationService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректные дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgVenueNotFound      = "площадка не найдена"
	msgSlotNotOnGrid      = "слот не входит в сетку площадки"
	msgSlotInPast         = "слот уже начался"
	msgSlotBlocked        = "слот закрыт для бронирования"
	msgSlotAlreadyBooked  = "слот уже забронирован"
	msgSlotHeld           = "слот удержан другим пользователем"
	msgContention         = "слот не удалось захватить, попробуйте ещё раз"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "отсутствует идентификатор пользователя")
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidRequest):
			h.logger.Warn("POST /bookings - Invalid request: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, createBooking.ErrVenueNotFound):
			h.logger.Warn("POST /bookings - Venue not found: venue_id=%d", req.VenueID)
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, createBooking.ErrSlotNotOnGrid):
			h.logger.Warn("POST /bookings - Slot not on grid: venue_id=%d, user_id=%d", req.VenueID, userID)
			handlers.RespondBadRequest(w, msgSlotNotOnGrid)

		case errors.Is(err, createBooking.ErrSlotInPast):
			h.logger.Warn("POST /bookings - Slot in past: venue_id=%d, user_id=%d", req.VenueID, userID)
			handlers.RespondBadRequest(w, msgSlotInPast)

		case errors.Is(err, createBooking.ErrSlotBlocked):
			h.logger.Warn("POST /bookings - Slot blocked: venue_id=%d, user_id=%d", req.VenueID, userID)
			handlers.RespondConflict(w, msgSlotBlocked)

		case errors.Is(err, createBooking.ErrSlotAlreadyBooked):
			h.logger.Warn("POST /bookings - Slot already booked: venue_id=%d, user_id=%d", req.VenueID, userID)
			handlers.RespondConflict(w, msgSlotAlreadyBooked)

		case errors.Is(err, createBooking.ErrSlotHeldByOther):
			h.logger.Warn("POST /bookings - Slot held by other: venue_id=%d, user_id=%d", req.VenueID, userID)
			handlers.RespondConflict(w, msgSlotHeld)

		case errors.Is(err, createBooking.ErrContention):
			h.logger.Warn("POST /bookings - Contention: venue_id=%d, user_id=%d", req.VenueID, userID)
			handlers.RespondConflict(w, msgContention)

		default:
			h.logger.Error("POST /bookings - Failed: venue_id=%d, user_id=%d, error=%v", req.VenueID, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: booking_id=%s, user_id=%d, venue_id=%d",
		result.ID, userID, req.VenueID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

package get_user_bookings

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SVB-ReservationService/internal/api/handlers"
	"github.com/m04kA/SVB-ReservationService/internal/api/middleware"
	"github.com/m04kA/SVB-ReservationService/internal/domain"
)

const (
	msgInvalidUserID = "некорректный ID пользователя"
	msgInvalidStatus = "некорректный статус бронирования"
	msgForbidden     = "доступ запрещен"
)

// BookingListItem HTTP response model
type BookingListItem struct {
	ID            string  `json:"id"`
	VenueID       int64   `json:"venueId"`
	Date          string  `json:"date"`
	StartTime     string  `json:"startTime"`
	EndTime       string  `json:"endTime"`
	BookingType   string  `json:"bookingType"`
	Status        string  `json:"status"`
	Amount        string  `json:"amount"`
	HoldExpiresAt *string `json:"holdExpiresAt,omitempty"`
	CreatedAt     string  `json:"createdAt"`
}

// BookingListResponse HTTP response model
type BookingListResponse struct {
	Bookings []BookingListItem `json:"bookings"`
}

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/users/{userId}/bookings?status=
// Пользователь видит только собственную историю
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	pathUserID, err := strconv.ParseInt(vars["userId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /users/{id}/bookings - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "отсутствует идентификатор пользователя")
		return
	}
	if pathUserID != userID {
		h.logger.Warn("GET /users/{id}/bookings - Access denied: path_user_id=%d, user_id=%d", pathUserID, userID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	var status *domain.BookingStatus
	if statusStr := r.URL.Query().Get("status"); statusStr != "" {
		s := domain.BookingStatus(statusStr)
		if !s.IsValid() {
			h.logger.Warn("GET /users/{id}/bookings - Invalid status: %s", statusStr)
			handlers.RespondBadRequest(w, msgInvalidStatus)
			return
		}
		status = &s
	}

	list, err := h.service.GetUserBookings(r.Context(), userID, status)
	if err != nil {
		h.logger.Error("GET /users/{id}/bookings - Failed: user_id=%d, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	items := make([]BookingListItem, 0, len(list))
	for _, b := range list {
		item := BookingListItem{
			ID:          b.ID.String(),
			VenueID:     b.VenueID,
			Date:        b.Date.String(),
			StartTime:   b.StartTime.String(),
			EndTime:     b.EndTime.String(),
			BookingType: string(b.BookingType),
			Status:      string(b.Status),
			Amount:      b.Amount.String(),
			CreatedAt:   b.CreatedAt.Format(time.RFC3339),
		}
		if b.HoldExpiresAt != nil {
			s := b.HoldExpiresAt.Format(time.RFC3339)
			item.HoldExpiresAt = &s
		}
		items = append(items, item)
	}

	h.logger.Info("GET /users/{id}/bookings - %d bookings returned: user_id=%d", len(items), userID)
	handlers.RespondJSON(w, http.StatusOK, &BookingListResponse{Bookings: items})
}

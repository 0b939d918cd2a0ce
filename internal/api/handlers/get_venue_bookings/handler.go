package get_venue_bookings

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SVB-ReservationService/internal/api/handlers"
	"github.com/m04kA/SVB-ReservationService/internal/api/middleware"
	"github.com/m04kA/SVB-ReservationService/internal/domain"
	identityClient "github.com/m04kA/SVB-ReservationService/internal/integrations/identityservice"
	"github.com/m04kA/SVB-ReservationService/pkg/types"
)

const (
	msgInvalidVenueID = "некорректный ID площадки"
	msgInvalidParams  = "некорректные параметры запроса"
	msgForbidden      = "доступ запрещен"
)

// BookingItem HTTP response model
type BookingItem struct {
	ID            string  `json:"id"`
	UserID        int64   `json:"userId"`
	Date          string  `json:"date"`
	StartTime     string  `json:"startTime"`
	EndTime       string  `json:"endTime"`
	BookingType   string  `json:"bookingType"`
	Status        string  `json:"status"`
	Amount        string  `json:"amount"`
	CustomerName  *string `json:"customerName,omitempty"`
	CustomerPhone *string `json:"customerPhone,omitempty"`
	CreatedAt     string  `json:"createdAt"`
}

// VenueBookingsResponse HTTP response model
type VenueBookingsResponse struct {
	VenueID  int64         `json:"venueId"`
	Bookings []BookingItem `json:"bookings"`
}

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

// Handle GET /api/v1/venues/{venueId}/bookings?fromDate=&toDate=&status=&includeInactive=
// Только для менеджера площадки
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	venueID, err := strconv.ParseInt(vars["venueId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /venues/{id}/bookings - Invalid venue ID: %v", err)
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
		h.logger.Error("GET /venues/{id}/bookings - Failed to get actor %d: %v", userID, err)
		handlers.RespondInternalError(w)
		return
	}
	if !actor.ManagesVenue(venueID) {
		h.logger.Warn("GET /venues/{id}/bookings - Access denied: user_id=%d, venue_id=%d", userID, venueID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	filter, err := parseFilter(venueID, r)
	if err != nil {
		h.logger.Warn("GET /venues/{id}/bookings - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	list, err := h.service.GetVenueBookings(r.Context(), filter)
	if err != nil {
		h.logger.Error("GET /venues/{id}/bookings - Failed: venue_id=%d, error=%v", venueID, err)
		handlers.RespondInternalError(w)
		return
	}

	items := make([]BookingItem, 0, len(list))
	for _, b := range list {
		items = append(items, BookingItem{
			ID:            b.ID.String(),
			UserID:        b.UserID,
			Date:          b.Date.String(),
			StartTime:     b.StartTime.String(),
			EndTime:       b.EndTime.String(),
			BookingType:   string(b.BookingType),
			Status:        string(b.Status),
			Amount:        b.Amount.String(),
			CustomerName:  b.CustomerName,
			CustomerPhone: b.CustomerPhone,
			CreatedAt:     b.CreatedAt.Format(time.RFC3339),
		})
	}

	h.logger.Info("GET /venues/{id}/bookings - %d bookings returned: venue_id=%d", len(items), venueID)
	handlers.RespondJSON(w, http.StatusOK, &VenueBookingsResponse{VenueID: venueID, Bookings: items})
}

func parseFilter(venueID int64, r *http.Request) (domain.VenueBookingsFilter, error) {
	filter := domain.VenueBookingsFilter{VenueID: venueID}
	query := r.URL.Query()

	if fromStr := query.Get("fromDate"); fromStr != "" {
		from, err := types.NewDateStringFromString(fromStr)
		if err != nil {
			return filter, err
		}
		filter.StartDate = &from
	}
	if toStr := query.Get("toDate"); toStr != "" {
		to, err := types.NewDateStringFromString(toStr)
		if err != nil {
			return filter, err
		}
		filter.EndDate = &to
	}
	if statusStr := query.Get("status"); statusStr != "" {
		status := domain.BookingStatus(statusStr)
		if !status.IsValid() {
			return filter, errors.New("unknown status " + statusStr)
		}
		filter.Status = &status
	}
	if includeStr := query.Get("includeInactive"); includeStr != "" {
		include, err := strconv.ParseBool(includeStr)
		if err != nil {
			return filter, err
		}
		filter.IncludeInactive = include
	}
	return filter, nil
}

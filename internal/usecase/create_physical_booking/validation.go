package create_physical_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SVB-ReservationService/internal/domain"
	"github.com/m04kA/SVB-ReservationService/pkg/types"
)

func validateRequest(req *Request) error {
	if req.ManagerID <= 0 {
		return fmt.Errorf("%w: manager id must be positive", ErrInvalidRequest)
	}
	if req.VenueID <= 0 {
		return fmt.Errorf("%w: venue id must be positive", ErrInvalidRequest)
	}
	if err := req.Date.Validate(); err != nil {
		return fmt.Errorf("%w: date: %v", ErrInvalidRequest, err)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: startTime: %v", ErrInvalidRequest, err)
	}
	if req.CustomerName == "" {
		return fmt.Errorf("%w: customer name must not be empty", ErrInvalidRequest)
	}
	if len(req.CustomerName) > domain.MaxCustomerNameLength {
		return fmt.Errorf("%w: customer name is too long", ErrInvalidRequest)
	}
	if req.Amount != nil && req.Amount.IsNegative() {
		return fmt.Errorf("%w: amount must not be negative", ErrInvalidRequest)
	}
	return nil
}

// validateSlotOnGrid проверяет принадлежность слота сетке площадки
func validateSlotOnGrid(cfg *domain.SlotConfig, date types.DateString, start types.TimeString) error {
	weekday, err := date.Weekday()
	if err != nil {
		return fmt.Errorf("%w: date: %v", ErrInvalidRequest, err)
	}
	if !cfg.IsWorkingDay(weekday) {
		return fmt.Errorf("%w: venue does not work on %s", ErrSlotNotOnGrid, weekday)
	}

	startMin, err := cfg.StartTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: config startTime: %v", ErrInternal, err)
	}
	endMin, err := cfg.EndTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: config endTime: %v", ErrInternal, err)
	}
	slotMin, err := start.Minutes()
	if err != nil {
		return fmt.Errorf("%w: startTime: %v", ErrInvalidRequest, err)
	}

	if slotMin < startMin || slotMin+cfg.SlotDurationMinutes > endMin {
		return fmt.Errorf("%w: %s is outside working hours %s-%s", ErrSlotNotOnGrid, start, cfg.StartTime, cfg.EndTime)
	}
	if (slotMin-startMin)%cfg.SlotDurationMinutes != 0 {
		return fmt.Errorf("%w: %s is not aligned to the %d minute grid", ErrSlotNotOnGrid, start, cfg.SlotDurationMinutes)
	}
	return nil
}

// validateSlotInFuture проверяет, что начало слота ещё не прошло
func validateSlotInFuture(cfg *domain.SlotConfig, date types.DateString, start types.TimeString, now time.Time) error {
	loc := cfg.Location()
	day, err := date.Time(loc)
	if err != nil {
		return fmt.Errorf("%w: date: %v", ErrInvalidRequest, err)
	}
	slotStart, err := start.At(day, loc)
	if err != nil {
		return fmt.Errorf("%w: startTime: %v", ErrInvalidRequest, err)
	}
	if slotStart.Before(now) {
		return fmt.Errorf("%w: slot %s %s already started", ErrSlotInPast, date, start)
	}
	return nil
}

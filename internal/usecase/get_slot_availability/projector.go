package get_slot_availability

import (
	"fmt"
	"time"

	"github.com/m04kA/SVB-ReservationService/internal/domain"
	"github.com/m04kA/SVB-ReservationService/pkg/types"
)

// projectSlots разворачивает конфигурацию сетки по дням диапазона и накладывает
// исключения. Приоритет статусов: blocked > booked > held (не истёкшее) >
// reserved > available. Слоты, начавшиеся раньше now, получают статус PAST.
func projectSlots(state *domain.VenueSlotState, from, to types.DateString, now time.Time) ([]domain.ProjectedSlot, error) {
	cfg := state.Config
	loc := cfg.Location()

	fromDay, err := from.Time(loc)
	if err != nil {
		return nil, fmt.Errorf("parse fromDate: %w", err)
	}
	toDay, err := to.Time(loc)
	if err != nil {
		return nil, fmt.Errorf("parse toDate: %w", err)
	}

	startMin, err := cfg.StartTime.Minutes()
	if err != nil {
		return nil, fmt.Errorf("config startTime: %w", err)
	}
	endMin, err := cfg.EndTime.Minutes()
	if err != nil {
		return nil, fmt.Errorf("config endTime: %w", err)
	}
	if cfg.SlotDurationMinutes <= 0 {
		return nil, fmt.Errorf("config slotDurationMinutes must be positive, got %d", cfg.SlotDurationMinutes)
	}

	slots := make([]domain.ProjectedSlot, 0)
	for day := fromDay; !day.After(toDay); day = day.AddDate(0, 0, 1) {
		if !cfg.IsWorkingDay(day.Weekday()) {
			continue
		}
		date := types.NewDateString(day)

		for m := startMin; m+cfg.SlotDurationMinutes <= endMin; m += cfg.SlotDurationMinutes {
			start, err := cfg.StartTime.AddMinutes(m - startMin)
			if err != nil {
				return nil, fmt.Errorf("slot start at %d minutes: %w", m, err)
			}
			slotStart, err := start.At(day, loc)
			if err != nil {
				return nil, fmt.Errorf("slot instant %s %s: %w", date, start, err)
			}

			slots = append(slots, domain.ProjectedSlot{
				Date:            date,
				StartTime:       start,
				DurationMinutes: cfg.SlotDurationMinutes,
				Status:          resolveStatus(state, date, start, slotStart, now),
			})
		}
	}
	return slots, nil
}

func resolveStatus(state *domain.VenueSlotState, date types.DateString, start types.TimeString, slotStart, now time.Time) domain.SlotStatus {
	if slotStart.Before(now) {
		return domain.SlotPast
	}
	if state.FindBlocked(date, start) != nil {
		return domain.SlotBlocked
	}
	if state.FindBooking(date, start) != nil {
		return domain.SlotBooked
	}
	if hold := state.FindHold(date, start); hold != nil && !hold.IsExpired(now) {
		return domain.SlotHeld
	}
	if state.FindReserved(date, start) != nil {
		return domain.SlotReserved
	}
	return domain.SlotAvailable
}

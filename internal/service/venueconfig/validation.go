package venueconfig

import (
	"fmt"
	"time"

	"github.com/m04kA/SVB-ReservationService/internal/domain"
)

func validateConfig(cfg domain.SlotConfig) error {
	if err := cfg.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: startTime: %v", ErrInvalidConfig, err)
	}
	if err := cfg.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: endTime: %v", ErrInvalidConfig, err)
	}
	if !cfg.StartTime.IsBefore(cfg.EndTime) {
		return fmt.Errorf("%w: startTime %s must be before endTime %s", ErrInvalidConfig, cfg.StartTime, cfg.EndTime)
	}
	if cfg.SlotDurationMinutes < domain.MinSlotDurationMinutes || cfg.SlotDurationMinutes > domain.MaxSlotDurationMinutes {
		return fmt.Errorf("%w: slotDurationMinutes must be between %d and %d", ErrInvalidConfig, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
	}
	if len(cfg.DaysOfWeek) == 0 {
		return fmt.Errorf("%w: daysOfWeek must not be empty", ErrInvalidConfig)
	}
	for _, d := range cfg.DaysOfWeek {
		if d < time.Sunday || d > time.Saturday {
			return fmt.Errorf("%w: invalid weekday %d", ErrInvalidConfig, d)
		}
	}
	if cfg.Timezone != "" {
		if _, err := time.LoadLocation(cfg.Timezone); err != nil {
			return fmt.Errorf("%w: unknown timezone %q", ErrInvalidConfig, cfg.Timezone)
		}
	}
	if cfg.PricePerSlot.IsNegative() {
		return fmt.Errorf("%w: pricePerSlot must not be negative", ErrInvalidConfig)
	}
	if cfg.AdvancePercent < domain.MinAdvancePercent || cfg.AdvancePercent > domain.MaxAdvancePercent {
		return fmt.Errorf("%w: advancePercent must be between %d and %d", ErrInvalidConfig, domain.MinAdvancePercent, domain.MaxAdvancePercent)
	}
	if cfg.CancellationHoursLimit < 0 || cfg.CancellationHoursLimit > domain.MaxCancellationHours {
		return fmt.Errorf("%w: cancellationHoursLimit must be between 0 and %d", ErrInvalidConfig, domain.MaxCancellationHours)
	}
	return nil
}

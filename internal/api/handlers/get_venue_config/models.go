package get_venue_config

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/SVB-ReservationService/internal/domain"
)

// ConfigResponse HTTP response model
type ConfigResponse struct {
	VenueID                int64           `json:"venueId"`
	StartTime              string          `json:"startTime"`
	EndTime                string          `json:"endTime"`
	SlotDurationMinutes    int             `json:"slotDurationMinutes"`
	DaysOfWeek             []int           `json:"daysOfWeek"`
	Timezone               string          `json:"timezone"`
	PricePerSlot           decimal.Decimal `json:"pricePerSlot"`
	AdvancePercent         int             `json:"advancePercent"`
	CancellationHoursLimit int             `json:"cancellationHoursLimit"`
}

// FromDomainConfig конвертирует доменную конфигурацию в HTTP response
func FromDomainConfig(venueID int64, cfg *domain.SlotConfig) *ConfigResponse {
	days := make([]int, 0, len(cfg.DaysOfWeek))
	for _, d := range cfg.DaysOfWeek {
		days = append(days, int(d))
	}
	return &ConfigResponse{
		VenueID:                venueID,
		StartTime:              cfg.StartTime.String(),
		EndTime:                cfg.EndTime.String(),
		SlotDurationMinutes:    cfg.SlotDurationMinutes,
		DaysOfWeek:             days,
		Timezone:               cfg.Timezone,
		PricePerSlot:           cfg.PricePerSlot,
		AdvancePercent:         cfg.AdvancePercent,
		CancellationHoursLimit: cfg.CancellationHoursLimit,
	}
}

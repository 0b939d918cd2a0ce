package update_venue_config

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SVB-ReservationService/internal/domain"
	"github.com/m04kA/SVB-ReservationService/pkg/types"
)

// UpdateConfigRequest HTTP request model
type UpdateConfigRequest struct {
	StartTime              string          `json:"startTime"`              // "08:00"
	EndTime                string          `json:"endTime"`                // "22:00"
	SlotDurationMinutes    int             `json:"slotDurationMinutes"`    // 60
	DaysOfWeek             []int           `json:"daysOfWeek"`             // 0=Sunday ... 6=Saturday
	Timezone               string          `json:"timezone"`               // "Europe/Moscow"
	PricePerSlot           decimal.Decimal `json:"pricePerSlot"`           // "1500.00"
	AdvancePercent         int             `json:"advancePercent"`         // 100
	CancellationHoursLimit int             `json:"cancellationHoursLimit"` // 5
}

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

// ToDomainConfig конвертирует HTTP запрос в доменную конфигурацию
func (r *UpdateConfigRequest) ToDomainConfig() (domain.SlotConfig, error) {
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return domain.SlotConfig{}, err
	}
	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return domain.SlotConfig{}, err
	}

	days := make([]time.Weekday, 0, len(r.DaysOfWeek))
	for _, d := range r.DaysOfWeek {
		days = append(days, time.Weekday(d))
	}

	return domain.SlotConfig{
		StartTime:              startTime,
		EndTime:                endTime,
		SlotDurationMinutes:    r.SlotDurationMinutes,
		DaysOfWeek:             days,
		Timezone:               r.Timezone,
		PricePerSlot:           r.PricePerSlot,
		AdvancePercent:         r.AdvancePercent,
		CancellationHoursLimit: r.CancellationHoursLimit,
	}, nil
}

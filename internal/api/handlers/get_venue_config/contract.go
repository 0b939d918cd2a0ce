package get_venue_config

import (
	"context"

	"github.com/m04kA/SVB-ReservationService/internal/domain"
)

type VenueConfigService interface {
	GetConfig(ctx context.Context, venueID int64) (*domain.SlotConfig, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package update_venue_config

import (
	"context"

	"github.com/m04kA/SVB-ReservationService/internal/domain"
	"github.com/m04kA/SVB-ReservationService/internal/integrations/identityservice"
)

type VenueConfigService interface {
	CreateVenue(ctx context.Context, venueID int64, cfg domain.SlotConfig) (*domain.VenueSlotState, error)
	UpdateConfig(ctx context.Context, venueID int64, cfg domain.SlotConfig) (*domain.SlotConfig, error)
}

type IdentityServiceClient interface {
	GetActor(ctx context.Context, userID int64) (*identityservice.Actor, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

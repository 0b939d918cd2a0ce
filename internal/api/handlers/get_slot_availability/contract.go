package get_slot_availability

import (
	"context"

	getSlots "github.com/m04kA/SVB-ReservationService/internal/usecase/get_slot_availability"
)

type GetSlotAvailabilityUseCase interface {
	Execute(ctx context.Context, req *getSlots.Request) (*getSlots.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package create_physical_booking

import (
	"context"

	createPhysical "github.com/m04kA/SVB-ReservationService/internal/usecase/create_physical_booking"
)

type CreatePhysicalBookingUseCase interface {
	Execute(ctx context.Context, req *createPhysical.Request) (*createPhysical.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package expire_booking

import (
	"context"

	expireBooking "github.com/m04kA/SVB-ReservationService/internal/usecase/expire_booking"
)

type ExpireBookingUseCase interface {
	Execute(ctx context.Context, req *expireBooking.Request) (*expireBooking.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

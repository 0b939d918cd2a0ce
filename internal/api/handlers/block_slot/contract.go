package block_slot

import (
	"context"

	manageSlot "github.com/m04kA/SVB-ReservationService/internal/usecase/manage_slot"
)

type ManageSlotUseCase interface {
	Block(ctx context.Context, req *manageSlot.Request) error
	Unblock(ctx context.Context, req *manageSlot.Request) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

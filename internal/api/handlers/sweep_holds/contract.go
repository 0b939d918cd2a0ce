package sweep_holds

import (
	"context"

	sweep "github.com/m04kA/SVB-ReservationService/internal/usecase/sweep_expired_holds"
)

// SweepUseCase интерфейс use case для чистки истёкших удержаний
type SweepUseCase interface {
	Execute(ctx context.Context, trigger string) (*sweep.Result, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

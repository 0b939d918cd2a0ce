package sweep_holds

import (
	"net/http"

	"github.com/m04kA/SVB-ReservationService/internal/api/handlers"
	sweep "github.com/m04kA/SVB-ReservationService/internal/usecase/sweep_expired_holds"
)

const msgSweepFailed = "не удалось выполнить чистку"

type Handler struct {
	useCase SweepUseCase
	logger  Logger
}

func NewHandler(useCase SweepUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /internal/sweep
// Ручной запуск чистки истёкших удержаний, в дополнение к фоновому тикеру.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.useCase.Execute(r.Context(), sweep.TriggerHTTP)
	if err != nil {
		h.logger.Error("POST /internal/sweep - Failed: %v", err)
		handlers.RespondError(w, http.StatusInternalServerError, msgSweepFailed)
		return
	}

	h.logger.Info("POST /internal/sweep - Done: venues=%d, removed=%d, errors=%d",
		result.VenuesScanned, result.HoldsRemoved, result.Errors)
	handlers.RespondJSON(w, http.StatusOK, result)
}

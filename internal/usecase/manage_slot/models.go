package manage_slot

import "github.com/m04kA/SVB-ReservationService/pkg/types"

// Request модель запроса пометки слота менеджером
type Request struct {
	ManagerID int64            // ID менеджера из контекста авторизации
	VenueID   int64            // ID площадки
	Date      types.DateString // Дата слота
	StartTime types.TimeString // Время начала слота
	Note      *string          // Причина блокировки или комментарий пометки
}

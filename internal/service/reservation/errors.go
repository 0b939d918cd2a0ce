package reservation

import "errors"

var (
	// ErrVenueNotFound - состояние слотов для площадки не заведено.
	ErrVenueNotFound = errors.New("reservation: venue state not found")

	// ErrSlotBlocked - слот закрыт менеджером.
	ErrSlotBlocked = errors.New("reservation: slot is blocked")

	// ErrSlotAlreadyBooked - слот уже занят подтверждённым бронированием.
	ErrSlotAlreadyBooked = errors.New("reservation: slot is already booked")

	// ErrSlotHeldByOther - слот удержан другим пользователем, удержание ещё не истекло.
	ErrSlotHeldByOther = errors.New("reservation: slot is held by another user")

	// ErrContention - не удалось применить изменение за отведённое число попыток.
	ErrContention = errors.New("reservation: too much contention on venue state")

	// ErrInternal - инфраструктурная ошибка хранилища.
	ErrInternal = errors.New("reservation: internal error")
)

package venuestate

import "errors"

var (
	// ErrVenueStateNotFound возвращается, когда запись площадки не найдена
	ErrVenueStateNotFound = errors.New("venuestate.repository: venue slot state not found")

	// ErrVersionConflict возвращается, когда запись изменилась между чтением и записью
	// Вызывающая сторона должна перечитать запись и повторить цикл read-validate-write
	ErrVersionConflict = errors.New("venuestate.repository: version conflict on write")

	// ErrVenueStateExists возвращается при попытке создать уже существующую запись
	ErrVenueStateExists = errors.New("venuestate.repository: venue slot state already exists")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("venuestate.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("venuestate.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("venuestate.repository: failed to scan row")

	// ErrMarshalState возвращается при ошибке сериализации коллекций записи
	ErrMarshalState = errors.New("venuestate.repository: failed to marshal state")

	// ErrUnmarshalState возвращается при ошибке десериализации коллекций записи
	ErrUnmarshalState = errors.New("venuestate.repository: failed to unmarshal state")
)

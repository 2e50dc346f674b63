package availability

import "errors"

var (
	// ErrRoomNotFound возвращается, когда комната не найдена
	ErrRoomNotFound = errors.New("service.availability: room not found")

	// ErrInvalidSpan возвращается при некорректных границах запроса
	ErrInvalidSpan = errors.New("service.availability: invalid span")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("service.availability: internal error")
)

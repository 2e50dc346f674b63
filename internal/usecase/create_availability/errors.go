package create_availability

import "errors"

var (
	// ErrInvalidData возвращается при некорректных входных данных
	ErrInvalidData = errors.New("usecase.create_availability: invalid data")

	// ErrRoomNotFound возвращается, когда комната не найдена
	ErrRoomNotFound = errors.New("usecase.create_availability: room not found")

	// ErrRoomOffline возвращается, когда комната в offline
	ErrRoomOffline = errors.New("usecase.create_availability: room is offline")

	// ErrAccessDenied возвращается, когда вызывающий не владелец комнаты
	ErrAccessDenied = errors.New("usecase.create_availability: access denied")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("usecase.create_availability: internal error")
)

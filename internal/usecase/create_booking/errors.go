package create_booking

import "errors"

var (
	// ErrInvalidData возвращается при некорректных входных данных
	ErrInvalidData = errors.New("usecase.create_booking: invalid data")

	// ErrRoomNotFound возвращается, когда комната не найдена
	ErrRoomNotFound = errors.New("usecase.create_booking: room not found")

	// ErrHostNotFound возвращается, когда хозяин гостя не найден
	ErrHostNotFound = errors.New("usecase.create_booking: host not found")

	// ErrRoomOffline возвращается при попытке бронировать offline-комнату
	ErrRoomOffline = errors.New("usecase.create_booking: room is offline")

	// ErrGuestNotAdmitted возвращается, когда тип гостя не проходит
	// предпочтение владельца комнаты
	ErrGuestNotAdmitted = errors.New("usecase.create_booking: guest type not admitted by owner preference")

	// ErrNotAvailable возвращается, когда комната занята или диапазон
	// не накрыт доступностью целиком
	ErrNotAvailable = errors.New("usecase.create_booking: room not available for requested dates")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("usecase.create_booking: internal error")
)

package bookings

import "errors"

var (
	// ErrIntervalNotFound возвращается, когда интервал не найден
	ErrIntervalNotFound = errors.New("service.bookings: interval not found")

	// ErrRoomNotFound возвращается, когда комната не найдена
	ErrRoomNotFound = errors.New("service.bookings: room not found")

	// ErrNotOccupancy возвращается, когда интервал не является бронью
	ErrNotOccupancy = errors.New("service.bookings: interval is not an occupancy")

	// ErrAccessDenied возвращается, когда вызывающий не вправе менять бронь
	ErrAccessDenied = errors.New("service.bookings: access denied")

	// ErrInvalidSpan возвращается при некорректных границах брони
	ErrInvalidSpan = errors.New("service.bookings: invalid span")

	// ErrResizeConflict возвращается, когда расширение брони упирается
	// в занятость или границу доступности
	ErrResizeConflict = errors.New("service.bookings: resize conflict")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("service.bookings: internal error")
)

package edit_availability

import "errors"

var (
	// ErrInvalidData возвращается при некорректных входных данных
	ErrInvalidData = errors.New("usecase.edit_availability: invalid data")

	// ErrIntervalNotFound возвращается, когда интервал не найден
	ErrIntervalNotFound = errors.New("usecase.edit_availability: interval not found")

	// ErrNotAvailability возвращается, когда интервал не является
	// окном доступности
	ErrNotAvailability = errors.New("usecase.edit_availability: interval is not an availability window")

	// ErrAccessDenied возвращается, когда вызывающий не владелец комнаты
	ErrAccessDenied = errors.New("usecase.edit_availability: access denied")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("usecase.edit_availability: internal error")
)

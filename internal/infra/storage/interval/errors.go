package interval

import "errors"

var (
	// ErrIntervalNotFound возвращается, когда интервал не найден
	ErrIntervalNotFound = errors.New("interval.repository: interval not found")

	// ErrOverlap возвращается, когда вставка нарушает exclusion constraint
	// (двойное бронирование одной комнаты)
	ErrOverlap = errors.New("interval.repository: occupancy overlap")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("interval.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("interval.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("interval.repository: failed to scan row")
)

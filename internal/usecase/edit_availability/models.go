package edit_availability

import "time"

// Request запрос на изменение границ окна доступности
type Request struct {
	IntervalID int64
	CallerID   int64
	StartDate  time.Time
	EndDate    time.Time
}

// Response итог изменения: новые границы и статистика по вытесненным гостям
type Response struct {
	IntervalID int64
	RoomID     int64
	StartAt    time.Time
	EndAt      time.Time

	DisplacedGuests  int
	ReassignedGuests int
	UnassignedGuests int
}

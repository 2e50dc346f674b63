package delete_availability

// Request запрос на отзыв окна доступности
type Request struct {
	IntervalID int64
	CallerID   int64
}

// Response итог отзыва: статистика по переселённым гостям
type Response struct {
	RoomID int64

	DisplacedGuests  int
	ReassignedGuests int
	UnassignedGuests int
}

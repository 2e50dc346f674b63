package create_availability

import "time"

// Request запрос на объявление доступности комнаты.
// Даты - календарные дни; окно открывается в 11:59 первого дня
// и закрывается в 12:01 последнего.
type Request struct {
	RoomID    int64
	CallerID  int64
	StartDate time.Time
	EndDate   time.Time
}

// Response итоговый availability-интервал. После слияния объявленное
// окно может оказаться частью более широкого существующего интервала -
// возвращается накрывающий.
type Response struct {
	IntervalID int64
	RoomID     int64
	StartAt    time.Time
	EndAt      time.Time
}

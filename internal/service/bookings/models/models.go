package models

import "time"

// Interval интервал календаря комнаты для выдачи наружу
type Interval struct {
	ID        int64
	RoomID    int64
	Kind      string
	StartAt   time.Time
	EndAt     time.Time
	Title     string
	GuestName *string
	GuestType *int
	CreatorID *int64
}

// ResizeRequest запрос на изменение границ брони
type ResizeRequest struct {
	IntervalID int64
	CallerID   int64
	NewStart   time.Time
	NewEnd     time.Time
}

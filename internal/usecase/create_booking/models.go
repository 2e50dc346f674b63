package create_booking

import (
	"time"

	"github.com/m04kA/HC-RoomService/internal/domain"
)

// Request запрос на создание брони. Даты заезда и выезда - календарные
// дни; точное время суток выставляет нормализатор.
type Request struct {
	RoomID    int64
	HostID    int64
	GuestName string
	GuestType domain.GuestType
	StartDate time.Time
	EndDate   time.Time
}

// Response созданная бронь
type Response struct {
	IntervalID int64
	RoomID     int64
	StartAt    time.Time
	EndAt      time.Time
	Title      string
}

package get_room_intervals

import (
	"context"

	"github.com/m04kA/HC-RoomService/internal/domain"
	"github.com/m04kA/HC-RoomService/internal/service/bookings/models"
)

type BookingsService interface {
	GetRoomIntervals(ctx context.Context, roomID int64, kind *domain.IntervalKind) ([]*models.Interval, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

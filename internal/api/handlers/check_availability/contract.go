package check_availability

import (
	"context"

	"github.com/m04kA/HC-RoomService/internal/service/availability"
)

type AvailabilityService interface {
	IsRoomAvailable(ctx context.Context, roomID int64, q availability.SearchQuery) (bool, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

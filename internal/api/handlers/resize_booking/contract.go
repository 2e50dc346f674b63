package resize_booking

import (
	"context"

	"github.com/m04kA/HC-RoomService/internal/service/bookings/models"
)

type BookingsService interface {
	Resize(ctx context.Context, req models.ResizeRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

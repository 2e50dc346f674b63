package delete_availability

import (
	"context"

	deleteAvailability "github.com/m04kA/HC-RoomService/internal/usecase/delete_availability"
)

type DeleteAvailabilityUseCase interface {
	Execute(ctx context.Context, req deleteAvailability.Request) (*deleteAvailability.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

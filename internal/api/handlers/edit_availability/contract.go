package edit_availability

import (
	"context"

	editAvailability "github.com/m04kA/HC-RoomService/internal/usecase/edit_availability"
)

type EditAvailabilityUseCase interface {
	Execute(ctx context.Context, req editAvailability.Request) (*editAvailability.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

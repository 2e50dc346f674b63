package availability_horizon

import (
	"context"
	"time"
)

type AvailabilityService interface {
	LastAvailableThrough(ctx context.Context, roomID int64, from time.Time) (*time.Time, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

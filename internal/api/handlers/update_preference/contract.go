package update_preference

import (
	"context"

	"github.com/m04kA/HC-RoomService/internal/domain"
)

type RoomsService interface {
	UpdatePreference(ctx context.Context, personID int64, pref domain.Preference) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

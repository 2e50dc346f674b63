package create_room

import (
	"context"

	"github.com/m04kA/HC-RoomService/internal/domain"
)

type RoomsService interface {
	CreateRoom(ctx context.Context, sectionID int64, number int, ownerID *int64) (*domain.Room, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

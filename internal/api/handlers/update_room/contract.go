package update_room

import "context"

type RoomsService interface {
	AssignOwner(ctx context.Context, roomID int64, ownerID *int64) error
	SetRoomOffline(ctx context.Context, roomID int64, offline bool) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

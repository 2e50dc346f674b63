package availability

import (
	"context"
	"time"

	"github.com/m04kA/HC-RoomService/internal/domain"
)

// IntervalRepository интерфейс репозитория интервалов
type IntervalRepository interface {
	HasOccupancyOverlap(ctx context.Context, roomID int64, start, end time.Time) (bool, error)
	AvailabilityContaining(ctx context.Context, roomID int64, start, end time.Time) (*domain.Interval, error)
	NextOccupancy(ctx context.Context, roomID int64, from, before time.Time) (*domain.Interval, error)
	ListByRoom(ctx context.Context, roomID int64, kind *domain.IntervalKind) ([]*domain.Interval, error)
	UpdateSpan(ctx context.Context, id int64, start, end time.Time) error
	Delete(ctx context.Context, id int64) error
}

// RoomRepository интерфейс репозитория комнат
type RoomRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

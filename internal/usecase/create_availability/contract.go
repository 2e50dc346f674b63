package create_availability

import (
	"context"
	"time"

	"github.com/m04kA/HC-RoomService/internal/domain"
)

// IntervalRepository интерфейс репозитория интервалов
type IntervalRepository interface {
	Create(ctx context.Context, iv *domain.Interval) (*domain.Interval, error)
	AvailabilityContaining(ctx context.Context, roomID int64, start, end time.Time) (*domain.Interval, error)
}

// RoomRepository интерфейс репозитория комнат
type RoomRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
}

// Merger сливает пересекающиеся availability-интервалы комнаты
type Merger interface {
	MergeOverlapping(ctx context.Context, roomID int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

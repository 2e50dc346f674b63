package edit_availability

import (
	"context"
	"time"

	"github.com/m04kA/HC-RoomService/internal/domain"
	"github.com/m04kA/HC-RoomService/internal/service/reassignment"
)

// IntervalRepository интерфейс репозитория интервалов
type IntervalRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Interval, error)
	UpdateSpan(ctx context.Context, id int64, start, end time.Time) error
	Delete(ctx context.Context, id int64) error
	OccupanciesWithin(ctx context.Context, roomID int64, spanStart, spanEnd time.Time) ([]*domain.Interval, error)
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

// Reassigner подбирает новую комнату вытесненному гостю
type Reassigner interface {
	PlanReassign(ctx context.Context, occ *domain.Interval, start, end time.Time, ownerLabel string, origin *domain.Room) (*reassignment.Result, error)
}

// Notifier отправляет уведомления хозяевам гостей.
// Отправка не влияет на результат операции.
type Notifier interface {
	Notify(ctx context.Context, recipient, subject, body string)
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

package bookings

import (
	"context"
	"time"

	"github.com/m04kA/HC-RoomService/internal/domain"
)

// IntervalRepository интерфейс репозитория интервалов
type IntervalRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Interval, error)
	ListByRoom(ctx context.Context, roomID int64, kind *domain.IntervalKind) ([]*domain.Interval, error)
	UpdateSpan(ctx context.Context, id int64, start, end time.Time) error
	Delete(ctx context.Context, id int64) error
}

// RoomRepository интерфейс репозитория комнат
type RoomRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
}

// AvailabilityChecker проверяет доступность комнаты на отрезке
type AvailabilityChecker interface {
	SpanFree(ctx context.Context, room *domain.Room, start, end time.Time, guestType domain.GuestType) (bool, error)
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

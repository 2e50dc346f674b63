package reassignment

import (
	"context"
	"time"

	"github.com/m04kA/HC-RoomService/internal/domain"
)

// IntervalRepository интерфейс репозитория интервалов.
// TryCreate обязан переживать нарушение exclusion constraint внутри
// объемлющей транзакции: после ErrOverlap транзакция остается рабочей.
type IntervalRepository interface {
	TryCreate(ctx context.Context, iv *domain.Interval) (*domain.Interval, error)
}

// RoomRepository интерфейс репозитория комнат
type RoomRepository interface {
	ListByBuilding(ctx context.Context, buildingID int64) ([]*domain.Room, error)
	ListByAreaExcludingBuilding(ctx context.Context, area string, buildingID int64) ([]*domain.Room, error)
	ListOutsideArea(ctx context.Context, area string) ([]*domain.Room, error)
}

// PersonRepository интерфейс репозитория людей
type PersonRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Person, error)
}

// AvailabilityChecker проверяет доступность комнаты-кандидата
type AvailabilityChecker interface {
	SpanFree(ctx context.Context, room *domain.Room, start, end time.Time, guestType domain.GuestType) (bool, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

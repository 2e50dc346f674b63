package rooms

import (
	"context"
	"time"

	"github.com/m04kA/HC-RoomService/internal/domain"
)

// IntervalRepository интерфейс репозитория интервалов
type IntervalRepository interface {
	Create(ctx context.Context, iv *domain.Interval) (*domain.Interval, error)
	DeleteAvailabilityByRoom(ctx context.Context, roomID int64) error
	DeleteAvailabilityByRooms(ctx context.Context, roomIDs []int64) error
}

// RoomRepository интерфейс репозитория комнат
type RoomRepository interface {
	Create(ctx context.Context, r *domain.Room) (*domain.Room, error)
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
	GetByOwner(ctx context.Context, ownerID int64) (*domain.Room, error)
	SetOwner(ctx context.Context, roomID int64, ownerID *int64) error
	SetOffline(ctx context.Context, roomID int64, offline bool) error
	SetBuildingOffline(ctx context.Context, buildingID int64, offline bool) error
	SetSectionOffline(ctx context.Context, sectionID int64, offline bool) error
	SetRoomsOfflineBySection(ctx context.Context, sectionID int64, offline bool) error
	ListSectionsByBuilding(ctx context.Context, buildingID int64) ([]*domain.Section, error)
	ListRoomIDsBySection(ctx context.Context, sectionID int64) ([]int64, error)
}

// PersonRepository интерфейс репозитория людей
type PersonRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Person, error)
	UpdatePreference(ctx context.Context, id int64, pref domain.Preference) error
	SetParent(ctx context.Context, id int64, parentID *int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Clock источник текущего времени
type Clock interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

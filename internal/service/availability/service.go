package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/HC-RoomService/internal/domain"
	storage "github.com/m04kA/HC-RoomService/internal/infra/storage/interval"
	roomStorage "github.com/m04kA/HC-RoomService/internal/infra/storage/room"
	"github.com/m04kA/HC-RoomService/pkg/timeutil"
)

// SearchQuery параметры поиска доступности. Явный объект вместо набора
// разрозненных аргументов: границы и тип гостя всегда путешествуют вместе.
type SearchQuery struct {
	Start     time.Time
	End       time.Time
	GuestType domain.GuestType
}

// Service отвечает за проверку доступности комнат
type Service struct {
	intervals IntervalRepository
	rooms     RoomRepository
	norm      *timeutil.Normalizer
	logger    Logger
}

// NewService создает сервис доступности
func NewService(intervals IntervalRepository, rooms RoomRepository, norm *timeutil.Normalizer, logger Logger) *Service {
	return &Service{
		intervals: intervals,
		rooms:     rooms,
		norm:      norm,
		logger:    logger,
	}
}

// IsRoomAvailable проверяет, свободна ли комната на [q.Start, q.End) для
// гостя заданного типа. Комната свободна, когда нет строго пересекающихся
// occupancy-интервалов И весь диапазон целиком накрыт одним
// availability-интервалом. Пересечение краёв доступности без полного
// покрытия - это недоступность.
func (s *Service) IsRoomAvailable(ctx context.Context, roomID int64, q SearchQuery) (bool, error) {
	if !q.Start.Before(q.End) {
		return false, ErrInvalidSpan
	}

	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, roomStorage.ErrRoomNotFound) {
			return false, ErrRoomNotFound
		}
		return false, fmt.Errorf("%w: IsRoomAvailable - get room: %v", ErrInternal, err)
	}

	return s.SpanFree(ctx, room, q.Start, q.End, q.GuestType)
}

// SpanFree проверяет доступность уже загруженной комнаты на [start, end)
// для гостя заданного типа. Используется планировщиком переселения,
// который перебирает кандидатов пачками.
func (s *Service) SpanFree(ctx context.Context, room *domain.Room, start, end time.Time, guestType domain.GuestType) (bool, error) {
	if room.IsOffline {
		return false, nil
	}
	if !room.Admits(guestType) {
		return false, nil
	}

	overlap, err := s.intervals.HasOccupancyOverlap(ctx, room.ID, start, end)
	if err != nil {
		return false, fmt.Errorf("%w: SpanFree - check occupancy overlap: %v", ErrInternal, err)
	}
	if overlap {
		return false, nil
	}

	_, err = s.intervals.AvailabilityContaining(ctx, room.ID, start, end)
	if err != nil {
		if errors.Is(err, storage.ErrIntervalNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("%w: SpanFree - find containing availability: %v", ErrInternal, err)
	}

	return true, nil
}

// LastAvailableThrough возвращает последний момент, до которого можно
// непрерывно жить в комнате, начиная с from. Nil - комната в этот момент
// недоступна. Горизонт ограничивает либо конец накрывающего
// availability-интервала, либо начало ближайшей брони - что раньше.
func (s *Service) LastAvailableThrough(ctx context.Context, roomID int64, from time.Time) (*time.Time, error) {
	from = s.norm.InZone(from)

	if _, err := s.rooms.GetByID(ctx, roomID); err != nil {
		if errors.Is(err, roomStorage.ErrRoomNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("%w: LastAvailableThrough - get room: %v", ErrInternal, err)
	}

	avail, err := s.intervals.AvailabilityContaining(ctx, roomID, from, from)
	if err != nil {
		if errors.Is(err, storage.ErrIntervalNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: LastAvailableThrough - find containing availability: %v", ErrInternal, err)
	}

	horizon := avail.EndAt

	next, err := s.intervals.NextOccupancy(ctx, roomID, from, avail.EndAt)
	if err != nil {
		if !errors.Is(err, storage.ErrIntervalNotFound) {
			return nil, fmt.Errorf("%w: LastAvailableThrough - find next occupancy: %v", ErrInternal, err)
		}
	} else if next.StartAt.Before(horizon) {
		horizon = next.StartAt
	}

	horizon = s.norm.InZone(horizon)

	return &horizon, nil
}

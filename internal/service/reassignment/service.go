package reassignment

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/m04kA/HC-RoomService/internal/domain"
	storage "github.com/m04kA/HC-RoomService/internal/infra/storage/interval"
	personStorage "github.com/m04kA/HC-RoomService/internal/infra/storage/person"
	"github.com/m04kA/HC-RoomService/pkg/metrics"
	"github.com/m04kA/HC-RoomService/pkg/ptr"
	"github.com/m04kA/HC-RoomService/pkg/timeutil"
)

// Метки исхода переселения для метрик
const (
	outcomeAssigned   = "assigned"
	outcomeUnassigned = "unassigned"
)

// Service подбирает новую комнату для гостя, вытесненного изменением
// доступности. Кандидаты перебираются ярусами по близости к исходной
// комнате: то же здание, затем тот же район, затем всё остальное.
// Внутри яруса порядок случайный, чтобы нагрузка не оседала на комнатах
// с маленькими ID.
type Service struct {
	intervals IntervalRepository
	rooms     RoomRepository
	persons   PersonRepository
	checker   AvailabilityChecker
	norm      *timeutil.Normalizer
	metrics   *metrics.Metrics
	logger    Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// NewService создает планировщик переселения. Seed фиксируется в тестах
// для воспроизводимости порядка перебора.
func NewService(
	intervals IntervalRepository,
	rooms RoomRepository,
	persons PersonRepository,
	checker AvailabilityChecker,
	norm *timeutil.Normalizer,
	m *metrics.Metrics,
	seed int64,
	logger Logger,
) *Service {
	return &Service{
		intervals: intervals,
		rooms:     rooms,
		persons:   persons,
		checker:   checker,
		norm:      norm,
		metrics:   m,
		logger:    logger,
		rng:       rand.New(rand.NewSource(seed)),
	}
}

// PlanReassign ищет комнату для гостя из occ на [start, end) и создаёт
// там зеркальную бронь. Вызывается внутри транзакции обработчика
// изменений доступности: созданная бронь откатится вместе с ней.
//
// Возвращаемое уведомление отправляется вызывающим ПОСЛЕ коммита -
// ровно одно письмо на вытесненного гостя, даже если транзакция
// повторялась из-за конфликта сериализации.
func (s *Service) PlanReassign(ctx context.Context, occ *domain.Interval, start, end time.Time, ownerLabel string, origin *domain.Room) (*Result, error) {
	guestType := domain.GuestStranger
	if occ.GuestType != nil {
		guestType = *occ.GuestType
	}

	host, err := s.host(ctx, occ)
	if err != nil {
		return nil, err
	}

	candidates, err := s.candidates(ctx, origin)
	if err != nil {
		return nil, err
	}

	for _, room := range candidates {
		free, err := s.checker.SpanFree(ctx, room, start, end, guestType)
		if err != nil {
			return nil, fmt.Errorf("%w: PlanReassign - check candidate %d: %v", ErrInternal, room.ID, err)
		}
		if !free {
			continue
		}

		moved := &domain.Interval{
			RoomID:    room.ID,
			Kind:      domain.KindOccupancy,
			StartAt:   start,
			EndAt:     end,
			Title:     occ.Title,
			GuestName: occ.GuestName,
			GuestType: occ.GuestType,
			CreatorID: occ.CreatorID,
		}

		// Вставка под savepoint: занятый кандидат не переводит объемлющую
		// транзакцию в aborted-состояние, перебор продолжается
		if _, err := s.intervals.TryCreate(ctx, moved); err != nil {
			if errors.Is(err, storage.ErrOverlap) {
				s.logger.Warn("reassignment: candidate room %d taken concurrently, skipping", room.ID)
				continue
			}
			return nil, fmt.Errorf("%w: PlanReassign - create occupancy in room %d: %v", ErrInternal, room.ID, err)
		}

		s.logger.Info("reassignment: guest %q moved from room %d to room %d (%s - %s)",
			ptr.Deref(occ.GuestName), occ.RoomID, room.ID,
			start.Format(timeutil.DateFormat), end.Format(timeutil.DateFormat))

		s.countOutcome(outcomeAssigned)

		return &Result{
			AssignedRoomID: ptr.Ptr(room.ID),
			Notification:   s.movedNotification(host, occ, room, ownerLabel, start, end),
		}, nil
	}

	s.countOutcome(outcomeUnassigned)

	s.logger.Warn("reassignment: no room found for guest %q displaced from room %d (%s - %s)",
		ptr.Deref(occ.GuestName), occ.RoomID,
		start.Format(timeutil.DateFormat), end.Format(timeutil.DateFormat))

	return &Result{
		Notification: s.failedNotification(host, occ, ownerLabel, start, end),
	}, nil
}

func (s *Service) countOutcome(outcome string) {
	if s.metrics == nil {
		return
	}
	s.metrics.ReassignmentsTotal.WithLabelValues(outcome).Inc()
}

// candidates собирает комнаты тремя ярусами, перемешивая каждый отдельно:
// близость яруса важнее случайности внутри него
func (s *Service) candidates(ctx context.Context, origin *domain.Room) ([]*domain.Room, error) {
	sameBuilding, err := s.rooms.ListByBuilding(ctx, origin.BuildingID)
	if err != nil {
		return nil, fmt.Errorf("%w: candidates - list same building: %v", ErrInternal, err)
	}

	sameArea, err := s.rooms.ListByAreaExcludingBuilding(ctx, origin.BuildingArea, origin.BuildingID)
	if err != nil {
		return nil, fmt.Errorf("%w: candidates - list same area: %v", ErrInternal, err)
	}

	elsewhere, err := s.rooms.ListOutsideArea(ctx, origin.BuildingArea)
	if err != nil {
		return nil, fmt.Errorf("%w: candidates - list outside area: %v", ErrInternal, err)
	}

	sameBuilding = s.withoutRoom(sameBuilding, origin.ID)

	s.shuffle(sameBuilding)
	s.shuffle(sameArea)
	s.shuffle(elsewhere)

	all := make([]*domain.Room, 0, len(sameBuilding)+len(sameArea)+len(elsewhere))
	all = append(all, sameBuilding...)
	all = append(all, sameArea...)
	all = append(all, elsewhere...)

	return all, nil
}

func (s *Service) withoutRoom(rooms []*domain.Room, roomID int64) []*domain.Room {
	out := rooms[:0]
	for _, r := range rooms {
		if r.ID != roomID {
			out = append(out, r)
		}
	}
	return out
}

// shuffle перемешивает ярус под мьютексом: rand.Rand не потокобезопасен
func (s *Service) shuffle(rooms []*domain.Room) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rng.Shuffle(len(rooms), func(i, j int) {
		rooms[i], rooms[j] = rooms[j], rooms[i]
	})
}

// host получает хозяина гостя для уведомления. Бронь без создателя
// уведомлять некого.
func (s *Service) host(ctx context.Context, occ *domain.Interval) (*domain.Person, error) {
	if occ.CreatorID == nil {
		return nil, nil
	}

	host, err := s.persons.GetByID(ctx, *occ.CreatorID)
	if err != nil {
		if errors.Is(err, personStorage.ErrPersonNotFound) {
			s.logger.Warn("reassignment: host %d of interval %d not found", *occ.CreatorID, occ.ID)
			return nil, nil
		}
		return nil, fmt.Errorf("%w: host - get person %d: %v", ErrInternal, *occ.CreatorID, err)
	}

	return host, nil
}

func (s *Service) movedNotification(host *domain.Person, occ *domain.Interval, room *domain.Room, ownerLabel string, start, end time.Time) Notification {
	if host == nil {
		return Notification{}
	}
	return Notification{
		Recipient: host.Email,
		Subject:   "Your guest booking has changed",
		Body: fmt.Sprintf(
			"%s has changed their room availability. Your guest %s has been reassigned to room %d for the dates %s through %s. Please check My Guests for the updated details.",
			ownerLabel, ptr.Deref(occ.GuestName), room.Number,
			s.norm.InZone(start).Format(timeutil.DateFormat),
			s.norm.InZone(end).Format(timeutil.DateFormat),
		),
	}
}

func (s *Service) failedNotification(host *domain.Person, occ *domain.Interval, ownerLabel string, start, end time.Time) Notification {
	if host == nil {
		return Notification{}
	}
	return Notification{
		Recipient: host.Email,
		Subject:   "Your guest booking needs attention",
		Body: fmt.Sprintf(
			"%s has changed their room availability and no other room could be found for your guest %s for the dates %s through %s. Please contact the room assigner for help.",
			ownerLabel, ptr.Deref(occ.GuestName),
			s.norm.InZone(start).Format(timeutil.DateFormat),
			s.norm.InZone(end).Format(timeutil.DateFormat),
		),
	}
}

package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/HC-RoomService/internal/domain"
	storage "github.com/m04kA/HC-RoomService/internal/infra/storage/interval"
	roomStorage "github.com/m04kA/HC-RoomService/internal/infra/storage/room"
	"github.com/m04kA/HC-RoomService/internal/service/bookings/models"
)

// Service управляет существующими бронями: просмотр календаря комнаты,
// отмена, изменение границ проживания
type Service struct {
	intervals IntervalRepository
	rooms     RoomRepository
	checker   AvailabilityChecker
	txManager TransactionManager
	logger    Logger
}

// NewService создает сервис броней
func NewService(
	intervals IntervalRepository,
	rooms RoomRepository,
	checker AvailabilityChecker,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		intervals: intervals,
		rooms:     rooms,
		checker:   checker,
		txManager: txManager,
		logger:    logger,
	}
}

// GetRoomIntervals возвращает интервалы календаря комнаты,
// опционально отфильтрованные по виду
func (s *Service) GetRoomIntervals(ctx context.Context, roomID int64, kind *domain.IntervalKind) ([]*models.Interval, error) {
	if _, err := s.rooms.GetByID(ctx, roomID); err != nil {
		if errors.Is(err, roomStorage.ErrRoomNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("%w: GetRoomIntervals - get room: %v", ErrInternal, err)
	}

	list, err := s.intervals.ListByRoom(ctx, roomID, kind)
	if err != nil {
		return nil, fmt.Errorf("%w: GetRoomIntervals - list intervals: %v", ErrInternal, err)
	}

	out := make([]*models.Interval, 0, len(list))
	for _, iv := range list {
		out = append(out, toModel(iv))
	}

	return out, nil
}

// Delete отменяет бронь. Разрешено создателю брони и владельцу комнаты.
func (s *Service) Delete(ctx context.Context, intervalID, callerID int64) error {
	occ, room, err := s.loadOccupancy(ctx, intervalID)
	if err != nil {
		return err
	}

	if !s.mayManage(occ, room, callerID) {
		return ErrAccessDenied
	}

	if err := s.intervals.Delete(ctx, intervalID); err != nil {
		if errors.Is(err, storage.ErrIntervalNotFound) {
			return ErrIntervalNotFound
		}
		return fmt.Errorf("%w: Delete - delete interval: %v", ErrInternal, err)
	}

	s.logger.Info("bookings: interval %d deleted by person %d", intervalID, callerID)

	return nil
}

// Resize меняет границы брони. Сжатие с любого края проходит всегда;
// расширение требует, чтобы добавляемый отрезок был свободен и накрыт
// доступностью. Непроходимый край не применяется, остальные изменения
// сохраняются, и вызывающему возвращается ErrResizeConflict.
func (s *Service) Resize(ctx context.Context, req models.ResizeRequest) error {
	if !req.NewStart.Before(req.NewEnd) {
		return ErrInvalidSpan
	}

	occ, room, err := s.loadOccupancy(ctx, req.IntervalID)
	if err != nil {
		return err
	}

	if !s.mayManage(occ, room, req.CallerID) {
		return ErrAccessDenied
	}

	guestType := domain.GuestStranger
	if occ.GuestType != nil {
		guestType = *occ.GuestType
	}

	conflict := false

	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		conflict = false
		start, end := occ.StartAt, occ.EndAt

		if req.NewStart.Before(occ.StartAt) {
			free, err := s.checker.SpanFree(txCtx, room, req.NewStart, occ.StartAt, guestType)
			if err != nil {
				return fmt.Errorf("%w: Resize - check leading margin: %v", ErrInternal, err)
			}
			if free {
				start = req.NewStart
			} else {
				conflict = true
			}
		} else {
			start = req.NewStart
		}

		if req.NewEnd.After(occ.EndAt) {
			free, err := s.checker.SpanFree(txCtx, room, occ.EndAt, req.NewEnd, guestType)
			if err != nil {
				return fmt.Errorf("%w: Resize - check trailing margin: %v", ErrInternal, err)
			}
			if free {
				end = req.NewEnd
			} else {
				conflict = true
			}
		} else {
			end = req.NewEnd
		}

		if start.Equal(occ.StartAt) && end.Equal(occ.EndAt) {
			return nil
		}

		if err := s.intervals.UpdateSpan(txCtx, req.IntervalID, start, end); err != nil {
			if errors.Is(err, storage.ErrOverlap) {
				return ErrResizeConflict
			}
			return fmt.Errorf("%w: Resize - update span: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	if conflict {
		return ErrResizeConflict
	}

	s.logger.Info("bookings: interval %d resized to [%s, %s] by person %d",
		req.IntervalID, req.NewStart, req.NewEnd, req.CallerID)

	return nil
}

func (s *Service) loadOccupancy(ctx context.Context, intervalID int64) (*domain.Interval, *domain.Room, error) {
	occ, err := s.intervals.GetByID(ctx, intervalID)
	if err != nil {
		if errors.Is(err, storage.ErrIntervalNotFound) {
			return nil, nil, ErrIntervalNotFound
		}
		return nil, nil, fmt.Errorf("%w: loadOccupancy - get interval: %v", ErrInternal, err)
	}

	if !occ.IsOccupancy() {
		return nil, nil, ErrNotOccupancy
	}

	room, err := s.rooms.GetByID(ctx, occ.RoomID)
	if err != nil {
		if errors.Is(err, roomStorage.ErrRoomNotFound) {
			return nil, nil, ErrRoomNotFound
		}
		return nil, nil, fmt.Errorf("%w: loadOccupancy - get room: %v", ErrInternal, err)
	}

	return occ, room, nil
}

// mayManage разрешает управлять бронью её создателю и владельцу комнаты
func (s *Service) mayManage(occ *domain.Interval, room *domain.Room, callerID int64) bool {
	if occ.CreatorID != nil && *occ.CreatorID == callerID {
		return true
	}
	if room.OwnerID != nil && *room.OwnerID == callerID {
		return true
	}
	return false
}

func toModel(iv *domain.Interval) *models.Interval {
	var guestType *int
	if iv.GuestType != nil {
		v := int(*iv.GuestType)
		guestType = &v
	}

	return &models.Interval{
		ID:        iv.ID,
		RoomID:    iv.RoomID,
		Kind:      string(iv.Kind),
		StartAt:   iv.StartAt,
		EndAt:     iv.EndAt,
		Title:     iv.Title,
		GuestName: iv.GuestName,
		GuestType: guestType,
		CreatorID: iv.CreatorID,
	}
}

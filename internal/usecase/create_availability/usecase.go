package create_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/HC-RoomService/internal/domain"
	roomStorage "github.com/m04kA/HC-RoomService/internal/infra/storage/room"
	"github.com/m04kA/HC-RoomService/pkg/timeutil"
)

// UseCase объявление доступности комнаты: вставка окна и слияние
// с существующими окнами одной транзакцией
type UseCase struct {
	intervals IntervalRepository
	rooms     RoomRepository
	merger    Merger
	txManager TransactionManager
	norm      *timeutil.Normalizer
	logger    Logger
}

// NewUseCase создает usecase объявления доступности
func NewUseCase(
	intervals IntervalRepository,
	rooms RoomRepository,
	merger Merger,
	txManager TransactionManager,
	norm *timeutil.Normalizer,
	logger Logger,
) *UseCase {
	return &UseCase{
		intervals: intervals,
		rooms:     rooms,
		merger:    merger,
		txManager: txManager,
		norm:      norm,
		logger:    logger,
	}
}

// Execute объявляет комнату доступной на заданные даты. Владелец комнаты
// (или её ответственный) - единственные, кто вправе это делать.
// После вставки пересекающиеся окна сливаются, поэтому наружу возвращается
// накрывающий интервал, а не обязательно вставленный.
func (uc *UseCase) Execute(ctx context.Context, req Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	start := uc.norm.WindowOpen(req.StartDate)
	end := uc.norm.WindowClose(req.EndDate)
	if !start.Before(end) {
		return nil, fmt.Errorf("%w: end date must not precede start date", ErrInvalidData)
	}

	room, err := uc.rooms.GetByID(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, roomStorage.ErrRoomNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("%w: Execute - get room: %v", ErrInternal, err)
	}

	if room.IsOffline {
		return nil, ErrRoomOffline
	}

	if !mayDeclare(room, req.CallerID) {
		return nil, ErrAccessDenied
	}

	var result *domain.Interval

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		iv := &domain.Interval{
			RoomID:  req.RoomID,
			Kind:    domain.KindAvailability,
			StartAt: start,
			EndAt:   end,
			Title:   fmt.Sprintf("Available %s - %s", req.StartDate.Format(timeutil.DateFormat), req.EndDate.Format(timeutil.DateFormat)),
		}

		if _, err := uc.intervals.Create(txCtx, iv); err != nil {
			return fmt.Errorf("%w: Execute - create availability: %v", ErrInternal, err)
		}

		if err := uc.merger.MergeOverlapping(txCtx, req.RoomID); err != nil {
			return fmt.Errorf("%w: Execute - merge availability: %v", ErrInternal, err)
		}

		covering, err := uc.intervals.AvailabilityContaining(txCtx, req.RoomID, start, end)
		if err != nil {
			return fmt.Errorf("%w: Execute - find covering availability: %v", ErrInternal, err)
		}
		result = covering

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("create_availability: room %d available %s - %s (interval %d)",
		req.RoomID,
		result.StartAt.Format(timeutil.DateFormat),
		result.EndAt.Format(timeutil.DateFormat),
		result.ID)

	return &Response{
		IntervalID: result.ID,
		RoomID:     result.RoomID,
		StartAt:    result.StartAt,
		EndAt:      result.EndAt,
	}, nil
}

// mayDeclare разрешает объявлять доступность владельцу комнаты.
// Комната без владельца управляется общиной - от её имени может
// действовать кто угодно из авторизованных.
func mayDeclare(room *domain.Room, callerID int64) bool {
	if !room.HasOwner() {
		return true
	}
	return *room.OwnerID == callerID
}

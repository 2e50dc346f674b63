package delete_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/HC-RoomService/internal/domain"
	storage "github.com/m04kA/HC-RoomService/internal/infra/storage/interval"
	roomStorage "github.com/m04kA/HC-RoomService/internal/infra/storage/room"
	"github.com/m04kA/HC-RoomService/internal/service/reassignment"
)

// UseCase отзыв окна доступности. Каждая бронь, жившая под защитой окна,
// переезжает целиком в другую комнату; затем окно удаляется.
type UseCase struct {
	intervals  IntervalRepository
	rooms      RoomRepository
	reassigner Reassigner
	notifier   Notifier
	txManager  TransactionManager
	logger     Logger
}

// NewUseCase создает usecase отзыва доступности
func NewUseCase(
	intervals IntervalRepository,
	rooms RoomRepository,
	reassigner Reassigner,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		intervals:  intervals,
		rooms:      rooms,
		reassigner: reassigner,
		notifier:   notifier,
		txManager:  txManager,
		logger:     logger,
	}
}

// Execute отзывает окно доступности вместе с переселением гостей.
// Перестройка атомарна; уведомления уходят после коммита, по одному
// на каждого вытесненного гостя.
func (uc *UseCase) Execute(ctx context.Context, req Request) (*Response, error) {
	if req.IntervalID <= 0 {
		return nil, fmt.Errorf("%w: interval id must be positive", ErrInvalidData)
	}
	if req.CallerID <= 0 {
		return nil, fmt.Errorf("%w: caller id must be positive", ErrInvalidData)
	}

	var (
		resp   Response
		outbox []reassignment.Notification
	)

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		resp = Response{}
		outbox = outbox[:0]

		avail, err := uc.intervals.GetByID(txCtx, req.IntervalID)
		if err != nil {
			if errors.Is(err, storage.ErrIntervalNotFound) {
				return ErrIntervalNotFound
			}
			return fmt.Errorf("%w: Execute - get interval: %v", ErrInternal, err)
		}

		if !avail.IsAvailability() {
			return ErrNotAvailability
		}

		room, err := uc.rooms.GetByID(txCtx, avail.RoomID)
		if err != nil {
			if errors.Is(err, roomStorage.ErrRoomNotFound) {
				return fmt.Errorf("%w: Execute - room %d missing: %v", ErrInternal, avail.RoomID, err)
			}
			return fmt.Errorf("%w: Execute - get room: %v", ErrInternal, err)
		}

		if room.HasOwner() && *room.OwnerID != req.CallerID {
			return ErrAccessDenied
		}

		occs, err := uc.intervals.OccupanciesWithin(txCtx, room.ID, avail.StartAt, avail.EndAt)
		if err != nil {
			return fmt.Errorf("%w: Execute - list sheltered occupancies: %v", ErrInternal, err)
		}

		ownerLabel := room.OwnerLabel()

		for _, occ := range occs {
			if err := uc.moveOut(txCtx, occ, ownerLabel, room, &resp, &outbox); err != nil {
				return err
			}
		}

		if err := uc.intervals.Delete(txCtx, avail.ID); err != nil {
			return fmt.Errorf("%w: Execute - delete window: %v", ErrInternal, err)
		}

		resp.RoomID = room.ID

		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, n := range outbox {
		if n.Recipient == "" {
			continue
		}
		uc.notifier.Notify(ctx, n.Recipient, n.Subject, n.Body)
	}

	uc.logger.Info("delete_availability: interval %d revoked, displaced=%d reassigned=%d unassigned=%d",
		req.IntervalID, resp.DisplacedGuests, resp.ReassignedGuests, resp.UnassignedGuests)

	return &resp, nil
}

// moveOut переселяет одну бронь целиком и удаляет её из исходной комнаты
func (uc *UseCase) moveOut(ctx context.Context, occ *domain.Interval, ownerLabel string, room *domain.Room, resp *Response, outbox *[]reassignment.Notification) error {
	res, err := uc.reassigner.PlanReassign(ctx, occ, occ.StartAt, occ.EndAt, ownerLabel, room)
	if err != nil {
		return fmt.Errorf("%w: moveOut - reassign interval %d: %v", ErrInternal, occ.ID, err)
	}

	if err := uc.intervals.Delete(ctx, occ.ID); err != nil {
		return fmt.Errorf("%w: moveOut - delete interval %d: %v", ErrInternal, occ.ID, err)
	}

	resp.DisplacedGuests++
	if res.Assigned() {
		resp.ReassignedGuests++
	} else {
		resp.UnassignedGuests++
	}
	*outbox = append(*outbox, res.Notification)

	return nil
}

package edit_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/HC-RoomService/internal/domain"
	storage "github.com/m04kA/HC-RoomService/internal/infra/storage/interval"
	roomStorage "github.com/m04kA/HC-RoomService/internal/infra/storage/room"
	"github.com/m04kA/HC-RoomService/internal/service/reassignment"
	"github.com/m04kA/HC-RoomService/pkg/timeutil"
)

// UseCase изменение границ окна доступности с переселением вытесненных
// гостей. Сужение окна оставляет часть броней снаружи: каждая такая
// бронь либо урезается до куска, оставшегося внутри, а вытесненный
// кусок переезжает в другую комнату, либо переезжает целиком.
type UseCase struct {
	intervals  IntervalRepository
	rooms      RoomRepository
	merger     Merger
	reassigner Reassigner
	notifier   Notifier
	txManager  TransactionManager
	norm       *timeutil.Normalizer
	logger     Logger
}

// NewUseCase создает usecase изменения доступности
func NewUseCase(
	intervals IntervalRepository,
	rooms RoomRepository,
	merger Merger,
	reassigner Reassigner,
	notifier Notifier,
	txManager TransactionManager,
	norm *timeutil.Normalizer,
	logger Logger,
) *UseCase {
	return &UseCase{
		intervals:  intervals,
		rooms:      rooms,
		merger:     merger,
		reassigner: reassigner,
		notifier:   notifier,
		txManager:  txManager,
		norm:       norm,
		logger:     logger,
	}
}

// Execute меняет границы окна доступности.
//
// Вся перестройка - новые границы, слияние окон, урезание и переселение
// броней - выполняется одной serializable-транзакцией: либо применяется
// целиком, либо не применяется вовсе. Уведомления хозяевам копятся в
// исходящей пачке и отправляются ПОСЛЕ коммита, чтобы повтор транзакции
// из-за конфликта сериализации не породил дубликатов.
func (uc *UseCase) Execute(ctx context.Context, req Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	newStart := uc.norm.WindowOpen(req.StartDate)
	newEnd := uc.norm.WindowClose(req.EndDate)
	if !newStart.Before(newEnd) {
		return nil, fmt.Errorf("%w: end date must not precede start date", ErrInvalidData)
	}

	var (
		resp   Response
		outbox []reassignment.Notification
	)

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		resp = Response{}
		outbox = outbox[:0]

		avail, room, err := uc.loadWindow(txCtx, req.IntervalID, req.CallerID)
		if err != nil {
			return err
		}

		origStart, origEnd := avail.StartAt, avail.EndAt

		if err := uc.intervals.UpdateSpan(txCtx, avail.ID, newStart, newEnd); err != nil {
			return fmt.Errorf("%w: Execute - update window span: %v", ErrInternal, err)
		}

		if err := uc.merger.MergeOverlapping(txCtx, room.ID); err != nil {
			return fmt.Errorf("%w: Execute - merge availability: %v", ErrInternal, err)
		}

		// Слияние могло поглотить изменяемую строку соседним окном:
		// дальше работаем с накрывающим интервалом, как при создании
		covering, err := uc.intervals.AvailabilityContaining(txCtx, room.ID, newStart, newEnd)
		if err != nil {
			return fmt.Errorf("%w: Execute - find covering window: %v", ErrInternal, err)
		}

		// Брони рассматриваются в границах ИСХОДНОГО окна: именно они
		// были под его защитой до изменения
		occs, err := uc.intervals.OccupanciesWithin(txCtx, room.ID, origStart, origEnd)
		if err != nil {
			return fmt.Errorf("%w: Execute - list sheltered occupancies: %v", ErrInternal, err)
		}

		ownerLabel := room.OwnerLabel()

		for _, occ := range occs {
			displaced, results, err := uc.relocate(txCtx, occ, covering.StartAt, covering.EndAt, ownerLabel, room)
			if err != nil {
				return err
			}
			if displaced {
				resp.DisplacedGuests++
			}
			for _, res := range results {
				outbox = append(outbox, res.Notification)
				if res.Assigned() {
					resp.ReassignedGuests++
				} else {
					resp.UnassignedGuests++
				}
			}
		}

		resp.IntervalID = covering.ID
		resp.RoomID = room.ID
		resp.StartAt = covering.StartAt
		resp.EndAt = covering.EndAt

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.sendOutbox(ctx, outbox)

	uc.logger.Info("edit_availability: interval %d resized to %s - %s, displaced=%d reassigned=%d unassigned=%d",
		req.IntervalID,
		newStart.Format(timeutil.DateFormat), newEnd.Format(timeutil.DateFormat),
		resp.DisplacedGuests, resp.ReassignedGuests, resp.UnassignedGuests)

	return &resp, nil
}

// relocate приводит одну бронь в соответствие с новым окном [newStart, newEnd).
//
// Хвост за правой границей: бронь урезается, торчащий кусок переезжает.
// Голова перед левой границей: симметрично. Бронь, целиком оказавшаяся
// снаружи, переезжает полностью и удаляется здесь. Урезанная до пустоты
// бронь тоже удаляется.
func (uc *UseCase) relocate(ctx context.Context, occ *domain.Interval, newStart, newEnd time.Time, ownerLabel string, room *domain.Room) (bool, []*reassignment.Result, error) {
	var results []*reassignment.Result

	movedWhole := false

	if occ.EndAt.After(newEnd) {
		if newEnd.After(occ.StartAt) {
			// хвост торчит за новое окно
			res, err := uc.reassigner.PlanReassign(ctx, occ, newEnd, occ.EndAt, ownerLabel, room)
			if err != nil {
				return false, nil, fmt.Errorf("%w: relocate - reassign tail of interval %d: %v", ErrInternal, occ.ID, err)
			}
			results = append(results, res)

			occ.EndAt = newEnd
			if err := uc.intervals.UpdateSpan(ctx, occ.ID, occ.StartAt, occ.EndAt); err != nil {
				return false, nil, fmt.Errorf("%w: relocate - trim tail of interval %d: %v", ErrInternal, occ.ID, err)
			}
		} else {
			res, err := uc.moveWhole(ctx, occ, ownerLabel, room)
			if err != nil {
				return false, nil, err
			}
			results = append(results, res)
			movedWhole = true
		}
	}

	if !movedWhole && occ.StartAt.Before(newStart) {
		if newStart.Before(occ.EndAt) {
			// голова торчит перед новым окном
			res, err := uc.reassigner.PlanReassign(ctx, occ, occ.StartAt, newStart, ownerLabel, room)
			if err != nil {
				return false, nil, fmt.Errorf("%w: relocate - reassign head of interval %d: %v", ErrInternal, occ.ID, err)
			}
			results = append(results, res)

			occ.StartAt = newStart
			if err := uc.intervals.UpdateSpan(ctx, occ.ID, occ.StartAt, occ.EndAt); err != nil {
				return false, nil, fmt.Errorf("%w: relocate - trim head of interval %d: %v", ErrInternal, occ.ID, err)
			}
		} else {
			res, err := uc.moveWhole(ctx, occ, ownerLabel, room)
			if err != nil {
				return false, nil, err
			}
			results = append(results, res)
			movedWhole = true
		}
	}

	// огрызок нулевой длины не живет
	if !movedWhole && occ.IsEmpty() {
		if err := uc.intervals.Delete(ctx, occ.ID); err != nil {
			return false, nil, fmt.Errorf("%w: relocate - delete empty stub %d: %v", ErrInternal, occ.ID, err)
		}
	}

	return len(results) > 0, results, nil
}

// moveWhole переселяет бронь целиком и удаляет её из исходной комнаты
func (uc *UseCase) moveWhole(ctx context.Context, occ *domain.Interval, ownerLabel string, room *domain.Room) (*reassignment.Result, error) {
	res, err := uc.reassigner.PlanReassign(ctx, occ, occ.StartAt, occ.EndAt, ownerLabel, room)
	if err != nil {
		return nil, fmt.Errorf("%w: moveWhole - reassign interval %d: %v", ErrInternal, occ.ID, err)
	}

	if err := uc.intervals.Delete(ctx, occ.ID); err != nil {
		return nil, fmt.Errorf("%w: moveWhole - delete interval %d: %v", ErrInternal, occ.ID, err)
	}

	return res, nil
}

func (uc *UseCase) loadWindow(ctx context.Context, intervalID, callerID int64) (*domain.Interval, *domain.Room, error) {
	avail, err := uc.intervals.GetByID(ctx, intervalID)
	if err != nil {
		if errors.Is(err, storage.ErrIntervalNotFound) {
			return nil, nil, ErrIntervalNotFound
		}
		return nil, nil, fmt.Errorf("%w: loadWindow - get interval: %v", ErrInternal, err)
	}

	if !avail.IsAvailability() {
		return nil, nil, ErrNotAvailability
	}

	room, err := uc.rooms.GetByID(ctx, avail.RoomID)
	if err != nil {
		if errors.Is(err, roomStorage.ErrRoomNotFound) {
			return nil, nil, fmt.Errorf("%w: loadWindow - room %d missing: %v", ErrInternal, avail.RoomID, err)
		}
		return nil, nil, fmt.Errorf("%w: loadWindow - get room: %v", ErrInternal, err)
	}

	if room.HasOwner() && *room.OwnerID != callerID {
		return nil, nil, ErrAccessDenied
	}

	return avail, room, nil
}

// sendOutbox отправляет накопленные уведомления. Сбои доставки не
// откатывают уже закоммиченную перестройку - получатель просто не узнает
// письмом, но увидит изменения в календаре.
func (uc *UseCase) sendOutbox(ctx context.Context, outbox []reassignment.Notification) {
	for _, n := range outbox {
		if n.Recipient == "" {
			continue
		}
		uc.notifier.Notify(ctx, n.Recipient, n.Subject, n.Body)
	}
}

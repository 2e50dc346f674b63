package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/HC-RoomService/internal/domain"
	storage "github.com/m04kA/HC-RoomService/internal/infra/storage/interval"
	personStorage "github.com/m04kA/HC-RoomService/internal/infra/storage/person"
	roomStorage "github.com/m04kA/HC-RoomService/internal/infra/storage/room"
	"github.com/m04kA/HC-RoomService/pkg/ptr"
	"github.com/m04kA/HC-RoomService/pkg/timeutil"
)

// UseCase создание брони: проверка допуска гостя, проверка доступности
// и вставка occupancy-интервала одной транзакцией
type UseCase struct {
	intervals IntervalRepository
	rooms     RoomRepository
	persons   PersonRepository
	txManager TransactionManager
	norm      *timeutil.Normalizer
	logger    Logger
}

// NewUseCase создает usecase создания брони
func NewUseCase(
	intervals IntervalRepository,
	rooms RoomRepository,
	persons PersonRepository,
	txManager TransactionManager,
	norm *timeutil.Normalizer,
	logger Logger,
) *UseCase {
	return &UseCase{
		intervals: intervals,
		rooms:     rooms,
		persons:   persons,
		txManager: txManager,
		norm:      norm,
		logger:    logger,
	}
}

// Execute создает бронь комнаты на [заезд, выезд).
//
// Проверка доступности и вставка выполняются в одной serializable-транзакции:
// гонка "проверил-потом-вставил" между конкурентными бронированиями
// закрывается блокировкой строк и exclusion constraint в БД.
func (uc *UseCase) Execute(ctx context.Context, req Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	start := uc.norm.CheckIn(req.StartDate)
	end := uc.norm.CheckOut(req.EndDate)
	if !start.Before(end) {
		return nil, fmt.Errorf("%w: end date must be after start date", ErrInvalidData)
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

	if !room.Admits(req.GuestType) {
		return nil, ErrGuestNotAdmitted
	}

	host, err := uc.persons.GetByID(ctx, req.HostID)
	if err != nil {
		if errors.Is(err, personStorage.ErrPersonNotFound) {
			return nil, ErrHostNotFound
		}
		return nil, fmt.Errorf("%w: Execute - get host: %v", ErrInternal, err)
	}

	guestName := strings.TrimSpace(req.GuestName)

	iv := &domain.Interval{
		RoomID:    req.RoomID,
		Kind:      domain.KindOccupancy,
		StartAt:   start,
		EndAt:     end,
		Title:     fmt.Sprintf("%s hosted by %s", guestName, host.Name),
		GuestName: ptr.Ptr(guestName),
		GuestType: ptr.Ptr(req.GuestType),
		CreatorID: ptr.Ptr(host.ID),
	}

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		overlap, err := uc.intervals.HasOccupancyOverlap(txCtx, req.RoomID, start, end)
		if err != nil {
			return fmt.Errorf("%w: Execute - check occupancy overlap: %v", ErrInternal, err)
		}
		if overlap {
			return ErrNotAvailable
		}

		if _, err := uc.intervals.AvailabilityContaining(txCtx, req.RoomID, start, end); err != nil {
			if errors.Is(err, storage.ErrIntervalNotFound) {
				return ErrNotAvailable
			}
			return fmt.Errorf("%w: Execute - find containing availability: %v", ErrInternal, err)
		}

		if _, err := uc.intervals.Create(txCtx, iv); err != nil {
			// Страховка БД сработала на конкурентной вставке
			if errors.Is(err, storage.ErrOverlap) {
				return ErrNotAvailable
			}
			return fmt.Errorf("%w: Execute - create occupancy: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("create_booking: interval %d created in room %d for guest %q (%s - %s)",
		iv.ID, req.RoomID, guestName,
		start.Format(timeutil.DateFormat), end.Format(timeutil.DateFormat))

	return &Response{
		IntervalID: iv.ID,
		RoomID:     iv.RoomID,
		StartAt:    iv.StartAt,
		EndAt:      iv.EndAt,
		Title:      iv.Title,
	}, nil
}

package rooms

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/HC-RoomService/internal/domain"
	personStorage "github.com/m04kA/HC-RoomService/internal/infra/storage/person"
	roomStorage "github.com/m04kA/HC-RoomService/internal/infra/storage/room"
	"github.com/m04kA/HC-RoomService/pkg/ptr"
	"github.com/m04kA/HC-RoomService/pkg/timeutil"
)

// Service управляет жизненным циклом комнат, зданий и людей:
// создание комнат, смена владельца, вывод в offline, опека и предпочтения.
// Календарные следствия (постоянная доступность, зачистка доступности)
// применяются в той же транзакции, что и само изменение.
type Service struct {
	intervals IntervalRepository
	rooms     RoomRepository
	persons   PersonRepository
	txManager TransactionManager
	clock     Clock
	norm      *timeutil.Normalizer
	logger    Logger
}

// NewService создает сервис жизненного цикла комнат
func NewService(
	intervals IntervalRepository,
	rooms RoomRepository,
	persons PersonRepository,
	txManager TransactionManager,
	clock Clock,
	norm *timeutil.Normalizer,
	logger Logger,
) *Service {
	return &Service{
		intervals: intervals,
		rooms:     rooms,
		persons:   persons,
		txManager: txManager,
		clock:     clock,
		norm:      norm,
		logger:    logger,
	}
}

// CreateRoom создает комнату. Комната без владельца сразу получает
// постоянную доступность: общественными комнатами распоряжается община,
// и они открыты всегда. У человека может быть только одна комната.
func (s *Service) CreateRoom(ctx context.Context, sectionID int64, number int, ownerID *int64) (*domain.Room, error) {
	room := &domain.Room{
		SectionID: sectionID,
		Number:    number,
		OwnerID:   ownerID,
	}

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if ownerID != nil {
			if err := s.ensureOwnerFree(txCtx, *ownerID, 0); err != nil {
				return err
			}
		}

		created, err := s.rooms.Create(txCtx, room)
		if err != nil {
			if errors.Is(err, roomStorage.ErrSectionNotFound) {
				return ErrSectionNotFound
			}
			return fmt.Errorf("%w: CreateRoom - create room: %v", ErrInternal, err)
		}
		room = created

		if ownerID == nil {
			if err := s.createPermanentAvailability(txCtx, room.ID); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("rooms: created room %d (section %d, number %d)", room.ID, sectionID, number)

	return room, nil
}

// AssignOwner назначает или снимает владельца комнаты. Смена владельца
// обнуляет объявленную доступность: решения прежнего владельца не
// переносятся на нового. Комната, оставшаяся без владельца, снова
// получает постоянную доступность. Человек, уже владеющий другой
// комнатой, не может получить вторую.
func (s *Service) AssignOwner(ctx context.Context, roomID int64, ownerID *int64) error {
	if ownerID != nil {
		if _, err := s.persons.GetByID(ctx, *ownerID); err != nil {
			if errors.Is(err, personStorage.ErrPersonNotFound) {
				return ErrPersonNotFound
			}
			return fmt.Errorf("%w: AssignOwner - get owner: %v", ErrInternal, err)
		}
	}

	return s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		room, err := s.rooms.GetByID(txCtx, roomID)
		if err != nil {
			if errors.Is(err, roomStorage.ErrRoomNotFound) {
				return ErrRoomNotFound
			}
			return fmt.Errorf("%w: AssignOwner - get room: %v", ErrInternal, err)
		}

		if sameOwner(room.OwnerID, ownerID) {
			return nil
		}

		if ownerID != nil {
			if err := s.ensureOwnerFree(txCtx, *ownerID, roomID); err != nil {
				return err
			}
		}

		if err := s.rooms.SetOwner(txCtx, roomID, ownerID); err != nil {
			return fmt.Errorf("%w: AssignOwner - set owner: %v", ErrInternal, err)
		}

		if err := s.intervals.DeleteAvailabilityByRoom(txCtx, roomID); err != nil {
			return fmt.Errorf("%w: AssignOwner - reset availability: %v", ErrInternal, err)
		}

		if ownerID == nil {
			if err := s.createPermanentAvailability(txCtx, roomID); err != nil {
				return err
			}
		}

		s.logger.Info("rooms: room %d owner changed to %v", roomID, ptrLabel(ownerID))

		return nil
	})
}

// SetRoomOffline переводит комнату в offline и обратно.
// Offline-комната недоступна для бронирования и переселения.
func (s *Service) SetRoomOffline(ctx context.Context, roomID int64, offline bool) error {
	err := s.rooms.SetOffline(ctx, roomID, offline)
	if err != nil {
		if errors.Is(err, roomStorage.ErrRoomNotFound) {
			return ErrRoomNotFound
		}
		return fmt.Errorf("%w: SetRoomOffline - set offline: %v", ErrInternal, err)
	}

	s.logger.Info("rooms: room %d offline=%t", roomID, offline)

	return nil
}

// SetSectionOffline переводит секцию со всеми её комнатами в offline и
// обратно. Уход в offline стирает объявленную доступность комнат секции.
func (s *Service) SetSectionOffline(ctx context.Context, sectionID int64, offline bool) error {
	return s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		return s.setSectionOffline(txCtx, sectionID, offline)
	})
}

// SetBuildingOffline переводит здание со всеми секциями в offline и обратно
func (s *Service) SetBuildingOffline(ctx context.Context, buildingID int64, offline bool) error {
	return s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if err := s.rooms.SetBuildingOffline(txCtx, buildingID, offline); err != nil {
			if errors.Is(err, roomStorage.ErrBuildingNotFound) {
				return ErrBuildingNotFound
			}
			return fmt.Errorf("%w: SetBuildingOffline - set building offline: %v", ErrInternal, err)
		}

		sections, err := s.rooms.ListSectionsByBuilding(txCtx, buildingID)
		if err != nil {
			return fmt.Errorf("%w: SetBuildingOffline - list sections: %v", ErrInternal, err)
		}

		for _, section := range sections {
			if err := s.setSectionOffline(txCtx, section.ID, offline); err != nil {
				return err
			}
		}

		s.logger.Info("rooms: building %d offline=%t (%d sections)", buildingID, offline, len(sections))

		return nil
	})
}

// UpdatePreference меняет минимальный уровень доверия к гостям,
// допускаемым в комнату владельца
func (s *Service) UpdatePreference(ctx context.Context, personID int64, pref domain.Preference) error {
	if !pref.Valid() {
		return ErrInvalidPreference
	}

	if err := s.persons.UpdatePreference(ctx, personID, pref); err != nil {
		if errors.Is(err, personStorage.ErrPersonNotFound) {
			return ErrPersonNotFound
		}
		return fmt.Errorf("%w: UpdatePreference - update: %v", ErrInternal, err)
	}

	s.logger.Info("rooms: person %d preference set to %d", personID, pref)

	return nil
}

// SetParent назначает или снимает ответственного за комнату человека.
// Прямая ссылка на самого себя запрещена; более длинные циклы опеки
// не отслеживаются.
func (s *Service) SetParent(ctx context.Context, personID int64, parentID *int64) error {
	if parentID != nil {
		if *parentID == personID {
			return ErrSelfParent
		}
		if _, err := s.persons.GetByID(ctx, *parentID); err != nil {
			if errors.Is(err, personStorage.ErrPersonNotFound) {
				return ErrPersonNotFound
			}
			return fmt.Errorf("%w: SetParent - get parent: %v", ErrInternal, err)
		}
	}

	if err := s.persons.SetParent(ctx, personID, parentID); err != nil {
		if errors.Is(err, personStorage.ErrPersonNotFound) {
			return ErrPersonNotFound
		}
		return fmt.Errorf("%w: SetParent - set parent: %v", ErrInternal, err)
	}

	return nil
}

func (s *Service) setSectionOffline(ctx context.Context, sectionID int64, offline bool) error {
	if err := s.rooms.SetSectionOffline(ctx, sectionID, offline); err != nil {
		if errors.Is(err, roomStorage.ErrSectionNotFound) {
			return ErrSectionNotFound
		}
		return fmt.Errorf("%w: setSectionOffline - set section offline: %v", ErrInternal, err)
	}

	if err := s.rooms.SetRoomsOfflineBySection(ctx, sectionID, offline); err != nil {
		return fmt.Errorf("%w: setSectionOffline - set rooms offline: %v", ErrInternal, err)
	}

	if offline {
		roomIDs, err := s.rooms.ListRoomIDsBySection(ctx, sectionID)
		if err != nil {
			return fmt.Errorf("%w: setSectionOffline - list room ids: %v", ErrInternal, err)
		}
		if err := s.intervals.DeleteAvailabilityByRooms(ctx, roomIDs); err != nil {
			return fmt.Errorf("%w: setSectionOffline - delete availability: %v", ErrInternal, err)
		}
	}

	s.logger.Info("rooms: section %d offline=%t", sectionID, offline)

	return nil
}

// createPermanentAvailability объявляет комнату доступной с текущего
// момента и до сентинеля "никогда"
func (s *Service) createPermanentAvailability(ctx context.Context, roomID int64) error {
	iv := &domain.Interval{
		RoomID:  roomID,
		Kind:    domain.KindAvailability,
		StartAt: s.norm.InZone(s.clock.Now()),
		EndAt:   s.norm.Never(),
		Title:   domain.PermanentAvailabilityTitle,
	}

	if _, err := s.intervals.Create(ctx, iv); err != nil {
		return fmt.Errorf("%w: createPermanentAvailability - create interval: %v", ErrInternal, err)
	}

	return nil
}

// ensureOwnerFree проверяет, что человек не владеет другой комнатой.
// roomID исключается из проверки при повторном назначении той же комнаты.
func (s *Service) ensureOwnerFree(ctx context.Context, ownerID, roomID int64) error {
	existing, err := s.rooms.GetByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, roomStorage.ErrRoomNotFound) {
			return nil
		}
		return fmt.Errorf("%w: ensureOwnerFree - get room by owner: %v", ErrInternal, err)
	}

	if existing.ID != roomID {
		return ErrOwnerHasRoom
	}

	return nil
}

func sameOwner(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func ptrLabel(id *int64) interface{} {
	if id == nil {
		return "none"
	}
	return ptr.Deref(id)
}

package rooms

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HC-RoomService/internal/domain"
	personStorage "github.com/m04kA/HC-RoomService/internal/infra/storage/person"
	roomStorage "github.com/m04kA/HC-RoomService/internal/infra/storage/room"
	"github.com/m04kA/HC-RoomService/pkg/ptr"
	"github.com/m04kA/HC-RoomService/pkg/timeutil"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// inlineTxManager выполняет замыкание без транзакции
type inlineTxManager struct{}

func (inlineTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fakeIntervalRepo struct {
	nextID    int64
	intervals map[int64]*domain.Interval
}

func newFakeIntervalRepo() *fakeIntervalRepo {
	return &fakeIntervalRepo{intervals: make(map[int64]*domain.Interval)}
}

func (f *fakeIntervalRepo) Create(_ context.Context, iv *domain.Interval) (*domain.Interval, error) {
	f.nextID++
	cp := *iv
	cp.ID = f.nextID
	f.intervals[cp.ID] = &cp
	return &cp, nil
}

func (f *fakeIntervalRepo) DeleteAvailabilityByRoom(_ context.Context, roomID int64) error {
	for id, iv := range f.intervals {
		if iv.RoomID == roomID && iv.Kind == domain.KindAvailability {
			delete(f.intervals, id)
		}
	}
	return nil
}

func (f *fakeIntervalRepo) DeleteAvailabilityByRooms(ctx context.Context, roomIDs []int64) error {
	for _, id := range roomIDs {
		if err := f.DeleteAvailabilityByRoom(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeIntervalRepo) availabilityOf(roomID int64) []*domain.Interval {
	var out []*domain.Interval
	for _, iv := range f.intervals {
		if iv.RoomID == roomID && iv.Kind == domain.KindAvailability {
			out = append(out, iv)
		}
	}
	return out
}

type fakeRoomRepo struct {
	nextID   int64
	rooms    map[int64]*domain.Room
	sections map[int64][]int64 // секция -> комнаты
}

func newFakeRoomRepo() *fakeRoomRepo {
	return &fakeRoomRepo{
		rooms:    make(map[int64]*domain.Room),
		sections: map[int64][]int64{1: {}},
	}
}

func (f *fakeRoomRepo) Create(_ context.Context, r *domain.Room) (*domain.Room, error) {
	if _, ok := f.sections[r.SectionID]; !ok {
		return nil, roomStorage.ErrSectionNotFound
	}
	f.nextID++
	cp := *r
	cp.ID = f.nextID
	f.rooms[cp.ID] = &cp
	f.sections[r.SectionID] = append(f.sections[r.SectionID], cp.ID)
	return &cp, nil
}

func (f *fakeRoomRepo) GetByID(_ context.Context, id int64) (*domain.Room, error) {
	r, ok := f.rooms[id]
	if !ok {
		return nil, roomStorage.ErrRoomNotFound
	}
	return r, nil
}

func (f *fakeRoomRepo) GetByOwner(_ context.Context, ownerID int64) (*domain.Room, error) {
	for _, r := range f.rooms {
		if r.OwnerID != nil && *r.OwnerID == ownerID {
			return r, nil
		}
	}
	return nil, roomStorage.ErrRoomNotFound
}

func (f *fakeRoomRepo) SetOwner(_ context.Context, roomID int64, ownerID *int64) error {
	r, ok := f.rooms[roomID]
	if !ok {
		return roomStorage.ErrRoomNotFound
	}
	r.OwnerID = ownerID
	return nil
}

func (f *fakeRoomRepo) SetOffline(_ context.Context, roomID int64, offline bool) error {
	r, ok := f.rooms[roomID]
	if !ok {
		return roomStorage.ErrRoomNotFound
	}
	r.IsOffline = offline
	return nil
}

func (f *fakeRoomRepo) SetBuildingOffline(_ context.Context, _ int64, _ bool) error { return nil }

func (f *fakeRoomRepo) SetSectionOffline(_ context.Context, sectionID int64, _ bool) error {
	if _, ok := f.sections[sectionID]; !ok {
		return roomStorage.ErrSectionNotFound
	}
	return nil
}

func (f *fakeRoomRepo) SetRoomsOfflineBySection(_ context.Context, sectionID int64, offline bool) error {
	for _, id := range f.sections[sectionID] {
		f.rooms[id].IsOffline = offline
	}
	return nil
}

func (f *fakeRoomRepo) ListSectionsByBuilding(_ context.Context, _ int64) ([]*domain.Section, error) {
	out := make([]*domain.Section, 0, len(f.sections))
	for id := range f.sections {
		out = append(out, &domain.Section{ID: id})
	}
	return out, nil
}

func (f *fakeRoomRepo) ListRoomIDsBySection(_ context.Context, sectionID int64) ([]int64, error) {
	return f.sections[sectionID], nil
}

type fakePersonRepo struct {
	persons map[int64]*domain.Person
}

func (f *fakePersonRepo) GetByID(_ context.Context, id int64) (*domain.Person, error) {
	p, ok := f.persons[id]
	if !ok {
		return nil, personStorage.ErrPersonNotFound
	}
	return p, nil
}

func (f *fakePersonRepo) UpdatePreference(_ context.Context, id int64, pref domain.Preference) error {
	p, ok := f.persons[id]
	if !ok {
		return personStorage.ErrPersonNotFound
	}
	p.Preference = pref
	return nil
}

func (f *fakePersonRepo) SetParent(_ context.Context, id int64, parentID *int64) error {
	p, ok := f.persons[id]
	if !ok {
		return personStorage.ErrPersonNotFound
	}
	p.ParentID = parentID
	return nil
}

func newTestService(intervals *fakeIntervalRepo, rooms *fakeRoomRepo, persons *fakePersonRepo) *Service {
	now := time.Date(2026, time.September, 1, 10, 0, 0, 0, time.UTC)
	return NewService(intervals, rooms, persons, inlineTxManager{}, fixedClock{now: now},
		timeutil.MustNormalizer("UTC"), nopLogger{})
}

func newPersons() *fakePersonRepo {
	return &fakePersonRepo{persons: map[int64]*domain.Person{
		7: {ID: 7, Name: "Ира"},
		8: {ID: 8, Name: "Оля"},
	}}
}

func TestService_CreateRoom(t *testing.T) {
	ctx := context.Background()

	t.Run("ownerless room gets permanent availability", func(t *testing.T) {
		intervals := newFakeIntervalRepo()
		rooms := newFakeRoomRepo()
		svc := newTestService(intervals, rooms, newPersons())

		room, err := svc.CreateRoom(ctx, 1, 101, nil)
		require.NoError(t, err)

		avail := intervals.availabilityOf(room.ID)
		require.Len(t, avail, 1)
		assert.Equal(t, 2999, avail[0].EndAt.Year())
		assert.Equal(t, domain.PermanentAvailabilityTitle, avail[0].Title)
	})

	t.Run("owned room starts with no availability", func(t *testing.T) {
		intervals := newFakeIntervalRepo()
		rooms := newFakeRoomRepo()
		svc := newTestService(intervals, rooms, newPersons())

		room, err := svc.CreateRoom(ctx, 1, 102, ptr.Ptr(int64(7)))
		require.NoError(t, err)

		assert.Empty(t, intervals.availabilityOf(room.ID))
	})

	t.Run("unknown section", func(t *testing.T) {
		svc := newTestService(newFakeIntervalRepo(), newFakeRoomRepo(), newPersons())

		_, err := svc.CreateRoom(ctx, 99, 101, nil)
		assert.ErrorIs(t, err, ErrSectionNotFound)
	})

	t.Run("owner of another room cannot get a second one", func(t *testing.T) {
		svc := newTestService(newFakeIntervalRepo(), newFakeRoomRepo(), newPersons())

		_, err := svc.CreateRoom(ctx, 1, 101, ptr.Ptr(int64(7)))
		require.NoError(t, err)

		_, err = svc.CreateRoom(ctx, 1, 102, ptr.Ptr(int64(7)))
		assert.ErrorIs(t, err, ErrOwnerHasRoom)
	})
}

func TestService_AssignOwner(t *testing.T) {
	ctx := context.Background()

	t.Run("owner change wipes declared availability", func(t *testing.T) {
		intervals := newFakeIntervalRepo()
		rooms := newFakeRoomRepo()
		svc := newTestService(intervals, rooms, newPersons())

		room, err := svc.CreateRoom(ctx, 1, 101, ptr.Ptr(int64(7)))
		require.NoError(t, err)

		_, err = intervals.Create(ctx, &domain.Interval{
			RoomID:  room.ID,
			Kind:    domain.KindAvailability,
			StartAt: time.Date(2026, time.September, 10, 11, 59, 0, 0, time.UTC),
			EndAt:   time.Date(2026, time.September, 20, 12, 1, 0, 0, time.UTC),
		})
		require.NoError(t, err)

		require.NoError(t, svc.AssignOwner(ctx, room.ID, ptr.Ptr(int64(8))))

		assert.Empty(t, intervals.availabilityOf(room.ID))
		assert.Equal(t, int64(8), ptr.Deref(rooms.rooms[room.ID].OwnerID))
	})

	t.Run("clearing owner restores permanent availability", func(t *testing.T) {
		intervals := newFakeIntervalRepo()
		rooms := newFakeRoomRepo()
		svc := newTestService(intervals, rooms, newPersons())

		room, err := svc.CreateRoom(ctx, 1, 101, ptr.Ptr(int64(7)))
		require.NoError(t, err)

		require.NoError(t, svc.AssignOwner(ctx, room.ID, nil))

		avail := intervals.availabilityOf(room.ID)
		require.Len(t, avail, 1)
		assert.Equal(t, 2999, avail[0].EndAt.Year())
	})

	t.Run("same owner is a noop", func(t *testing.T) {
		intervals := newFakeIntervalRepo()
		rooms := newFakeRoomRepo()
		svc := newTestService(intervals, rooms, newPersons())

		room, err := svc.CreateRoom(ctx, 1, 101, ptr.Ptr(int64(7)))
		require.NoError(t, err)

		_, err = intervals.Create(ctx, &domain.Interval{
			RoomID: room.ID,
			Kind:   domain.KindAvailability,
		})
		require.NoError(t, err)

		require.NoError(t, svc.AssignOwner(ctx, room.ID, ptr.Ptr(int64(7))))

		assert.Len(t, intervals.availabilityOf(room.ID), 1, "доступность не должна сбрасываться")
	})

	t.Run("unknown owner", func(t *testing.T) {
		svc := newTestService(newFakeIntervalRepo(), newFakeRoomRepo(), newPersons())

		err := svc.AssignOwner(ctx, 1, ptr.Ptr(int64(99)))
		assert.ErrorIs(t, err, ErrPersonNotFound)
	})

	t.Run("owner of another room is rejected", func(t *testing.T) {
		intervals := newFakeIntervalRepo()
		rooms := newFakeRoomRepo()
		svc := newTestService(intervals, rooms, newPersons())

		_, err := svc.CreateRoom(ctx, 1, 101, ptr.Ptr(int64(7)))
		require.NoError(t, err)
		second, err := svc.CreateRoom(ctx, 1, 102, nil)
		require.NoError(t, err)

		err = svc.AssignOwner(ctx, second.ID, ptr.Ptr(int64(7)))
		assert.ErrorIs(t, err, ErrOwnerHasRoom)
	})

	t.Run("unknown room", func(t *testing.T) {
		svc := newTestService(newFakeIntervalRepo(), newFakeRoomRepo(), newPersons())

		err := svc.AssignOwner(ctx, 42, nil)
		assert.ErrorIs(t, err, ErrRoomNotFound)
	})
}

func TestService_SetSectionOffline(t *testing.T) {
	ctx := context.Background()

	intervals := newFakeIntervalRepo()
	rooms := newFakeRoomRepo()
	svc := newTestService(intervals, rooms, newPersons())

	roomA, err := svc.CreateRoom(ctx, 1, 101, nil)
	require.NoError(t, err)
	roomB, err := svc.CreateRoom(ctx, 1, 102, nil)
	require.NoError(t, err)

	require.NoError(t, svc.SetSectionOffline(ctx, 1, true))

	assert.True(t, rooms.rooms[roomA.ID].IsOffline)
	assert.True(t, rooms.rooms[roomB.ID].IsOffline)
	assert.Empty(t, intervals.availabilityOf(roomA.ID))
	assert.Empty(t, intervals.availabilityOf(roomB.ID))

	// возврат в online не восстанавливает доступность
	require.NoError(t, svc.SetSectionOffline(ctx, 1, false))
	assert.False(t, rooms.rooms[roomA.ID].IsOffline)
	assert.Empty(t, intervals.availabilityOf(roomA.ID))
}

func TestService_UpdatePreference(t *testing.T) {
	ctx := context.Background()

	t.Run("valid preference is stored", func(t *testing.T) {
		persons := newPersons()
		svc := newTestService(newFakeIntervalRepo(), newFakeRoomRepo(), persons)

		require.NoError(t, svc.UpdatePreference(ctx, 7, domain.PreferenceMembers))
		assert.Equal(t, domain.PreferenceMembers, persons.persons[7].Preference)
	})

	t.Run("invalid preference is rejected", func(t *testing.T) {
		svc := newTestService(newFakeIntervalRepo(), newFakeRoomRepo(), newPersons())

		err := svc.UpdatePreference(ctx, 7, domain.Preference(9))
		assert.ErrorIs(t, err, ErrInvalidPreference)
	})

	t.Run("unknown person", func(t *testing.T) {
		svc := newTestService(newFakeIntervalRepo(), newFakeRoomRepo(), newPersons())

		err := svc.UpdatePreference(ctx, 99, domain.PreferenceAnyone)
		assert.ErrorIs(t, err, ErrPersonNotFound)
	})
}

func TestService_SetParent(t *testing.T) {
	ctx := context.Background()

	t.Run("parent is stored", func(t *testing.T) {
		persons := newPersons()
		svc := newTestService(newFakeIntervalRepo(), newFakeRoomRepo(), persons)

		require.NoError(t, svc.SetParent(ctx, 7, ptr.Ptr(int64(8))))
		assert.Equal(t, int64(8), ptr.Deref(persons.persons[7].ParentID))
	})

	t.Run("self parent is rejected", func(t *testing.T) {
		svc := newTestService(newFakeIntervalRepo(), newFakeRoomRepo(), newPersons())

		err := svc.SetParent(ctx, 7, ptr.Ptr(int64(7)))
		assert.ErrorIs(t, err, ErrSelfParent)
	})

	t.Run("unknown parent", func(t *testing.T) {
		svc := newTestService(newFakeIntervalRepo(), newFakeRoomRepo(), newPersons())

		err := svc.SetParent(ctx, 7, ptr.Ptr(int64(99)))
		assert.ErrorIs(t, err, ErrPersonNotFound)
	})

	t.Run("clearing parent", func(t *testing.T) {
		persons := newPersons()
		persons.persons[7].ParentID = ptr.Ptr(int64(8))
		svc := newTestService(newFakeIntervalRepo(), newFakeRoomRepo(), persons)

		require.NoError(t, svc.SetParent(ctx, 7, nil))
		assert.Nil(t, persons.persons[7].ParentID)
	})
}

package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HC-RoomService/internal/domain"
	storage "github.com/m04kA/HC-RoomService/internal/infra/storage/interval"
	roomStorage "github.com/m04kA/HC-RoomService/internal/infra/storage/room"
	"github.com/m04kA/HC-RoomService/internal/service/bookings/models"
	"github.com/m04kA/HC-RoomService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type inlineTxManager struct{}

func (inlineTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeIntervalRepo struct {
	nextID    int64
	intervals map[int64]*domain.Interval
}

func newFakeIntervalRepo() *fakeIntervalRepo {
	return &fakeIntervalRepo{intervals: make(map[int64]*domain.Interval)}
}

func (f *fakeIntervalRepo) add(iv *domain.Interval) *domain.Interval {
	f.nextID++
	cp := *iv
	cp.ID = f.nextID
	f.intervals[cp.ID] = &cp
	return &cp
}

func (f *fakeIntervalRepo) GetByID(_ context.Context, id int64) (*domain.Interval, error) {
	iv, ok := f.intervals[id]
	if !ok {
		return nil, storage.ErrIntervalNotFound
	}
	return iv, nil
}

func (f *fakeIntervalRepo) ListByRoom(_ context.Context, roomID int64, kind *domain.IntervalKind) ([]*domain.Interval, error) {
	var out []*domain.Interval
	for _, iv := range f.intervals {
		if iv.RoomID != roomID {
			continue
		}
		if kind != nil && iv.Kind != *kind {
			continue
		}
		out = append(out, iv)
	}
	return out, nil
}

func (f *fakeIntervalRepo) UpdateSpan(_ context.Context, id int64, start, end time.Time) error {
	iv, ok := f.intervals[id]
	if !ok {
		return storage.ErrIntervalNotFound
	}
	iv.StartAt = start
	iv.EndAt = end
	return nil
}

func (f *fakeIntervalRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.intervals[id]; !ok {
		return storage.ErrIntervalNotFound
	}
	delete(f.intervals, id)
	return nil
}

type fakeRoomRepo struct {
	rooms map[int64]*domain.Room
}

func (f *fakeRoomRepo) GetByID(_ context.Context, id int64) (*domain.Room, error) {
	r, ok := f.rooms[id]
	if !ok {
		return nil, roomStorage.ErrRoomNotFound
	}
	return r, nil
}

// fakeChecker отвечает по списку разрешенных отрезков
type fakeChecker struct {
	freeSpans [][2]time.Time
}

func (f *fakeChecker) SpanFree(_ context.Context, _ *domain.Room, start, end time.Time, _ domain.GuestType) (bool, error) {
	for _, span := range f.freeSpans {
		if !start.Before(span[0]) && !end.After(span[1]) {
			return true, nil
		}
	}
	return false, nil
}

func day(d int) time.Time {
	return time.Date(2026, time.September, d, 12, 1, 0, 0, time.UTC)
}

func dayEnd(d int) time.Time {
	return time.Date(2026, time.September, d, 11, 59, 0, 0, time.UTC)
}

func seedBooking(intervals *fakeIntervalRepo, creatorID int64) *domain.Interval {
	return intervals.add(&domain.Interval{
		RoomID:    1,
		Kind:      domain.KindOccupancy,
		StartAt:   day(10),
		EndAt:     dayEnd(15),
		Title:     "Марк hosted by Оля",
		CreatorID: ptr.Ptr(creatorID),
	})
}

func newTestService(intervals *fakeIntervalRepo, checker *fakeChecker, roomOwner *int64) *Service {
	rooms := &fakeRoomRepo{rooms: map[int64]*domain.Room{
		1: {ID: 1, OwnerID: roomOwner},
	}}
	if checker == nil {
		checker = &fakeChecker{}
	}
	return NewService(intervals, rooms, checker, inlineTxManager{}, nopLogger{})
}

func TestService_GetRoomIntervals(t *testing.T) {
	ctx := context.Background()

	intervals := newFakeIntervalRepo()
	seedBooking(intervals, 42)
	intervals.add(&domain.Interval{RoomID: 1, Kind: domain.KindAvailability, StartAt: day(1), EndAt: dayEnd(30)})
	svc := newTestService(intervals, nil, nil)

	t.Run("all intervals", func(t *testing.T) {
		list, err := svc.GetRoomIntervals(ctx, 1, nil)
		require.NoError(t, err)
		assert.Len(t, list, 2)
	})

	t.Run("filtered by kind", func(t *testing.T) {
		list, err := svc.GetRoomIntervals(ctx, 1, ptr.Ptr(domain.KindOccupancy))
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, string(domain.KindOccupancy), list[0].Kind)
	})

	t.Run("unknown room", func(t *testing.T) {
		_, err := svc.GetRoomIntervals(ctx, 99, nil)
		assert.ErrorIs(t, err, ErrRoomNotFound)
	})
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("creator may cancel", func(t *testing.T) {
		intervals := newFakeIntervalRepo()
		occ := seedBooking(intervals, 42)
		svc := newTestService(intervals, nil, nil)

		require.NoError(t, svc.Delete(ctx, occ.ID, 42))
		_, err := intervals.GetByID(ctx, occ.ID)
		assert.ErrorIs(t, err, storage.ErrIntervalNotFound)
	})

	t.Run("room owner may cancel", func(t *testing.T) {
		intervals := newFakeIntervalRepo()
		occ := seedBooking(intervals, 42)
		svc := newTestService(intervals, nil, ptr.Ptr(int64(7)))

		require.NoError(t, svc.Delete(ctx, occ.ID, 7))
	})

	t.Run("stranger is rejected", func(t *testing.T) {
		intervals := newFakeIntervalRepo()
		occ := seedBooking(intervals, 42)
		svc := newTestService(intervals, nil, ptr.Ptr(int64(7)))

		err := svc.Delete(ctx, occ.ID, 99)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("availability window cannot be cancelled here", func(t *testing.T) {
		intervals := newFakeIntervalRepo()
		window := intervals.add(&domain.Interval{RoomID: 1, Kind: domain.KindAvailability, StartAt: day(1), EndAt: dayEnd(30)})
		svc := newTestService(intervals, nil, nil)

		err := svc.Delete(ctx, window.ID, 42)
		assert.ErrorIs(t, err, ErrNotOccupancy)
	})

	t.Run("unknown interval", func(t *testing.T) {
		svc := newTestService(newFakeIntervalRepo(), nil, nil)

		err := svc.Delete(ctx, 404, 42)
		assert.ErrorIs(t, err, ErrIntervalNotFound)
	})
}

func TestService_Resize(t *testing.T) {
	ctx := context.Background()

	resize := func(id int64, startDay, endDay int) models.ResizeRequest {
		return models.ResizeRequest{
			IntervalID: id,
			CallerID:   42,
			NewStart:   day(startDay),
			NewEnd:     dayEnd(endDay),
		}
	}

	t.Run("shrinking always succeeds", func(t *testing.T) {
		intervals := newFakeIntervalRepo()
		occ := seedBooking(intervals, 42)
		svc := newTestService(intervals, &fakeChecker{}, nil)

		require.NoError(t, svc.Resize(ctx, resize(occ.ID, 11, 14)))

		got, err := intervals.GetByID(ctx, occ.ID)
		require.NoError(t, err)
		assert.True(t, got.StartAt.Equal(day(11)))
		assert.True(t, got.EndAt.Equal(dayEnd(14)))
	})

	t.Run("extending into free margin succeeds", func(t *testing.T) {
		intervals := newFakeIntervalRepo()
		occ := seedBooking(intervals, 42)
		checker := &fakeChecker{freeSpans: [][2]time.Time{
			{day(8), day(10)},
			{dayEnd(15), dayEnd(18)},
		}}
		svc := newTestService(intervals, checker, nil)

		require.NoError(t, svc.Resize(ctx, resize(occ.ID, 8, 18)))

		got, err := intervals.GetByID(ctx, occ.ID)
		require.NoError(t, err)
		assert.True(t, got.StartAt.Equal(day(8)))
		assert.True(t, got.EndAt.Equal(dayEnd(18)))
	})

	t.Run("blocked edge keeps old bound and reports conflict", func(t *testing.T) {
		intervals := newFakeIntervalRepo()
		occ := seedBooking(intervals, 42)
		// хвостовой отрезок свободен, головной - нет
		checker := &fakeChecker{freeSpans: [][2]time.Time{
			{dayEnd(15), dayEnd(18)},
		}}
		svc := newTestService(intervals, checker, nil)

		err := svc.Resize(ctx, resize(occ.ID, 8, 18))
		assert.ErrorIs(t, err, ErrResizeConflict)

		got, gerr := intervals.GetByID(ctx, occ.ID)
		require.NoError(t, gerr)
		assert.True(t, got.StartAt.Equal(day(10)), "головная граница остается прежней")
		assert.True(t, got.EndAt.Equal(dayEnd(18)), "хвостовая граница применяется")
	})

	t.Run("inverted span", func(t *testing.T) {
		intervals := newFakeIntervalRepo()
		occ := seedBooking(intervals, 42)
		svc := newTestService(intervals, nil, nil)

		err := svc.Resize(ctx, resize(occ.ID, 15, 10))
		assert.ErrorIs(t, err, ErrInvalidSpan)
	})

	t.Run("caller without rights", func(t *testing.T) {
		intervals := newFakeIntervalRepo()
		occ := seedBooking(intervals, 42)
		svc := newTestService(intervals, nil, nil)

		req := resize(occ.ID, 11, 14)
		req.CallerID = 99
		err := svc.Resize(ctx, req)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}

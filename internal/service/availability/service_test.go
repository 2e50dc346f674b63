package availability

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HC-RoomService/internal/domain"
	storage "github.com/m04kA/HC-RoomService/internal/infra/storage/interval"
	roomStorage "github.com/m04kA/HC-RoomService/internal/infra/storage/room"
	"github.com/m04kA/HC-RoomService/pkg/ptr"
	"github.com/m04kA/HC-RoomService/pkg/timeutil"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// fakeIntervalRepo воспроизводит семантику репозитория интервалов в памяти
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

func (f *fakeIntervalRepo) byRoom(roomID int64, kind *domain.IntervalKind) []*domain.Interval {
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
	sort.Slice(out, func(i, j int) bool { return out[i].StartAt.Before(out[j].StartAt) })
	return out
}

func (f *fakeIntervalRepo) HasOccupancyOverlap(_ context.Context, roomID int64, start, end time.Time) (bool, error) {
	for _, iv := range f.byRoom(roomID, ptr.Ptr(domain.KindOccupancy)) {
		if iv.Overlaps(start, end) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeIntervalRepo) AvailabilityContaining(_ context.Context, roomID int64, start, end time.Time) (*domain.Interval, error) {
	for _, iv := range f.byRoom(roomID, ptr.Ptr(domain.KindAvailability)) {
		if iv.Contains(start, end) {
			return iv, nil
		}
	}
	return nil, storage.ErrIntervalNotFound
}

func (f *fakeIntervalRepo) NextOccupancy(_ context.Context, roomID int64, from, before time.Time) (*domain.Interval, error) {
	for _, iv := range f.byRoom(roomID, ptr.Ptr(domain.KindOccupancy)) {
		if !iv.StartAt.Before(from) && iv.StartAt.Before(before) {
			return iv, nil
		}
	}
	return nil, storage.ErrIntervalNotFound
}

func (f *fakeIntervalRepo) ListByRoom(_ context.Context, roomID int64, kind *domain.IntervalKind) ([]*domain.Interval, error) {
	return f.byRoom(roomID, kind), nil
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
	room, ok := f.rooms[id]
	if !ok {
		return nil, roomStorage.ErrRoomNotFound
	}
	return room, nil
}

func newService(intervals *fakeIntervalRepo, rooms map[int64]*domain.Room) *Service {
	return NewService(intervals, &fakeRoomRepo{rooms: rooms}, timeutil.MustNormalizer("UTC"), nopLogger{})
}

func date(norm *timeutil.Normalizer, s string) time.Time {
	d, err := norm.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestService_IsRoomAvailable(t *testing.T) {
	norm := timeutil.MustNormalizer("UTC")
	ctx := context.Background()

	room := &domain.Room{ID: 1}
	intervals := newFakeIntervalRepo()
	svc := newService(intervals, map[int64]*domain.Room{1: room})

	// окно доступности 10-20 сентября
	intervals.add(&domain.Interval{
		RoomID:  1,
		Kind:    domain.KindAvailability,
		StartAt: norm.WindowOpen(date(norm, "2026-09-10")),
		EndAt:   norm.WindowClose(date(norm, "2026-09-20")),
	})

	query := func(startDay, endDay string) SearchQuery {
		return SearchQuery{
			Start:     norm.CheckIn(date(norm, startDay)),
			End:       norm.CheckOut(date(norm, endDay)),
			GuestType: domain.GuestStranger,
		}
	}

	t.Run("span inside window is available", func(t *testing.T) {
		ok, err := svc.IsRoomAvailable(ctx, 1, query("2026-09-12", "2026-09-15"))
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("span crossing window edge is not available", func(t *testing.T) {
		ok, err := svc.IsRoomAvailable(ctx, 1, query("2026-09-18", "2026-09-25"))
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("span outside window is not available", func(t *testing.T) {
		ok, err := svc.IsRoomAvailable(ctx, 1, query("2026-10-01", "2026-10-05"))
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("occupancy blocks the span", func(t *testing.T) {
		occ := intervals.add(&domain.Interval{
			RoomID:  1,
			Kind:    domain.KindOccupancy,
			StartAt: norm.CheckIn(date(norm, "2026-09-13")),
			EndAt:   norm.CheckOut(date(norm, "2026-09-14")),
		})
		defer func() { _ = intervals.Delete(ctx, occ.ID) }()

		ok, err := svc.IsRoomAvailable(ctx, 1, query("2026-09-12", "2026-09-15"))
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("back to back bookings do not conflict", func(t *testing.T) {
		occ := intervals.add(&domain.Interval{
			RoomID:  1,
			Kind:    domain.KindOccupancy,
			StartAt: norm.CheckIn(date(norm, "2026-09-10")),
			EndAt:   norm.CheckOut(date(norm, "2026-09-12")),
		})
		defer func() { _ = intervals.Delete(ctx, occ.ID) }()

		// заезд 12:01 в день выезда 11:59 предыдущего гостя
		ok, err := svc.IsRoomAvailable(ctx, 1, query("2026-09-12", "2026-09-15"))
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("unknown room", func(t *testing.T) {
		_, err := svc.IsRoomAvailable(ctx, 99, query("2026-09-12", "2026-09-15"))
		assert.ErrorIs(t, err, ErrRoomNotFound)
	})

	t.Run("inverted span", func(t *testing.T) {
		q := query("2026-09-15", "2026-09-12")
		_, err := svc.IsRoomAvailable(ctx, 1, q)
		assert.ErrorIs(t, err, ErrInvalidSpan)
	})
}

func TestService_SpanFree_Admission(t *testing.T) {
	norm := timeutil.MustNormalizer("UTC")
	ctx := context.Background()

	ownerID := int64(5)
	pref := domain.PreferenceKnown
	room := &domain.Room{ID: 2, OwnerID: &ownerID, OwnerPreference: &pref}

	intervals := newFakeIntervalRepo()
	intervals.add(&domain.Interval{
		RoomID:  2,
		Kind:    domain.KindAvailability,
		StartAt: norm.WindowOpen(date(norm, "2026-09-01")),
		EndAt:   norm.WindowClose(date(norm, "2026-09-30")),
	})

	svc := newService(intervals, map[int64]*domain.Room{2: room})

	start := norm.CheckIn(date(norm, "2026-09-10"))
	end := norm.CheckOut(date(norm, "2026-09-12"))

	free, err := svc.SpanFree(ctx, room, start, end, domain.GuestStranger)
	require.NoError(t, err)
	assert.False(t, free, "владелец принимает только знакомых")

	free, err = svc.SpanFree(ctx, room, start, end, domain.GuestKnown)
	require.NoError(t, err)
	assert.True(t, free)

	offline := &domain.Room{ID: 2, IsOffline: true}
	free, err = svc.SpanFree(ctx, offline, start, end, domain.GuestMember)
	require.NoError(t, err)
	assert.False(t, free)
}

func TestService_LastAvailableThrough(t *testing.T) {
	norm := timeutil.MustNormalizer("UTC")
	ctx := context.Background()

	room := &domain.Room{ID: 3}
	intervals := newFakeIntervalRepo()
	svc := newService(intervals, map[int64]*domain.Room{3: room})

	avail := intervals.add(&domain.Interval{
		RoomID:  3,
		Kind:    domain.KindAvailability,
		StartAt: norm.WindowOpen(date(norm, "2026-09-01")),
		EndAt:   norm.WindowClose(date(norm, "2026-09-30")),
	})

	from := norm.CheckIn(date(norm, "2026-09-05"))

	t.Run("horizon is window end without bookings", func(t *testing.T) {
		horizon, err := svc.LastAvailableThrough(ctx, 3, from)
		require.NoError(t, err)
		require.NotNil(t, horizon)
		assert.True(t, horizon.Equal(avail.EndAt))
	})

	t.Run("next booking caps the horizon", func(t *testing.T) {
		occ := intervals.add(&domain.Interval{
			RoomID:  3,
			Kind:    domain.KindOccupancy,
			StartAt: norm.CheckIn(date(norm, "2026-09-18")),
			EndAt:   norm.CheckOut(date(norm, "2026-09-20")),
		})
		defer func() { _ = intervals.Delete(ctx, occ.ID) }()

		horizon, err := svc.LastAvailableThrough(ctx, 3, from)
		require.NoError(t, err)
		require.NotNil(t, horizon)
		assert.True(t, horizon.Equal(occ.StartAt))
	})

	t.Run("uncovered moment yields nil", func(t *testing.T) {
		horizon, err := svc.LastAvailableThrough(ctx, 3, norm.CheckIn(date(norm, "2026-11-01")))
		require.NoError(t, err)
		assert.Nil(t, horizon)
	})
}

package delete_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HC-RoomService/internal/domain"
	storage "github.com/m04kA/HC-RoomService/internal/infra/storage/interval"
	roomStorage "github.com/m04kA/HC-RoomService/internal/infra/storage/room"
	"github.com/m04kA/HC-RoomService/internal/service/reassignment"
	"github.com/m04kA/HC-RoomService/pkg/ptr"
	"github.com/m04kA/HC-RoomService/pkg/timeutil"
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

func (f *fakeIntervalRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.intervals[id]; !ok {
		return storage.ErrIntervalNotFound
	}
	delete(f.intervals, id)
	return nil
}

func (f *fakeIntervalRepo) OccupanciesWithin(_ context.Context, roomID int64, spanStart, spanEnd time.Time) ([]*domain.Interval, error) {
	var out []*domain.Interval
	for _, iv := range f.intervals {
		if iv.RoomID != roomID || iv.Kind != domain.KindOccupancy {
			continue
		}
		if !iv.StartAt.Before(spanStart) && !iv.EndAt.After(spanEnd) {
			out = append(out, iv)
		}
	}
	return out, nil
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

// fakeReassigner считает каждое обращение; исход задается флагом
type fakeReassigner struct {
	calls  int
	assign bool
}

func (f *fakeReassigner) PlanReassign(_ context.Context, _ *domain.Interval, _, _ time.Time, _ string, _ *domain.Room) (*reassignment.Result, error) {
	f.calls++

	res := &reassignment.Result{
		Notification: reassignment.Notification{
			Recipient: "host@community.local",
			Subject:   "Booking update",
			Body:      "moved",
		},
	}
	if f.assign {
		res.AssignedRoomID = ptr.Ptr(int64(77))
	}
	return res, nil
}

type fakeNotifier struct {
	sent int
}

func (f *fakeNotifier) Notify(context.Context, string, string, string) { f.sent++ }

var testNorm = timeutil.MustNormalizer("UTC")

func mustDate(s string) time.Time {
	d, err := testNorm.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

type fixture struct {
	intervals  *fakeIntervalRepo
	reassigner *fakeReassigner
	notifier   *fakeNotifier
	uc         *UseCase
	window     *domain.Interval
}

func newFixture(ownerID *int64, assign bool) *fixture {
	intervals := newFakeIntervalRepo()
	window := intervals.add(&domain.Interval{
		RoomID:  1,
		Kind:    domain.KindAvailability,
		StartAt: testNorm.WindowOpen(mustDate("2026-09-01")),
		EndAt:   testNorm.WindowClose(mustDate("2026-09-30")),
	})

	rooms := &fakeRoomRepo{rooms: map[int64]*domain.Room{1: {ID: 1, OwnerID: ownerID}}}
	reassigner := &fakeReassigner{assign: assign}
	notifier := &fakeNotifier{}

	uc := NewUseCase(intervals, rooms, reassigner, notifier, inlineTxManager{}, nopLogger{})

	return &fixture{
		intervals:  intervals,
		reassigner: reassigner,
		notifier:   notifier,
		uc:         uc,
		window:     window,
	}
}

func (fx *fixture) addBooking(startDay, endDay string) *domain.Interval {
	return fx.intervals.add(&domain.Interval{
		RoomID:    1,
		Kind:      domain.KindOccupancy,
		StartAt:   testNorm.CheckIn(mustDate(startDay)),
		EndAt:     testNorm.CheckOut(mustDate(endDay)),
		GuestName: ptr.Ptr("Марк"),
		CreatorID: ptr.Ptr(int64(42)),
	})
}

func TestUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("revocation moves every sheltered booking out", func(t *testing.T) {
		fx := newFixture(ptr.Ptr(int64(7)), true)

		first := fx.addBooking("2026-09-05", "2026-09-10")
		second := fx.addBooking("2026-09-15", "2026-09-20")

		resp, err := fx.uc.Execute(ctx, Request{IntervalID: fx.window.ID, CallerID: 7})
		require.NoError(t, err)

		assert.Equal(t, int64(1), resp.RoomID)
		assert.Equal(t, 2, resp.DisplacedGuests)
		assert.Equal(t, 2, resp.ReassignedGuests)
		assert.Equal(t, 0, resp.UnassignedGuests)
		assert.Equal(t, 2, fx.reassigner.calls)

		// исходная комната полностью освобождена
		_, gerr := fx.intervals.GetByID(ctx, first.ID)
		assert.ErrorIs(t, gerr, storage.ErrIntervalNotFound)
		_, gerr = fx.intervals.GetByID(ctx, second.ID)
		assert.ErrorIs(t, gerr, storage.ErrIntervalNotFound)
		_, gerr = fx.intervals.GetByID(ctx, fx.window.ID)
		assert.ErrorIs(t, gerr, storage.ErrIntervalNotFound)

		assert.Equal(t, 2, fx.notifier.sent)
	})

	t.Run("empty window is revoked silently", func(t *testing.T) {
		fx := newFixture(ptr.Ptr(int64(7)), true)

		resp, err := fx.uc.Execute(ctx, Request{IntervalID: fx.window.ID, CallerID: 7})
		require.NoError(t, err)

		assert.Equal(t, 0, resp.DisplacedGuests)
		assert.Equal(t, 0, fx.notifier.sent)

		_, gerr := fx.intervals.GetByID(ctx, fx.window.ID)
		assert.ErrorIs(t, gerr, storage.ErrIntervalNotFound)
	})

	t.Run("unassigned guests are reported", func(t *testing.T) {
		fx := newFixture(ptr.Ptr(int64(7)), false)

		fx.addBooking("2026-09-05", "2026-09-10")

		resp, err := fx.uc.Execute(ctx, Request{IntervalID: fx.window.ID, CallerID: 7})
		require.NoError(t, err)

		assert.Equal(t, 1, resp.DisplacedGuests)
		assert.Equal(t, 0, resp.ReassignedGuests)
		assert.Equal(t, 1, resp.UnassignedGuests)
	})

	t.Run("ownerless window may be revoked by anyone", func(t *testing.T) {
		fx := newFixture(nil, true)

		_, err := fx.uc.Execute(ctx, Request{IntervalID: fx.window.ID, CallerID: 99})
		require.NoError(t, err)
	})

	t.Run("non owner is rejected", func(t *testing.T) {
		fx := newFixture(ptr.Ptr(int64(7)), true)

		_, err := fx.uc.Execute(ctx, Request{IntervalID: fx.window.ID, CallerID: 99})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("booking cannot be revoked as a window", func(t *testing.T) {
		fx := newFixture(ptr.Ptr(int64(7)), true)
		booking := fx.addBooking("2026-09-05", "2026-09-10")

		_, err := fx.uc.Execute(ctx, Request{IntervalID: booking.ID, CallerID: 7})
		assert.ErrorIs(t, err, ErrNotAvailability)
	})

	t.Run("unknown interval", func(t *testing.T) {
		fx := newFixture(ptr.Ptr(int64(7)), true)

		_, err := fx.uc.Execute(ctx, Request{IntervalID: 404, CallerID: 7})
		assert.ErrorIs(t, err, ErrIntervalNotFound)
	})

	t.Run("invalid ids", func(t *testing.T) {
		fx := newFixture(ptr.Ptr(int64(7)), true)

		_, err := fx.uc.Execute(ctx, Request{IntervalID: 0, CallerID: 7})
		assert.ErrorIs(t, err, ErrInvalidData)

		_, err = fx.uc.Execute(ctx, Request{IntervalID: fx.window.ID, CallerID: 0})
		assert.ErrorIs(t, err, ErrInvalidData)
	})
}

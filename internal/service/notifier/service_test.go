package notifier

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CarWashService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-CarWashService/pkg/logger"
	"github.com/m04kA/SMC-CarWashService/pkg/ptr"
)

var testDay = time.Date(2026, 10, 20, 0, 0, 0, 0, time.Local)

func at(h, m int) time.Time {
	return time.Date(testDay.Year(), testDay.Month(), testDay.Day(), h, m, 0, 0, time.Local)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeRepo struct {
	mu       sync.Mutex
	bookings map[int64]*domain.Booking
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

func (r *fakeRepo) GetNextScheduled(_ context.Context, after, before time.Time) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var best *domain.Booking
	for _, b := range r.bookings {
		if !b.IsScheduled() || !b.BookingDatetime.After(after) || !b.BookingDatetime.Before(before) {
			continue
		}
		if best == nil || b.BookingDatetime.Before(best.BookingDatetime) ||
			(b.BookingDatetime.Equal(best.BookingDatetime) && b.ID < best.ID) {
			best = b
		}
	}
	if best == nil {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return best, nil
}

type scheduledTask struct {
	task  domain.EarlyArrivalTask
	delay time.Duration
}

type fakeScheduler struct {
	tasks []scheduledTask
	err   error
}

func (f *fakeScheduler) Schedule(_ context.Context, task domain.EarlyArrivalTask, delay time.Duration) error {
	if f.err != nil {
		return f.err
	}
	f.tasks = append(f.tasks, scheduledTask{task: task, delay: delay})
	return nil
}

type fakeCustomers struct {
	mu   sync.Mutex
	sent map[int64][]string
	err  error
}

func (f *fakeCustomers) Send(_ context.Context, userID int64, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return f.err
	}
	if f.sent == nil {
		f.sent = map[int64][]string{}
	}
	f.sent[userID] = append(f.sent[userID], text)
	return nil
}

type fakeMetrics struct {
	mu      sync.Mutex
	results []string
}

func (m *fakeMetrics) IncEarlyArrival(result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = append(m.results, result)
}

func booking(id, userID int64, start time.Time, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:              id,
		UserID:          userID,
		CarNumber:       "AA1234BB",
		BookingDatetime: start,
		Status:          status,
		DurationMinutes: ptr.Ptr(60),
	}
}

type fixture struct {
	svc       *Service
	repo      *fakeRepo
	scheduler *fakeScheduler
	customers *fakeCustomers
	metrics   *fakeMetrics
}

func newFixture(now time.Time, bookings ...*domain.Booking) *fixture {
	f := &fixture{
		repo:      &fakeRepo{bookings: map[int64]*domain.Booking{}},
		scheduler: &fakeScheduler{},
		customers: &fakeCustomers{},
		metrics:   &fakeMetrics{},
	}
	for _, b := range bookings {
		f.repo.bookings[b.ID] = b
	}
	f.svc = NewService(f.repo, f.customers, f.scheduler, domain.DefaultSchedule(), f.metrics, logger.NewNop()).
		WithTimeProvider(fixedTime{now: now})
	return f
}

func TestNotifyNext_DelayFromNominalStart(t *testing.T) {
	finished := booking(1, 10, at(10, 0), domain.StatusFinished)
	finished.ActualEnd = ptr.Ptr(at(10, 45))

	tests := []struct {
		name      string
		now       time.Time
		wantDelay time.Duration
	}{
		{name: "finished after nominal start plus buffer", now: at(10, 45), wantDelay: 0},
		{name: "finished before nominal start", now: at(9, 50), wantDelay: 11 * time.Minute},
		{name: "finished exactly at notify time", now: at(10, 1), wantDelay: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(tt.now,
				finished,
				booking(2, 20, at(12, 0), domain.StatusScheduled),
				booking(3, 30, at(11, 0), domain.StatusScheduled),
			)

			f.svc.NotifyNext(context.Background(), 1)

			require.Len(t, f.scheduler.tasks, 1)
			assert.Equal(t, domain.EarlyArrivalTask{FinishedBookingID: 1, NextBookingID: 3}, f.scheduler.tasks[0].task)
			assert.Equal(t, tt.wantDelay, f.scheduler.tasks[0].delay)
			assert.Equal(t, []string{ResultScheduled}, f.metrics.results)
		})
	}
}

func TestNotifyNext_TieBrokenByID(t *testing.T) {
	f := newFixture(at(10, 30),
		booking(1, 10, at(10, 0), domain.StatusFinished),
		booking(7, 70, at(11, 0), domain.StatusScheduled),
		booking(5, 50, at(11, 0), domain.StatusScheduled),
	)

	f.svc.NotifyNext(context.Background(), 1)

	require.Len(t, f.scheduler.tasks, 1)
	assert.Equal(t, int64(5), f.scheduler.tasks[0].task.NextBookingID)
}

func TestNotifyNext_NothingToSchedule(t *testing.T) {
	tests := []struct {
		name     string
		bookings []*domain.Booking
	}{
		{
			name:     "finished booking missing",
			bookings: []*domain.Booking{booking(2, 20, at(12, 0), domain.StatusScheduled)},
		},
		{
			name: "next booking on another date",
			bookings: []*domain.Booking{
				booking(1, 10, at(10, 0), domain.StatusFinished),
				booking(2, 20, at(10, 0).AddDate(0, 0, 1), domain.StatusScheduled),
			},
		},
		{
			name: "later bookings are not scheduled",
			bookings: []*domain.Booking{
				booking(1, 10, at(10, 0), domain.StatusFinished),
				booking(2, 20, at(12, 0), domain.StatusInProgress),
				booking(3, 30, at(14, 0), domain.StatusFinished),
			},
		},
		{
			name: "only earlier bookings",
			bookings: []*domain.Booking{
				booking(1, 10, at(10, 0), domain.StatusFinished),
				booking(2, 20, at(9, 0), domain.StatusScheduled),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(at(10, 30), tt.bookings...)

			f.svc.NotifyNext(context.Background(), 1)
			assert.Empty(t, f.scheduler.tasks)
		})
	}
}

func TestNotifyNext_SchedulerFailureIsSwallowed(t *testing.T) {
	f := newFixture(at(10, 30),
		booking(1, 10, at(10, 0), domain.StatusFinished),
		booking(2, 20, at(11, 0), domain.StatusScheduled),
	)
	f.scheduler.err = errors.New("redis: connection refused")

	assert.NotPanics(t, func() { f.svc.NotifyNext(context.Background(), 1) })
	assert.Equal(t, []string{ResultFailed}, f.metrics.results)
}

func TestDeliver(t *testing.T) {
	task := domain.EarlyArrivalTask{FinishedBookingID: 1, NextBookingID: 2}

	t.Run("sends to scheduled booking", func(t *testing.T) {
		f := newFixture(at(10, 30), booking(2, 20, at(11, 0), domain.StatusScheduled))

		require.NoError(t, f.svc.Deliver(context.Background(), task))
		require.Len(t, f.customers.sent[20], 1)
		assert.Contains(t, f.customers.sent[20][0], "може розпочатися раніше")
		assert.Equal(t, []string{ResultSent}, f.metrics.results)
	})

	t.Run("skips deleted booking", func(t *testing.T) {
		f := newFixture(at(10, 30))

		require.NoError(t, f.svc.Deliver(context.Background(), task))
		assert.Empty(t, f.customers.sent)
		assert.Equal(t, []string{ResultSkipped}, f.metrics.results)
	})

	t.Run("skips booking that already started", func(t *testing.T) {
		f := newFixture(at(10, 30), booking(2, 20, at(11, 0), domain.StatusInProgress))

		require.NoError(t, f.svc.Deliver(context.Background(), task))
		assert.Empty(t, f.customers.sent)
		assert.Equal(t, []string{ResultSkipped}, f.metrics.results)
	})

	t.Run("send failure is not returned", func(t *testing.T) {
		f := newFixture(at(10, 30), booking(2, 20, at(11, 0), domain.StatusScheduled))
		f.customers.err = errors.New("Forbidden: bot was blocked by the user")

		assert.NoError(t, f.svc.Deliver(context.Background(), task))
		assert.Equal(t, []string{ResultFailed}, f.metrics.results)
	})
}

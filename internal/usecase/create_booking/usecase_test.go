package create_booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	programRepo "github.com/m04kA/SMC-CarWashService/internal/infra/storage/program"
	"github.com/m04kA/SMC-CarWashService/pkg/logger"
	"github.com/m04kA/SMC-CarWashService/pkg/ptr"
	"github.com/m04kA/SMC-CarWashService/pkg/types"
)

var testDay = time.Date(2026, 10, 20, 0, 0, 0, 0, time.Local)

func at(h, m int) time.Time {
	return time.Date(testDay.Year(), testDay.Month(), testDay.Day(), h, m, 0, 0, time.Local)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

// fakeBookings хранилище записей в памяти
type fakeBookings struct {
	mu        sync.Mutex
	bookings  []*domain.Booking
	durations map[int64]int
	nextID    int64
	createErr error
	locks     int
}

func (f *fakeBookings) LockDate(_ context.Context, _ time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.locks++
	return nil
}

func (f *fakeBookings) GetByDate(_ context.Context, date time.Time) ([]*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	result := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if domain.SameDay(b.BookingDatetime, date) {
			copied := *b
			if b.ProgramID != nil {
				copied.DurationMinutes = ptr.Ptr(f.durations[*b.ProgramID])
			}
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (f *fakeBookings) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	booking.ID = f.nextID
	f.bookings = append(f.bookings, booking)
	return booking, nil
}

type fakePrograms struct {
	programs map[int64]*domain.Program
}

func (f *fakePrograms) GetByID(_ context.Context, id int64) (*domain.Program, error) {
	p, ok := f.programs[id]
	if !ok {
		return nil, programRepo.ErrProgramNotFound
	}
	return p, nil
}

type fakeUsers struct {
	mu    sync.Mutex
	users map[int64]*domain.User
}

func (f *fakeUsers) Upsert(_ context.Context, user *domain.User) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if prev, ok := f.users[user.UserID]; ok && user.PhoneNumber == nil {
		user.PhoneNumber = prev.PhoneNumber
	}
	f.users[user.UserID] = user
	return user, nil
}

// serialTx выполняет транзакции строго по одной, как advisory-блокировка даты
type serialTx struct {
	mu sync.Mutex
}

func (s *serialTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(ctx)
}

type countingMetrics struct {
	mu        sync.Mutex
	created   int
	conflicts int
}

func (m *countingMetrics) IncBookingsCreated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created++
}

func (m *countingMetrics) IncSlotConflicts() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.conflicts++
}

type fixture struct {
	uc       *UseCase
	bookings *fakeBookings
	users    *fakeUsers
	metrics  *countingMetrics
}

func newFixture(now time.Time) *fixture {
	programs := map[int64]*domain.Program{
		1: {ID: 1, Name: "Комплекс", DurationMinutes: 60, Price: 550},
		2: {ID: 2, Name: "Преміум", DurationMinutes: 120, Price: 1200},
		3: {ID: 3, Name: "Зламана", DurationMinutes: 0},
	}
	durations := make(map[int64]int, len(programs))
	for id, p := range programs {
		durations[id] = p.DurationMinutes
	}

	f := &fixture{
		bookings: &fakeBookings{durations: durations},
		users:    &fakeUsers{users: map[int64]*domain.User{}},
		metrics:  &countingMetrics{},
	}
	f.uc = NewUseCase(
		f.bookings,
		&fakePrograms{programs: programs},
		f.users,
		&serialTx{},
		domain.DefaultSchedule(),
		f.metrics,
		logger.NewNop(),
	).WithTimeProvider(fixedTime{now: now})

	return f
}

func request(programID int64, startTime string) *Request {
	return &Request{
		UserID:      42,
		PhoneNumber: ptr.Ptr("067 123 45 67"),
		ProgramID:   programID,
		CarNumber:   "AA1234BB",
		Date:        testDay,
		StartTime:   types.TimeString(startTime),
	}
}

func TestExecute_Success(t *testing.T) {
	f := newFixture(testDay.AddDate(0, 0, -1))

	req := request(1, "10:00")
	req.CarNumber = "аа 1234 вв"

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, at(10, 0), resp.BookingDatetime)
	assert.Equal(t, "АА1234ВВ", resp.CarNumber)
	assert.Equal(t, "scheduled", resp.Status)
	assert.Equal(t, "Комплекс", resp.ProgramName)
	require.NotNil(t, resp.PhoneNumber)
	assert.Equal(t, "+0671234567", *resp.PhoneNumber)
	assert.Equal(t, 1, f.bookings.locks)
	assert.Equal(t, 1, f.metrics.created)
}

func TestExecute_BufferAroundExistingBooking(t *testing.T) {
	f := newFixture(testDay.AddDate(0, 0, -1))

	_, err := f.uc.Execute(context.Background(), request(1, "10:00"))
	require.NoError(t, err)

	tests := []struct {
		startTime string
		wantErr   error
	}{
		{startTime: "09:00", wantErr: ErrSlotTaken},
		{startTime: "10:00", wantErr: ErrSlotTaken},
		{startTime: "11:00", wantErr: ErrSlotTaken},
		{startTime: "12:00", wantErr: nil},
	}

	for _, tt := range tests {
		t.Run(tt.startTime, func(t *testing.T) {
			_, err := f.uc.Execute(context.Background(), request(1, tt.startTime))
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	assert.Equal(t, 3, f.metrics.conflicts)
}

func TestExecute_InvalidTimeSlot(t *testing.T) {
	tests := []struct {
		name      string
		now       time.Time
		programID int64
		startTime string
	}{
		{name: "not on the hour", now: at(8, 0), programID: 1, startTime: "12:30"},
		{name: "before opening", now: at(8, 0), programID: 1, startTime: "08:00"},
		{name: "at closing", now: at(8, 0), programID: 1, startTime: "21:00"},
		{name: "ends after closing", now: at(8, 0), programID: 2, startTime: "20:00"},
		{name: "already started today", now: at(13, 20), programID: 1, startTime: "13:00"},
		{name: "inside buffer from now", now: at(13, 59).Add(30 * time.Second), programID: 1, startTime: "14:00"},
		{name: "past date", now: at(8, 0).AddDate(0, 0, 1), programID: 1, startTime: "12:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(tt.now)

			_, err := f.uc.Execute(context.Background(), request(tt.programID, tt.startTime))
			assert.ErrorIs(t, err, ErrInvalidTimeSlot)
			assert.Empty(t, f.bookings.bookings)
		})
	}
}

func TestExecute_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(r *Request)
		wantErr error
	}{
		{name: "bad car number", modify: func(r *Request) { r.CarNumber = "A1234BB" }, wantErr: ErrInvalidCarNumber},
		{name: "short phone", modify: func(r *Request) { r.PhoneNumber = ptr.Ptr("12-34-56") }, wantErr: ErrInvalidPhone},
		{name: "bad time", modify: func(r *Request) { r.StartTime = "25:00" }, wantErr: ErrInvalidInput},
		{name: "no user", modify: func(r *Request) { r.UserID = 0 }, wantErr: ErrInvalidInput},
		{name: "unknown program", modify: func(r *Request) { r.ProgramID = 99 }, wantErr: ErrProgramNotFound},
		{name: "zero duration program", modify: func(r *Request) { r.ProgramID = 3 }, wantErr: ErrProgramNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(testDay.AddDate(0, 0, -1))
			req := request(1, "12:00")
			tt.modify(req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, f.metrics.created)
		})
	}
}

func TestExecute_KeepsStoredPhone(t *testing.T) {
	f := newFixture(testDay.AddDate(0, 0, -1))

	_, err := f.uc.Execute(context.Background(), request(1, "10:00"))
	require.NoError(t, err)

	req := request(1, "14:00")
	req.PhoneNumber = nil
	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, resp.PhoneNumber)
	assert.Equal(t, "+0671234567", *resp.PhoneNumber)
}

func TestExecute_SerializationFailureIsSlotTaken(t *testing.T) {
	f := newFixture(testDay.AddDate(0, 0, -1))
	f.bookings.createErr = fmt.Errorf("booking.repository: insert: %w", &pq.Error{Code: "40001"})

	_, err := f.uc.Execute(context.Background(), request(1, "12:00"))
	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.Equal(t, 1, f.metrics.conflicts)
}

func TestExecute_StorageFailureIsInternal(t *testing.T) {
	f := newFixture(testDay.AddDate(0, 0, -1))
	f.bookings.createErr = errors.New("disk full")

	_, err := f.uc.Execute(context.Background(), request(1, "12:00"))
	assert.ErrorIs(t, err, ErrInternal)
	assert.NotErrorIs(t, err, ErrSlotTaken)
}

func TestExecute_ConcurrentRequestsForOverlappingSlots(t *testing.T) {
	f := newFixture(testDay.AddDate(0, 0, -1))

	// 10:00 и 11:00 пересекаются через буфер: успешной может быть только одна
	startTimes := []string{"10:00", "11:00", "10:00", "11:00", "10:00", "11:00", "10:00", "11:00"}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		taken     int
	)
	for _, st := range startTimes {
		wg.Add(1)
		go func(st string) {
			defer wg.Done()
			_, err := f.uc.Execute(context.Background(), request(1, st))

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, ErrSlotTaken):
				taken++
			}
		}(st)
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, len(startTimes)-1, taken)
	assert.Len(t, f.bookings.bookings, 1)
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "+380671234567", want: "+380671234567"},
		{input: "067-123-45-67", want: "+0671234567"},
		{input: "123456789", want: "+123456789"},
		{input: "12345678", wantErr: true},
		{input: "phone", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := normalizePhone(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPhone)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

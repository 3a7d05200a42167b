package get_available_slots

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

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

type fakeBookings struct {
	bookings []*domain.Booking
	err      error
	calls    int
}

func (f *fakeBookings) GetByDate(_ context.Context, _ time.Time) ([]*domain.Booking, error) {
	f.calls++
	return f.bookings, f.err
}

type fakePrograms struct {
	programs map[int64]*domain.Program
	err      error
}

func (f *fakePrograms) GetByID(_ context.Context, id int64) (*domain.Program, error) {
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.programs[id]
	if !ok {
		return nil, programRepo.ErrProgramNotFound
	}
	return p, nil
}

func scheduled(start time.Time, minutes int) *domain.Booking {
	return &domain.Booking{
		BookingDatetime: start,
		Status:          domain.StatusScheduled,
		DurationMinutes: ptr.Ptr(minutes),
	}
}

func starts(values ...string) []types.TimeString {
	result := make([]types.TimeString, len(values))
	for i, v := range values {
		result[i] = types.TimeString(v)
	}
	return result
}

func newTestUseCase(bookings *fakeBookings, now time.Time) *UseCase {
	programs := &fakePrograms{programs: map[int64]*domain.Program{
		1: {ID: 1, Name: "Комплекс", DurationMinutes: 60},
		2: {ID: 2, Name: "Преміум", DurationMinutes: 120},
		3: {ID: 3, Name: "Зламана", DurationMinutes: 0},
	}}
	return NewUseCase(bookings, programs, domain.DefaultSchedule(), logger.NewNop()).
		WithTimeProvider(fixedTime{now: now})
}

func TestExecute(t *testing.T) {
	yesterday := testDay.AddDate(0, 0, -1).Add(12 * time.Hour)

	tests := []struct {
		name      string
		programID int64
		now       time.Time
		bookings  []*domain.Booking
		want      []types.TimeString
	}{
		{
			name:      "empty day",
			programID: 1,
			now:       yesterday,
			want:      starts("09:00", "10:00", "11:00", "12:00", "13:00", "14:00", "15:00", "16:00", "17:00", "18:00", "19:00", "20:00"),
		},
		{
			name:      "buffer blocks neighbouring hours",
			programID: 1,
			now:       yesterday,
			bookings:  []*domain.Booking{scheduled(at(10, 0), 60)},
			want:      starts("12:00", "13:00", "14:00", "15:00", "16:00", "17:00", "18:00", "19:00", "20:00"),
		},
		{
			name:      "long program must end by window end",
			programID: 2,
			now:       yesterday,
			want:      starts("09:00", "10:00", "11:00", "12:00", "13:00", "14:00", "15:00", "16:00", "17:00", "18:00", "19:00"),
		},
		{
			name:      "today drops starts before now plus buffer",
			programID: 1,
			now:       at(13, 20),
			want:      starts("14:00", "15:00", "16:00", "17:00", "18:00", "19:00", "20:00"),
		},
		{
			name:      "today exactly on the hour",
			programID: 1,
			now:       at(14, 0),
			want:      starts("15:00", "16:00", "17:00", "18:00", "19:00", "20:00"),
		},
		{
			name:      "running wash uses actual start",
			programID: 1,
			now:       yesterday,
			bookings: []*domain.Booking{{
				BookingDatetime: at(9, 0),
				Status:          domain.StatusInProgress,
				ActualStart:     ptr.Ptr(at(9, 40)),
				DurationMinutes: ptr.Ptr(60),
			}},
			want: starts("11:00", "12:00", "13:00", "14:00", "15:00", "16:00", "17:00", "18:00", "19:00", "20:00"),
		},
		{
			name:      "finished wash frees the rest of its hour",
			programID: 1,
			now:       yesterday,
			bookings: []*domain.Booking{{
				BookingDatetime: at(10, 0),
				Status:          domain.StatusFinished,
				ActualStart:     ptr.Ptr(at(10, 0)),
				ActualEnd:       ptr.Ptr(at(10, 30)),
				DurationMinutes: ptr.Ptr(60),
			}},
			want: starts("11:00", "12:00", "13:00", "14:00", "15:00", "16:00", "17:00", "18:00", "19:00", "20:00"),
		},
		{
			name:      "overlapping historical rows",
			programID: 1,
			now:       yesterday,
			bookings: []*domain.Booking{
				scheduled(at(15, 0), 60),
				scheduled(at(15, 30), 60),
				{BookingDatetime: at(18, 0), Status: domain.StatusScheduled},
			},
			want: starts("09:00", "10:00", "11:00", "12:00", "13:00", "19:00", "20:00"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newTestUseCase(&fakeBookings{bookings: tt.bookings}, tt.now)

			resp, err := uc.Execute(context.Background(), &Request{ProgramID: tt.programID, Date: testDay})
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.Starts)
		})
	}
}

func TestExecute_EmptyWithoutError(t *testing.T) {
	tests := []struct {
		name      string
		programID int64
		date      time.Time
	}{
		{name: "unknown program", programID: 99, date: testDay},
		{name: "zero duration program", programID: 3, date: testDay},
		{name: "past date", programID: 1, date: testDay.AddDate(0, 0, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bookings := &fakeBookings{}
			uc := newTestUseCase(bookings, at(8, 0))

			resp, err := uc.Execute(context.Background(), &Request{ProgramID: tt.programID, Date: tt.date})
			require.NoError(t, err)
			assert.Empty(t, resp.Starts)
			assert.Zero(t, bookings.calls)
		})
	}
}

func TestExecute_Errors(t *testing.T) {
	uc := newTestUseCase(&fakeBookings{err: errors.New("connection reset")}, at(8, 0))

	_, err := uc.Execute(context.Background(), &Request{ProgramID: 1, Date: testDay})
	assert.ErrorIs(t, err, ErrInternal)

	_, err = uc.Execute(context.Background(), &Request{ProgramID: 0, Date: testDay})
	assert.ErrorIs(t, err, ErrInvalidInput)

	programs := &fakePrograms{err: errors.New("timeout")}
	uc = NewUseCase(&fakeBookings{}, programs, domain.DefaultSchedule(), logger.NewNop())
	_, err = uc.Execute(context.Background(), &Request{ProgramID: 1, Date: testDay})
	assert.ErrorIs(t, err, ErrInternal)
}

// Каждое возвращенное начало свободно, каждое отброшенное в окне занято
func TestExecute_RandomDays(t *testing.T) {
	rnd := rand.New(rand.NewSource(20261020))
	schedule := domain.DefaultSchedule()
	durations := []int{15, 30, 45, 60, 90, 120}
	statuses := []domain.BookingStatus{domain.StatusScheduled, domain.StatusInProgress, domain.StatusFinished}

	for i := 0; i < 200; i++ {
		bookings := make([]*domain.Booking, rnd.Intn(6))
		for j := range bookings {
			start := at(9+rnd.Intn(12), rnd.Intn(4)*15)
			b := scheduled(start, durations[rnd.Intn(len(durations))])
			b.Status = statuses[rnd.Intn(len(statuses))]
			if b.Status != domain.StatusScheduled {
				b.ActualStart = ptr.Ptr(start.Add(time.Duration(rnd.Intn(20)) * time.Minute))
			}
			if b.Status == domain.StatusFinished {
				b.ActualEnd = ptr.Ptr(b.ActualStart.Add(time.Duration(10+rnd.Intn(80)) * time.Minute))
			}
			bookings[j] = b
		}

		uc := newTestUseCase(&fakeBookings{bookings: bookings}, testDay.AddDate(0, 0, -1))
		resp, err := uc.Execute(context.Background(), &Request{ProgramID: 1, Date: testDay})
		require.NoError(t, err)

		free := make(map[types.TimeString]bool, len(resp.Starts))
		for _, s := range resp.Starts {
			free[s] = true
		}

		for _, start := range schedule.CandidateStarts(testDay) {
			slot := domain.NewSlot(start, time.Hour)
			conflicts := slot.ConflictsWith(bookings, schedule.Buffer())
			assert.Equal(t, !conflicts, free[slot.StartTime()], "iteration %d start %s", i, slot.StartTime())
		}
	}
}

package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-CarWashService/pkg/ptr"
)

var day = time.Date(2026, 10, 20, 0, 0, 0, 0, time.Local)

func at(hour, minute int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, time.Local)
}

func scheduledAt(hour, minute, duration int) *Booking {
	return &Booking{
		BookingDatetime: at(hour, minute),
		Status:          StatusScheduled,
		DurationMinutes: ptr.Ptr(duration),
	}
}

func TestConflicts_BufferBoundaries(t *testing.T) {
	existing := []*Booking{scheduledAt(10, 0, 60)} // 10:00-11:00, с буфером 09:59-11:01
	buffer := time.Minute

	tests := []struct {
		name     string
		start    time.Time
		end      time.Time
		conflict bool
	}{
		{name: "ends exactly at buffered start", start: at(8, 59), end: at(9, 59), conflict: false},
		{name: "ends at nominal start", start: at(9, 0), end: at(10, 0), conflict: true},
		{name: "same slot", start: at(10, 0), end: at(11, 0), conflict: true},
		{name: "starts at nominal end", start: at(11, 0), end: at(12, 0), conflict: true},
		{name: "starts exactly at buffered end", start: at(11, 1), end: at(12, 1), conflict: false},
		{name: "far later", start: at(12, 0), end: at(13, 0), conflict: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.conflict, Conflicts(tt.start, tt.end, existing, buffer))
		})
	}
}

func TestConflicts_UsesActualTimes(t *testing.T) {
	// Мойка на 10:00 началась в 10:20 и закончилась в 10:45
	finished := scheduledAt(10, 0, 60)
	finished.Status = StatusFinished
	finished.ActualStart = ptr.Ptr(at(10, 20))
	finished.ActualEnd = ptr.Ptr(at(10, 45))

	assert.False(t, Conflicts(at(10, 46), at(11, 46), []*Booking{finished}, time.Minute))
	assert.True(t, Conflicts(at(10, 45), at(11, 45), []*Booking{finished}, time.Minute))

	// Мойка в процессе без фактического конца занимает actual_start + duration
	running := scheduledAt(12, 0, 60)
	running.Status = StatusInProgress
	running.ActualStart = ptr.Ptr(at(12, 30))

	assert.True(t, Conflicts(at(13, 0), at(14, 0), []*Booking{running}, time.Minute))
	assert.False(t, Conflicts(at(13, 31), at(14, 31), []*Booking{running}, time.Minute))
}

func TestConflicts_UnknownDurationIsZeroWidth(t *testing.T) {
	orphan := &Booking{BookingDatetime: at(15, 0), Status: StatusScheduled}

	assert.True(t, Conflicts(at(14, 30), at(15, 30), []*Booking{orphan}, time.Minute))
	assert.False(t, Conflicts(at(15, 1), at(16, 1), []*Booking{orphan}, time.Minute))
}

func TestConflicts_EmptyAndNil(t *testing.T) {
	assert.False(t, Conflicts(at(9, 0), at(10, 0), nil, time.Minute))
	assert.False(t, Conflicts(at(9, 0), at(10, 0), []*Booking{nil}, time.Minute))
}

func TestFirstConflict(t *testing.T) {
	first := scheduledAt(10, 0, 60)
	second := scheduledAt(14, 0, 60)

	got := FirstConflict(at(14, 0), at(15, 0), []*Booking{first, second}, time.Minute)
	assert.Same(t, second, got)
	assert.Nil(t, FirstConflict(at(12, 0), at(13, 0), []*Booking{first, second}, time.Minute))
}

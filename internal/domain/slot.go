package domain

import (
	"time"

	"github.com/m04kA/SMC-CarWashService/pkg/types"
)

// Slot кандидат на запись: непрерывный интервал [Start, End)
type Slot struct {
	Start time.Time
	End   time.Time
}

// NewSlot слот заданной длительности
func NewSlot(start time.Time, duration time.Duration) Slot {
	return Slot{Start: start, End: start.Add(duration)}
}

// StartTime время начала в формате HH:MM
func (s Slot) StartTime() types.TimeString {
	return types.NewTimeString(s.Start)
}

// ConflictsWith true, если слот пересекается хотя бы с одной записью
func (s Slot) ConflictsWith(bookings []*Booking, buffer time.Duration) bool {
	return Conflicts(s.Start, s.End, bookings, buffer)
}

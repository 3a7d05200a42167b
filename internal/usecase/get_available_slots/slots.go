package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	"github.com/m04kA/SMC-CarWashService/pkg/types"
)

// windowSlots часовые слоты дня, которые помещаются в рабочее окно.
// Для сегодняшнего дня отбрасываются слоты раньше now+buffer
func windowSlots(schedule domain.Schedule, date time.Time, duration time.Duration, now time.Time) []domain.Slot {
	if domain.IsDateInPast(date, now) {
		return []domain.Slot{}
	}

	slots := make([]domain.Slot, 0)
	for _, start := range schedule.CandidateStarts(date) {
		slot := domain.NewSlot(start, duration)
		if schedule.FitsWindow(slot, now) {
			slots = append(slots, slot)
		}
	}

	return slots
}

// freeStarts начала слотов, которые не пересекаются ни с одной записью
// с учетом буфера. Исторические пересечения записей между собой ни на что
// не влияют: каждый кандидат проверяется независимо
func freeStarts(slots []domain.Slot, bookings []*domain.Booking, buffer time.Duration) []types.TimeString {
	starts := make([]types.TimeString, 0, len(slots))
	for _, slot := range slots {
		if !slot.ConflictsWith(bookings, buffer) {
			starts = append(starts, slot.StartTime())
		}
	}
	return starts
}

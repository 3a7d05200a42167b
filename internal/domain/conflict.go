package domain

import "time"

// Conflicts проверяет кандидата [candidateStart, candidateEnd) против записей дня.
//
// Эффективный интервал каждой записи расширяется на buffer с обеих сторон.
// Пересечения нет, только если кандидат заканчивается не позже начала
// расширенного интервала или начинается не раньше его конца.
// Достаточно одного пересечения, чтобы отклонить кандидата.
func Conflicts(candidateStart, candidateEnd time.Time, bookings []*Booking, buffer time.Duration) bool {
	for _, b := range bookings {
		if b == nil {
			continue
		}
		if overlapsBuffered(candidateStart, candidateEnd, b, buffer) {
			return true
		}
	}
	return false
}

// FirstConflict возвращает первую запись, с которой пересекается кандидат
func FirstConflict(candidateStart, candidateEnd time.Time, bookings []*Booking, buffer time.Duration) *Booking {
	for _, b := range bookings {
		if b != nil && overlapsBuffered(candidateStart, candidateEnd, b, buffer) {
			return b
		}
	}
	return nil
}

func overlapsBuffered(candidateStart, candidateEnd time.Time, b *Booking, buffer time.Duration) bool {
	effStart, effEnd := b.EffectiveInterval()
	bufStart := effStart.Add(-buffer)
	bufEnd := effEnd.Add(buffer)

	free := !candidateEnd.After(bufStart) || !candidateStart.Before(bufEnd)
	return !free
}

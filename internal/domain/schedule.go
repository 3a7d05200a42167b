package domain

import "time"

// Schedule рабочее окно мойки и буфер между мойками.
// Задается один раз при старте из конфигурации
type Schedule struct {
	WorkStartHour int
	WorkEndHour   int
	BufferMinutes int
}

// DefaultSchedule 09:00-21:00, буфер 1 минута
func DefaultSchedule() Schedule {
	return Schedule{
		WorkStartHour: DefaultWorkStartHour,
		WorkEndHour:   DefaultWorkEndHour,
		BufferMinutes: DefaultBufferMinutes,
	}
}

// Buffer буфер между мойками
func (s Schedule) Buffer() time.Duration {
	return time.Duration(s.BufferMinutes) * time.Minute
}

// WorkingWindow начало и конец рабочего окна в день date (в зоне date)
func (s Schedule) WorkingWindow(date time.Time) (start, end time.Time) {
	return atHour(date, s.WorkStartHour), atHour(date, s.WorkEndHour)
}

// CandidateStarts начала слотов: каждый полный час в [WorkStartHour, WorkEndHour)
func (s Schedule) CandidateStarts(date time.Time) []time.Time {
	starts := make([]time.Time, 0, s.WorkEndHour-s.WorkStartHour)
	for h := s.WorkStartHour; h < s.WorkEndHour; h++ {
		starts = append(starts, atHour(date, h))
	}
	return starts
}

// MinAllowedStart минимально допустимое начало слота:
// сегодня - max(начало окна, now+buffer), в другие дни - начало окна
func (s Schedule) MinAllowedStart(date, now time.Time) time.Time {
	workStart, _ := s.WorkingWindow(date)
	if !SameDay(date, now) {
		return workStart
	}

	earliest := now.Add(s.Buffer())
	if earliest.After(workStart) {
		return earliest
	}
	return workStart
}

// IsCandidateStart true, если start - одно из часовых начал слотов своего дня
func (s Schedule) IsCandidateStart(start time.Time) bool {
	for _, candidate := range s.CandidateStarts(start) {
		if candidate.Equal(start) {
			return true
		}
	}
	return false
}

// FitsWindow слот не в прошедшем дне, начинается не раньше minAllowedStart
// и заканчивается до конца окна
func (s Schedule) FitsWindow(slot Slot, now time.Time) bool {
	if IsDateInPast(slot.Start, now) {
		return false
	}
	_, workEnd := s.WorkingWindow(slot.Start)
	if slot.Start.Before(s.MinAllowedStart(slot.Start, now)) {
		return false
	}
	return !slot.End.After(workEnd)
}

// DayStart полночь дня t в зоне t
func DayStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func atHour(date time.Time, hour int) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, hour, 0, 0, 0, date.Location())
}

// SameDay две даты относятся к одному календарному дню
func SameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// IsDateInPast дата раньше сегодняшнего дня
func IsDateInPast(date, now time.Time) bool {
	return DayStart(date).Before(DayStart(now))
}

package domain

import (
	"time"
)

// BookingStatus статус мойки
type BookingStatus string

const (
	StatusScheduled  BookingStatus = "scheduled"
	StatusInProgress BookingStatus = "in_progress"
	StatusFinished   BookingStatus = "finished"
)

// IsValid true для известных статусов
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusScheduled, StatusInProgress, StatusFinished:
		return true
	default:
		return false
	}
}

// Booking запись на мойку
type Booking struct {
	ID          int64
	UserID      int64
	Username    *string
	PhoneNumber *string
	ProgramID   *int64 // NULL, если программа была удалена из каталога
	CarNumber   string

	// Номинальное время записи (локальное, с точностью до минуты)
	BookingDatetime time.Time
	Status          BookingStatus

	// Фактическое время мойки
	ActualStart *time.Time
	ActualEnd   *time.Time

	// Данные программы из каталога (LEFT JOIN), nil если программа удалена
	ProgramName     *string
	ProgramPrice    *float64
	DurationMinutes *int

	CreatedAt time.Time
}

// Duration длительность программы; 0, если программа неизвестна
func (b *Booking) Duration() time.Duration {
	if b.DurationMinutes == nil || *b.DurationMinutes < 0 {
		return 0
	}
	return time.Duration(*b.DurationMinutes) * time.Minute
}

// EffectiveInterval интервал, по которому считаются пересечения:
// фактическое время, если оно известно, иначе номинальное
func (b *Booking) EffectiveInterval() (start, end time.Time) {
	start = b.BookingDatetime

	if b.Status == StatusInProgress || b.Status == StatusFinished {
		if b.ActualStart != nil {
			start = *b.ActualStart
		}
		if b.ActualEnd != nil {
			return start, *b.ActualEnd
		}
	}

	return start, start.Add(b.Duration())
}

func (b *Booking) IsScheduled() bool {
	return b.Status == StatusScheduled
}

func (b *Booking) IsInProgress() bool {
	return b.Status == StatusInProgress
}

func (b *Booking) IsFinished() bool {
	return b.Status == StatusFinished
}

// IsActive запись еще не завершена
func (b *Booking) IsActive() bool {
	return b.Status == StatusScheduled || b.Status == StatusInProgress
}

// BookingsFilter фильтр для административного списка записей
// Без фильтров возвращаются только незавершенные записи
type BookingsFilter struct {
	Date      *time.Time // Записи на конкретную дату
	UserID    *int64     // Записи клиента
	CarNumber *string    // Подстрока номера авто (без учета регистра)
}

// IsEmpty true, если ни один фильтр не задан
func (f BookingsFilter) IsEmpty() bool {
	return f.Date == nil && f.UserID == nil && f.CarNumber == nil
}

// BookingUpdate административное изменение записи
// Применяются только заданные поля
type BookingUpdate struct {
	BookingDatetime  *time.Time
	Status           *BookingStatus
	ClearActualStart bool
	ClearActualEnd   bool
}

// IsEmpty true, если изменять нечего
func (u BookingUpdate) IsEmpty() bool {
	return u.BookingDatetime == nil && u.Status == nil && !u.ClearActualStart && !u.ClearActualEnd
}

package types

import (
	"errors"
	"fmt"
	"time"
)

const timeLayout = "15:04"

const minutesPerDay = 24 * 60

var (
	// ErrInvalidTimeString возвращается при некорректном формате времени
	ErrInvalidTimeString = errors.New("invalid time string format")

	// ErrTimeOverflow возвращается, когда результат выходит за пределы суток
	ErrTimeOverflow = errors.New("time string overflows the day")
)

// TimeString время суток в формате HH:MM
type TimeString string

// NewTimeString берет время суток из time.Time (секунды отбрасываются)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeLayout))
}

// NewTimeStringFromString парсит строку HH:MM.
// Допускается разделитель "." (17.41 == 17:41), как в ручном вводе администраторов
func NewTimeStringFromString(s string) (TimeString, error) {
	normalized := []rune(s)
	for i, r := range normalized {
		if r == '.' {
			normalized[i] = ':'
		}
	}

	parsed, err := time.Parse(timeLayout, string(normalized))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}

	return NewTimeString(parsed), nil
}

// FromMinutes строит время суток из количества минут от полуночи
func FromMinutes(minutes int) (TimeString, error) {
	if minutes < 0 || minutes >= minutesPerDay {
		return "", ErrTimeOverflow
	}
	return TimeString(fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)), nil
}

// String реализует fmt.Stringer
func (t TimeString) String() string {
	return string(t)
}

// IsZero true, если время не задано
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate проверяет формат HH:MM
func (t TimeString) Validate() error {
	if _, err := time.Parse(timeLayout, string(t)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return nil
}

// Minutes количество минут от полуночи, -1 при некорректном значении
func (t TimeString) Minutes() int {
	parsed, err := time.Parse(timeLayout, string(t))
	if err != nil {
		return -1
	}
	return parsed.Hour()*60 + parsed.Minute()
}

// AddMinutes сдвигает время, не выходя за пределы суток
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	if err := t.Validate(); err != nil {
		return "", err
	}
	return FromMinutes(t.Minutes() + minutes)
}

// IsBefore строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	return t.Minutes() < other.Minutes()
}

// IsAfter строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	return t.Minutes() > other.Minutes()
}

// On возвращает момент времени t в календарный день date (в зоне date)
func (t TimeString) On(date time.Time) (time.Time, error) {
	if err := t.Validate(); err != nil {
		return time.Time{}, err
	}
	minutes := t.Minutes()
	y, m, d := date.Date()
	return time.Date(y, m, d, minutes/60, minutes%60, 0, 0, date.Location()), nil
}

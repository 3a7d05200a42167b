package domain

import "regexp"

// Рабочее окно и буфер по умолчанию
const (
	DefaultWorkStartHour = 9
	DefaultWorkEndHour   = 21
	DefaultBufferMinutes = 1
)

// Ограничения валидации
const (
	MinPhoneDigits        = 9
	MaxUsersListed        = 50
	MaxProgramNameLength  = 100
	MaxDescriptionLength  = 1000
	MaxProgramDurationMin = 24 * 60
)

// Форматы времени
const (
	TimeFormat            = "15:04"            // HH:MM
	DateFormat            = "2006-01-02"       // YYYY-MM-DD (API)
	DisplayDateFormat     = "02.01.2006"       // dd.mm.yyyy (сообщения клиентам)
	DisplayDateTimeFormat = "02.01.2006 15:04" // dd.mm.yyyy HH:MM
)

// CarNumberPattern формат украинского номера авто, например AA1234BB
var CarNumberPattern = regexp.MustCompile(`^[A-ZА-ЯІЇЄ]{2}\d{4}[A-ZА-ЯІЇЄ]{2}$`)

// ActiveStatuses статусы незавершенных записей
var ActiveStatuses = []BookingStatus{
	StatusScheduled,
	StatusInProgress,
}

package create_booking

import (
	"time"

	"github.com/m04kA/SMC-CarWashService/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	UserID      int64            // ID клиента (Telegram ID)
	Username    *string          // Данные профиля для регистрации клиента
	FirstName   *string
	LastName    *string
	PhoneNumber *string          // Телефон; если не указан, остается ранее сохраненный
	ProgramID   int64            // ID программы мойки
	CarNumber   string           // Номер авто, например AA1234BB
	Date        time.Time        // Дата записи (время игнорируется)
	StartTime   types.TimeString // Начало слота, например "12:00"
}

// Response модель ответа с созданной записью
type Response struct {
	ID              int64
	UserID          int64
	ProgramID       int64
	ProgramName     string
	DurationMinutes int
	CarNumber       string
	PhoneNumber     *string
	BookingDatetime time.Time
	Status          string
	CreatedAt       time.Time
}

package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-CarWashService/pkg/types"
)

// Request модель запроса свободного времени
type Request struct {
	ProgramID int64     // ID программы мойки
	Date      time.Time // Дата (время игнорируется)
}

// Response свободные начала слотов по возрастанию
type Response struct {
	Date            time.Time
	ProgramID       int64
	DurationMinutes int
	Starts          []types.TimeString // Например, "09:00", "12:00"
}

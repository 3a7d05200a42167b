package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-CarWashService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date            string   `json:"date"`
	ProgramID       int64    `json:"programId"`
	DurationMinutes int      `json:"durationMinutes"`
	Starts          []string `json:"starts"` // ["12:00", "13:00"]
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	starts := make([]string, len(resp.Starts))
	for i, start := range resp.Starts {
		starts[i] = start.String()
	}

	return &AvailableSlotsResponse{
		Date:            resp.Date.Format(domain.DateFormat),
		ProgramID:       resp.ProgramID,
		DurationMinutes: resp.DurationMinutes,
		Starts:          starts,
	}
}

// ToUseCaseRequest создает запрос use case из параметров
func ToUseCaseRequest(programID int64, dateStr string) (*getAvailableSlots.Request, error) {
	date, err := time.ParseInLocation(domain.DateFormat, dateStr, time.Local)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		ProgramID: programID,
		Date:      date,
	}, nil
}

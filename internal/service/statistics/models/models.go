package models

import "github.com/m04kA/SMC-CarWashService/internal/domain"

// DeletedProgramName подпись для записей удаленных программ
const DeletedProgramName = "(програму видалено)"

// GetStatisticsRequest период YYYY-MM-DD; пустые границы заполняются сегодняшним днем
type GetStatisticsRequest struct {
	From *string `validate:"omitempty,datetime=2006-01-02"`
	To   *string `validate:"omitempty,datetime=2006-01-02"`
}

// ProgramStatisticsResponse строка статистики
type ProgramStatisticsResponse struct {
	ProgramName string  `json:"programName"`
	Count       int     `json:"count"`
	Total       float64 `json:"total"`
}

// StatisticsResponse статистика за период
type StatisticsResponse struct {
	From       string                      `json:"from"`
	To         string                      `json:"to"`
	TotalCount int                         `json:"totalCount"`
	TotalSum   float64                     `json:"totalSum"`
	Programs   []ProgramStatisticsResponse `json:"programs"`
}

// FromDomainStatistics конвертирует domain модель в response
func FromDomainStatistics(s *domain.Statistics) *StatisticsResponse {
	programs := make([]ProgramStatisticsResponse, 0, len(s.ByProgram))
	for _, p := range s.ByProgram {
		name := DeletedProgramName
		if p.ProgramName != nil {
			name = *p.ProgramName
		}
		programs = append(programs, ProgramStatisticsResponse{
			ProgramName: name,
			Count:       p.Count,
			Total:       p.Total,
		})
	}

	return &StatisticsResponse{
		From:       s.From.Format(domain.DateFormat),
		To:         s.To.Format(domain.DateFormat),
		TotalCount: s.TotalCount,
		TotalSum:   s.TotalSum,
		Programs:   programs,
	}
}

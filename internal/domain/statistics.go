package domain

import "time"

// ProgramStatistics агрегат по одной программе
type ProgramStatistics struct {
	ProgramName *string // nil для записей удаленных программ
	Count       int
	Total       float64
}

// Statistics статистика записей за период
type Statistics struct {
	From       time.Time
	To         time.Time
	TotalCount int
	TotalSum   float64
	ByProgram  []ProgramStatistics
}

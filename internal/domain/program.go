package domain

import "time"

// Program программа мойки из каталога
type Program struct {
	ID              int64
	Name            string
	DurationMinutes int
	Price           float64
	Description     string
}

// Duration длительность программы
func (p *Program) Duration() time.Duration {
	return time.Duration(p.DurationMinutes) * time.Minute
}

// IsSchedulable программа с неположительной длительностью не может быть записана
func (p *Program) IsSchedulable() bool {
	return p.DurationMinutes > 0
}

// ProgramUpdate частичное изменение программы
type ProgramUpdate struct {
	Name            *string
	DurationMinutes *int
	Price           *float64
	Description     *string
}

// IsEmpty true, если изменять нечего
func (u ProgramUpdate) IsEmpty() bool {
	return u.Name == nil && u.DurationMinutes == nil && u.Price == nil && u.Description == nil
}

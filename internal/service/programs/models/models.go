package models

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
)

// CreateProgramRequest новая программа каталога
type CreateProgramRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Duration    string  `json:"duration" validate:"required,hhmmss"` // HH:MM:SS
	Price       float64 `json:"price" validate:"gte=0"`
	Description string  `json:"description" validate:"max=1000"`
}

// ToDomain конвертирует request в domain модель
func (r *CreateProgramRequest) ToDomain() (*domain.Program, error) {
	minutes, err := ParseDurationMinutes(r.Duration)
	if err != nil {
		return nil, err
	}

	return &domain.Program{
		Name:            strings.TrimSpace(r.Name),
		DurationMinutes: minutes,
		Price:           r.Price,
		Description:     r.Description,
	}, nil
}

// UpdateProgramRequest частичное изменение программы
type UpdateProgramRequest struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Duration    *string  `json:"duration,omitempty" validate:"omitempty,hhmmss"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	Description *string  `json:"description,omitempty" validate:"omitempty,max=1000"`
}

// ToDomain конвертирует request в domain изменение
func (r *UpdateProgramRequest) ToDomain() (domain.ProgramUpdate, error) {
	update := domain.ProgramUpdate{
		Price:       r.Price,
		Description: r.Description,
	}

	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		update.Name = &name
	}

	if r.Duration != nil {
		minutes, err := ParseDurationMinutes(*r.Duration)
		if err != nil {
			return update, err
		}
		update.DurationMinutes = &minutes
	}

	return update, nil
}

// ParseDurationMinutes переводит HH:MM:SS в минуты, секунды отбрасываются
func ParseDurationMinutes(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("duration %q: expected HH:MM:SS", s)
	}

	values := make([]int, 3)
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil || v < 0 {
			return 0, fmt.Errorf("duration %q: invalid component %q", s, p)
		}
		values[i] = v
	}

	return values[0]*60 + values[1] + values[2]/60, nil
}

// Response модели

// ProgramResponse программа каталога
type ProgramResponse struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
	Description     string  `json:"description"`
}

// FromDomainProgram конвертирует domain модель в response
func FromDomainProgram(p *domain.Program) *ProgramResponse {
	return &ProgramResponse{
		ID:              p.ID,
		Name:            p.Name,
		DurationMinutes: p.DurationMinutes,
		Price:           p.Price,
		Description:     p.Description,
	}
}

// FromDomainPrograms конвертирует список программ
func FromDomainPrograms(programs []*domain.Program) []*ProgramResponse {
	result := make([]*ProgramResponse, 0, len(programs))
	for _, p := range programs {
		result = append(result, FromDomainProgram(p))
	}
	return result
}

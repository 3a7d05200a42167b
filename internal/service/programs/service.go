package programs

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	programRepo "github.com/m04kA/SMC-CarWashService/internal/infra/storage/program"
	"github.com/m04kA/SMC-CarWashService/internal/service/programs/models"
	"github.com/m04kA/SMC-CarWashService/pkg/validation"
)

// Service сервис каталога программ мойки
type Service struct {
	programRepo ProgramRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(programRepo ProgramRepository, logger Logger) *Service {
	return &Service{
		programRepo: programRepo,
		logger:      logger,
	}
}

// List все программы по возрастанию ID
func (s *Service) List(ctx context.Context) ([]*models.ProgramResponse, error) {
	programs, err := s.programRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: failed to list programs: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainPrograms(programs), nil
}

// GetByID программа по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ProgramResponse, error) {
	program, err := s.getProgram(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainProgram(program), nil
}

// GetDuration длительность программы в минутах
func (s *Service) GetDuration(ctx context.Context, id int64) (int, error) {
	program, err := s.getProgram(ctx, "GetDuration", id)
	if err != nil {
		return 0, err
	}
	return program.DurationMinutes, nil
}

// Create добавляет программу в каталог
func (s *Service) Create(ctx context.Context, req *models.CreateProgramRequest) (*models.ProgramResponse, error) {
	if err := validation.Struct(req); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	program, err := req.ToDomain()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if program.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if err := validateDuration(program.DurationMinutes); err != nil {
		s.logger.Warn("Create: %v", err)
		return nil, err
	}

	created, err := s.programRepo.Create(ctx, program)
	if err != nil {
		if errors.Is(err, programRepo.ErrProgramAlreadyExists) {
			s.logger.Warn("Create: program %q already exists", program.Name)
			return nil, fmt.Errorf("%w: %q", ErrProgramAlreadyExists, program.Name)
		}
		s.logger.Error("Create: failed to create program: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: program id=%d %q created (%d min)", created.ID, created.Name, created.DurationMinutes)
	return models.FromDomainProgram(created), nil
}

// Update частично изменяет программу
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateProgramRequest) (*models.ProgramResponse, error) {
	if err := validation.Struct(req); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	update, err := req.ToDomain()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if update.IsEmpty() {
		return nil, fmt.Errorf("%w: nothing to change", ErrInvalidInput)
	}
	if update.Name != nil && *update.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if update.DurationMinutes != nil {
		if err := validateDuration(*update.DurationMinutes); err != nil {
			return nil, err
		}
	}

	updated, err := s.programRepo.Update(ctx, id, update)
	if err != nil {
		switch {
		case errors.Is(err, programRepo.ErrProgramNotFound):
			return nil, fmt.Errorf("%w: id=%d", ErrProgramNotFound, id)
		case errors.Is(err, programRepo.ErrProgramAlreadyExists):
			return nil, fmt.Errorf("%w: id=%d", ErrProgramAlreadyExists, id)
		}
		s.logger.Error("Update: failed to update program id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: program id=%d updated", id)
	return models.FromDomainProgram(updated), nil
}

// Delete удаляет программу. Записи остаются без программы
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.programRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, programRepo.ErrProgramNotFound) {
			return fmt.Errorf("%w: id=%d", ErrProgramNotFound, id)
		}
		s.logger.Error("Delete: failed to delete program id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: program id=%d deleted", id)
	return nil
}

func (s *Service) getProgram(ctx context.Context, op string, id int64) (*domain.Program, error) {
	program, err := s.programRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, programRepo.ErrProgramNotFound) {
			return nil, fmt.Errorf("%w: id=%d", ErrProgramNotFound, id)
		}
		s.logger.Error("%s: failed to get program id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return program, nil
}

func validateDuration(durationMinutes int) error {
	if durationMinutes <= 0 {
		return fmt.Errorf("%w: duration must be at least one minute", ErrInvalidInput)
	}
	if durationMinutes > domain.MaxProgramDurationMin {
		return fmt.Errorf("%w: duration must not exceed %d minutes", ErrInvalidInput, domain.MaxProgramDurationMin)
	}
	return nil
}

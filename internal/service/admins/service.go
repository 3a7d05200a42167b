package admins

import (
	"context"
	"errors"
	"fmt"

	adminRepo "github.com/m04kA/SMC-CarWashService/internal/infra/storage/admin"
)

// Service сервис администраторов.
// Главный администратор задается конфигурацией и не хранится в таблице
type Service struct {
	adminRepo   AdminRepository
	mainAdminID int64
	logger      Logger
}

// NewService создает новый экземпляр сервиса администраторов
func NewService(adminRepo AdminRepository, mainAdminID int64, logger Logger) *Service {
	return &Service{
		adminRepo:   adminRepo,
		mainAdminID: mainAdminID,
		logger:      logger,
	}
}

// IsMainAdmin true для главного администратора
func (s *Service) IsMainAdmin(userID int64) bool {
	return s.mainAdminID != 0 && userID == s.mainAdminID
}

// IsAdmin true для главного администратора и пользователей из таблицы
func (s *Service) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	if s.IsMainAdmin(userID) {
		return true, nil
	}
	if userID <= 0 {
		return false, nil
	}

	exists, err := s.adminRepo.Exists(ctx, userID)
	if err != nil {
		s.logger.Error("IsAdmin: failed to check user=%d: %v", userID, err)
		return false, fmt.Errorf("%w: IsAdmin - repository error: %v", ErrInternal, err)
	}

	return exists, nil
}

// Add назначает администратора. Доступно только главному администратору
func (s *Service) Add(ctx context.Context, requesterID, userID int64) error {
	if err := s.checkMainAdmin("Add", requesterID, userID); err != nil {
		return err
	}

	if err := s.adminRepo.Add(ctx, userID); err != nil {
		s.logger.Error("Add: failed to add admin user=%d: %v", userID, err)
		return fmt.Errorf("%w: Add - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Add: user=%d is admin now", userID)
	return nil
}

// Remove снимает администратора. Доступно только главному администратору
func (s *Service) Remove(ctx context.Context, requesterID, userID int64) error {
	if err := s.checkMainAdmin("Remove", requesterID, userID); err != nil {
		return err
	}

	if err := s.adminRepo.Remove(ctx, userID); err != nil {
		if errors.Is(err, adminRepo.ErrAdminNotFound) {
			return fmt.Errorf("%w: user=%d", ErrAdminNotFound, userID)
		}
		s.logger.Error("Remove: failed to remove admin user=%d: %v", userID, err)
		return fmt.Errorf("%w: Remove - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Remove: user=%d is no longer admin", userID)
	return nil
}

// List главный администратор первым, затем остальные по возрастанию ID
func (s *Service) List(ctx context.Context) ([]int64, error) {
	ids, err := s.adminRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: failed to list admins: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	result := make([]int64, 0, len(ids)+1)
	if s.mainAdminID != 0 {
		result = append(result, s.mainAdminID)
	}
	for _, id := range ids {
		if id != s.mainAdminID {
			result = append(result, id)
		}
	}

	return result, nil
}

func (s *Service) checkMainAdmin(op string, requesterID, userID int64) error {
	if !s.IsMainAdmin(requesterID) {
		s.logger.Warn("%s: user=%d is not the main admin", op, requesterID)
		return ErrAccessDenied
	}
	if userID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}
	if userID == s.mainAdminID {
		return fmt.Errorf("%w: main admin is set in config", ErrInvalidInput)
	}
	return nil
}

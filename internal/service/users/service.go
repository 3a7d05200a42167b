package users

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	"github.com/m04kA/SMC-CarWashService/internal/service/users/models"
	"github.com/m04kA/SMC-CarWashService/pkg/validation"
)

// Service сервис клиентов мойки
type Service struct {
	userRepo UserRepository
	logger   Logger
}

// NewService создает новый экземпляр сервиса клиентов
func NewService(userRepo UserRepository, logger Logger) *Service {
	return &Service{
		userRepo: userRepo,
		logger:   logger,
	}
}

// Register регистрирует клиента или обновляет его данные.
// Без телефона сохраняется ранее известный номер
func (s *Service) Register(ctx context.Context, req *models.RegisterRequest) (*models.UserResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	user := &domain.User{
		UserID:    req.UserID,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}

	if req.PhoneNumber != nil {
		phone, ok := domain.NormalizePhone(*req.PhoneNumber)
		if !ok {
			return nil, fmt.Errorf("%w: phone must have at least %d digits", ErrInvalidInput, domain.MinPhoneDigits)
		}
		user.PhoneNumber = &phone
	}

	saved, err := s.userRepo.Upsert(ctx, user)
	if err != nil {
		s.logger.Error("Register: failed to save user id=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: Register - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Register: user id=%d saved", saved.UserID)
	return models.FromDomainUser(saved), nil
}

// List последние зарегистрированные клиенты
func (s *Service) List(ctx context.Context) ([]*models.UserResponse, error) {
	users, err := s.userRepo.List(ctx, domain.MaxUsersListed)
	if err != nil {
		s.logger.Error("List: failed to list users: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainUsers(users), nil
}

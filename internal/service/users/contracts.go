package users

import (
	"context"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
)

// UserRepository интерфейс репозитория клиентов
type UserRepository interface {
	Upsert(ctx context.Context, user *domain.User) (*domain.User, error)
	List(ctx context.Context, limit int) ([]*domain.User, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

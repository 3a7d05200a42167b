package list_users

import (
	"context"

	"github.com/m04kA/SMC-CarWashService/internal/service/users/models"
)

type UserService interface {
	List(ctx context.Context) ([]*models.UserResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

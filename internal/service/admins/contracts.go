package admins

import "context"

// AdminRepository интерфейс репозитория администраторов
type AdminRepository interface {
	Exists(ctx context.Context, userID int64) (bool, error)
	Add(ctx context.Context, userID int64) error
	Remove(ctx context.Context, userID int64) error
	List(ctx context.Context) ([]int64, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

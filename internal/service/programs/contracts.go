package programs

import (
	"context"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
)

// ProgramRepository интерфейс репозитория каталога программ
type ProgramRepository interface {
	Create(ctx context.Context, program *domain.Program) (*domain.Program, error)
	GetByID(ctx context.Context, id int64) (*domain.Program, error)
	List(ctx context.Context) ([]*domain.Program, error)
	Update(ctx context.Context, id int64, update domain.ProgramUpdate) (*domain.Program, error)
	Delete(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

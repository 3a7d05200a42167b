package create_program

import (
	"context"

	"github.com/m04kA/SMC-CarWashService/internal/service/programs/models"
)

type ProgramService interface {
	Create(ctx context.Context, req *models.CreateProgramRequest) (*models.ProgramResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package update_program

import (
	"context"

	"github.com/m04kA/SMC-CarWashService/internal/service/programs/models"
)

type ProgramService interface {
	Update(ctx context.Context, id int64, req *models.UpdateProgramRequest) (*models.ProgramResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

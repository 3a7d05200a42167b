package get_statistics

import (
	"context"

	"github.com/m04kA/SMC-CarWashService/internal/service/statistics/models"
)

type StatisticsService interface {
	Get(ctx context.Context, req *models.GetStatisticsRequest) (*models.StatisticsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

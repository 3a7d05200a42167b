package statistics

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
)

// BookingRepository агрегаты по записям
type BookingRepository interface {
	GetStatistics(ctx context.Context, from, to time.Time) ([]domain.ProgramStatistics, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

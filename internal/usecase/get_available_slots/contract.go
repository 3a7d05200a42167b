package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
)

// BookingRepository интерфейс репозитория записей
type BookingRepository interface {
	// GetByDate получает все записи на дату (в любом статусе) с длительностями программ
	GetByDate(ctx context.Context, date time.Time) ([]*domain.Booking, error)
}

// ProgramRepository интерфейс каталога программ
type ProgramRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Program, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

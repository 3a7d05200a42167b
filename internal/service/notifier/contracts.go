package notifier

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
)

// BookingRepository интерфейс репозитория записей
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetNextScheduled(ctx context.Context, after, before time.Time) (*domain.Booking, error)
}

// CustomerNotifier доставка сообщений клиентам
type CustomerNotifier interface {
	Send(ctx context.Context, userID int64, text string) error
}

// Scheduler откладывает доставку задачи на delay
type Scheduler interface {
	Schedule(ctx context.Context, task domain.EarlyArrivalTask, delay time.Duration) error
}

// Metrics счетчик уведомлений по результату
type Metrics interface {
	IncEarlyArrival(result string)
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

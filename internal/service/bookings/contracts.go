package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
)

// BookingRepository интерфейс репозитория записей
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetActiveByUserID(ctx context.Context, userID int64) ([]*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	StartWash(ctx context.Context, id int64, at time.Time) (bool, error)
	FinishWash(ctx context.Context, id int64, at time.Time) (bool, error)
	Update(ctx context.Context, id int64, update domain.BookingUpdate) error
	Delete(ctx context.Context, id int64) error
}

// AdminChecker проверка прав администратора
type AdminChecker interface {
	IsAdmin(ctx context.Context, userID int64) (bool, error)
}

// CustomerNotifier доставка сообщений клиентам
type CustomerNotifier interface {
	Send(ctx context.Context, userID int64, text string) error
}

// NextNotifier уведомление следующего клиента после завершения мойки
type NextNotifier interface {
	NotifyNext(ctx context.Context, finishedBookingID int64)
}

// Metrics счетчики переходов мойки
type Metrics interface {
	IncWashTransition(transition string)
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

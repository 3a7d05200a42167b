package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
)

// BookingRepository интерфейс репозитория записей
type BookingRepository interface {
	LockDate(ctx context.Context, date time.Time) error
	GetByDate(ctx context.Context, date time.Time) ([]*domain.Booking, error)
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// ProgramRepository интерфейс каталога программ
type ProgramRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Program, error)
}

// UserRepository интерфейс репозитория клиентов
type UserRepository interface {
	Upsert(ctx context.Context, user *domain.User) (*domain.User, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics счетчики записей
type Metrics interface {
	IncBookingsCreated()
	IncSlotConflicts()
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

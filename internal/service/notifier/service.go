package notifier

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CarWashService/internal/infra/storage/booking"
)

// Результаты уведомлений для метрик
const (
	ResultScheduled = "scheduled"
	ResultSent      = "sent"
	ResultSkipped   = "skipped"
	ResultFailed    = "failed"
)

// Service приглашает следующего клиента дня приехать раньше,
// когда мойка завершилась
type Service struct {
	bookingRepo  BookingRepository
	customers    CustomerNotifier
	scheduler    Scheduler
	schedule     domain.Schedule
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса уведомлений
func NewService(
	bookingRepo BookingRepository,
	customers CustomerNotifier,
	scheduler Scheduler,
	schedule domain.Schedule,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		customers:    customers,
		scheduler:    scheduler,
		schedule:     schedule,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// NotifyNext планирует приглашение для ближайшей записи в статусе scheduled
// того же дня, что и завершенная. Время отправки считается от номинального
// начала завершенной записи плюс буфер, а не от фактического окончания.
// Ничего не возвращает: сбои только логируются
func (s *Service) NotifyNext(ctx context.Context, finishedBookingID int64) {
	finished, err := s.bookingRepo.GetByID(ctx, finishedBookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("NotifyNext: finished booking id=%d not found", finishedBookingID)
			return
		}
		s.logger.Error("NotifyNext: failed to get booking id=%d: %v", finishedBookingID, err)
		return
	}

	dayEnd := domain.DayStart(finished.BookingDatetime).AddDate(0, 0, 1)
	next, err := s.bookingRepo.GetNextScheduled(ctx, finished.BookingDatetime, dayEnd)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Info("NotifyNext: no scheduled booking after id=%d on %s",
				finishedBookingID, finished.BookingDatetime.Format(domain.DateFormat))
			return
		}
		s.logger.Error("NotifyNext: failed to get next booking after id=%d: %v", finishedBookingID, err)
		return
	}

	notifyAt := finished.BookingDatetime.Add(s.schedule.Buffer())
	delay := delayUntil(s.timeProvider.Now(), notifyAt)

	task := domain.EarlyArrivalTask{
		FinishedBookingID: finished.ID,
		NextBookingID:     next.ID,
	}
	if err := s.scheduler.Schedule(ctx, task, delay); err != nil {
		s.metrics.IncEarlyArrival(ResultFailed)
		s.logger.Error("NotifyNext: failed to schedule notification for booking id=%d: %v", next.ID, err)
		return
	}

	s.metrics.IncEarlyArrival(ResultScheduled)
	s.logger.Info("NotifyNext: booking id=%d will be notified in %s", next.ID, delay)
}

// Deliver отправляет приглашение в момент срабатывания.
// Запись перечитывается: если ее удалили или она уже не scheduled,
// сообщение не отправляется. Ошибки доставки не повторяются
func (s *Service) Deliver(ctx context.Context, task domain.EarlyArrivalTask) error {
	next, err := s.bookingRepo.GetByID(ctx, task.NextBookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.metrics.IncEarlyArrival(ResultSkipped)
			s.logger.Info("Deliver: booking id=%d was deleted, skipping", task.NextBookingID)
			return nil
		}
		s.metrics.IncEarlyArrival(ResultFailed)
		s.logger.Error("Deliver: failed to get booking id=%d: %v", task.NextBookingID, err)
		return nil
	}

	if !next.IsScheduled() {
		s.metrics.IncEarlyArrival(ResultSkipped)
		s.logger.Info("Deliver: booking id=%d is %s now, skipping", next.ID, next.Status)
		return nil
	}

	if err := s.customers.Send(ctx, next.UserID, earlyArrivalText(next)); err != nil {
		s.metrics.IncEarlyArrival(ResultFailed)
		s.logger.Warn("Deliver: failed to notify user=%d about booking id=%d: %v", next.UserID, next.ID, err)
		return nil
	}

	s.metrics.IncEarlyArrival(ResultSent)
	s.logger.Info("Deliver: user=%d invited to come earlier for booking id=%d", next.UserID, next.ID)
	return nil
}

func earlyArrivalText(b *domain.Booking) string {
	return fmt.Sprintf("🚗 Ваша мийка (ID %d, авто %s) може розпочатися раніше. Будь ласка, приїжджайте за можливості.",
		b.ID, b.CarNumber)
}

// delayUntil время до момента at, не меньше нуля
func delayUntil(now, at time.Time) time.Duration {
	if d := at.Sub(now); d > 0 {
		return d
	}
	return 0
}

package notifier

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
)

// ErrSchedulerStopped возвращается при планировании после Stop
var ErrSchedulerStopped = errors.New("notifier: scheduler stopped")

// Handler обработчик сработавшей задачи
type Handler func(ctx context.Context, task domain.EarlyArrivalTask) error

// TimerScheduler планировщик на таймерах процесса.
// Задачи теряются при перезапуске; для переживающих рестарт задач
// используется планировщик на очереди
type TimerScheduler struct {
	mu      sync.Mutex
	handler Handler
	timers  map[int64]*time.Timer // по ID завершенной записи
	stopped bool
	logger  Logger
}

// NewTimerScheduler создает планировщик; обработчик задается через SetHandler
func NewTimerScheduler(logger Logger) *TimerScheduler {
	return &TimerScheduler{
		timers: make(map[int64]*time.Timer),
		logger: logger,
	}
}

// SetHandler задает обработчик сработавших задач
func (t *TimerScheduler) SetHandler(h Handler) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.handler = h
}

// Schedule запускает таймер. Повторное планирование для той же завершенной
// записи, пока предыдущая задача не сработала, игнорируется
func (t *TimerScheduler) Schedule(_ context.Context, task domain.EarlyArrivalTask, delay time.Duration) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stopped {
		return ErrSchedulerStopped
	}
	if _, exists := t.timers[task.FinishedBookingID]; exists {
		t.logger.Info("TimerScheduler: task for finished booking id=%d already pending", task.FinishedBookingID)
		return nil
	}

	t.timers[task.FinishedBookingID] = time.AfterFunc(delay, func() {
		t.fire(task)
	})

	return nil
}

func (t *TimerScheduler) fire(task domain.EarlyArrivalTask) {
	t.mu.Lock()
	delete(t.timers, task.FinishedBookingID)
	handler := t.handler
	t.mu.Unlock()

	if handler == nil {
		t.logger.Error("TimerScheduler: no handler for finished booking id=%d", task.FinishedBookingID)
		return
	}

	if err := handler(context.Background(), task); err != nil {
		t.logger.Warn("TimerScheduler: task for finished booking id=%d failed: %v", task.FinishedBookingID, err)
	}
}

// Pending количество ожидающих задач
func (t *TimerScheduler) Pending() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.timers)
}

// Stop отменяет ожидающие задачи
func (t *TimerScheduler) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopped = true
	for id, timer := range t.timers {
		timer.Stop()
		delete(t.timers, id)
	}
}

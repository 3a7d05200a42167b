package queue

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
)

// Scheduler откладывает приглашения в Redis через asynq.
// Задачи переживают перезапуск процесса
type Scheduler struct {
	client *asynq.Client
	queue  string
	logger Logger
}

// NewScheduler создает планировщик поверх Redis
func NewScheduler(redis asynq.RedisClientOpt, queue string, logger Logger) *Scheduler {
	return &Scheduler{
		client: asynq.NewClient(redis),
		queue:  queue,
		logger: logger,
	}
}

// Schedule ставит задачу с задержкой delay. Задача уже стоит в очереди,
// если ее ID занят: это не ошибка
func (s *Scheduler) Schedule(ctx context.Context, task domain.EarlyArrivalTask, delay time.Duration) error {
	t, err := newEarlyArrivalTask(task)
	if err != nil {
		return err
	}

	info, err := s.client.EnqueueContext(ctx, t, s.options(task, delay)...)
	if err != nil {
		if errors.Is(err, asynq.ErrTaskIDConflict) {
			s.logger.Info("Scheduler: task for finished booking id=%d already enqueued", task.FinishedBookingID)
			return nil
		}
		return fmt.Errorf("%w: Schedule - EnqueueContext: %v", ErrEnqueueTask, err)
	}

	s.logger.Debug("Scheduler: enqueued task id=%s queue=%s in %s", info.ID, info.Queue, delay)
	return nil
}

func (s *Scheduler) options(task domain.EarlyArrivalTask, delay time.Duration) []asynq.Option {
	return []asynq.Option{
		asynq.TaskID(taskID(task.FinishedBookingID)),
		asynq.Queue(s.queue),
		asynq.ProcessIn(delay),
		asynq.MaxRetry(0),
		asynq.Retention(24 * time.Hour),
	}
}

// Close закрывает соединение с Redis
func (s *Scheduler) Close() error {
	return s.client.Close()
}

package queue

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
)

// Worker забирает отложенные приглашения из Redis
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	logger Logger
}

// NewWorker создает обработчик очереди queue
func NewWorker(redis asynq.RedisClientOpt, queue string, concurrency int, deliver DeliverFunc, logger Logger) *Worker {
	server := asynq.NewServer(redis, asynq.Config{
		Concurrency: concurrency,
		Queues:      map[string]int{queue: 1},
		Logger:      asynqLogger{logger: logger},
	})

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeEarlyArrival, handleEarlyArrival(deliver, logger))

	return &Worker{
		server: server,
		mux:    mux,
		logger: logger,
	}
}

// Start запускает обработку в фоне
func (w *Worker) Start() error {
	if err := w.server.Start(w.mux); err != nil {
		return fmt.Errorf("%w: Start: %v", ErrStartWorker, err)
	}
	w.logger.Info("Worker: early-arrival worker started")
	return nil
}

// Shutdown дожидается активных задач и останавливает обработку
func (w *Worker) Shutdown() {
	w.server.Shutdown()
	w.logger.Info("Worker: early-arrival worker stopped")
}

func handleEarlyArrival(deliver DeliverFunc, logger Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		task, err := decodeEarlyArrivalTask(t)
		if err != nil {
			logger.Error("handleEarlyArrival: %v", err)
			return fmt.Errorf("%w: %w", err, asynq.SkipRetry)
		}

		return deliver(ctx, task)
	}
}

// asynqLogger направляет журнал asynq в логгер сервиса
type asynqLogger struct {
	logger Logger
}

func (l asynqLogger) Debug(args ...interface{}) { l.logger.Debug("asynq: %s", fmt.Sprint(args...)) }
func (l asynqLogger) Info(args ...interface{})  { l.logger.Info("asynq: %s", fmt.Sprint(args...)) }
func (l asynqLogger) Warn(args ...interface{})  { l.logger.Warn("asynq: %s", fmt.Sprint(args...)) }
func (l asynqLogger) Error(args ...interface{}) { l.logger.Error("asynq: %s", fmt.Sprint(args...)) }
func (l asynqLogger) Fatal(args ...interface{}) { l.logger.Fatal("asynq: %s", fmt.Sprint(args...)) }

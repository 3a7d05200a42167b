package queue

import (
	"context"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
)

// DeliverFunc обработчик сработавшего приглашения
type DeliverFunc func(ctx context.Context, task domain.EarlyArrivalTask) error

type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
	Fatal(format string, v ...interface{})
}

package finish_wash

import (
	"context"

	"github.com/m04kA/SMC-CarWashService/internal/service/bookings/models"
)

type BookingService interface {
	Finish(ctx context.Context, id int64) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

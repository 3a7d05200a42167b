package add_admin

import "context"

type AdminService interface {
	Add(ctx context.Context, requesterID, userID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

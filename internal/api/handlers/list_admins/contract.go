package list_admins

import "context"

type AdminService interface {
	List(ctx context.Context) ([]int64, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

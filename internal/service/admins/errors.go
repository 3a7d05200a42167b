package admins

import "errors"

var (
	// ErrAdminNotFound возвращается при удалении пользователя, который не администратор
	ErrAdminNotFound = errors.New("admin not found")

	// ErrAccessDenied возвращается, когда действие доступно только главному администратору
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)

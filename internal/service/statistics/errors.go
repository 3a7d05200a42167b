package statistics

import "errors"

var (
	// ErrInvalidInput возвращается при некорректном периоде
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)

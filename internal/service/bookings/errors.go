package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда запись не найдена
	ErrBookingNotFound = errors.New("booking not found")

	// ErrAlreadyStarted возвращается при попытке начать уже начатую мойку
	ErrAlreadyStarted = errors.New("wash already started")

	// ErrAlreadyFinished возвращается при попытке начать или завершить завершенную мойку
	ErrAlreadyFinished = errors.New("wash already finished")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)

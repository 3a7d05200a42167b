package programs

import "errors"

var (
	// ErrProgramNotFound возвращается, когда программа не найдена
	ErrProgramNotFound = errors.New("program not found")

	// ErrProgramAlreadyExists возвращается, когда программа с таким названием уже есть
	ErrProgramAlreadyExists = errors.New("program already exists")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)

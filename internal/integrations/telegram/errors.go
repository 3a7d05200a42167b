package telegram

import "errors"

var (
	// ErrChatNotFound возвращается, когда бот не может писать пользователю
	// (чат не начат или бот заблокирован)
	ErrChatNotFound = errors.New("telegram client: chat not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("telegram client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе Bot API
	ErrInvalidResponse = errors.New("telegram client: invalid response")
)

package pgerrors

import (
	"errors"

	"github.com/lib/pq"
)

// Коды ошибок PostgreSQL, на которые реагирует сервис
const (
	CodeUniqueViolation      = "23505"
	CodeForeignKeyViolation  = "23503"
	CodeSerializationFailure = "40001"
	CodeDeadlockDetected     = "40P01"
)

// Code возвращает SQLSTATE ошибки PostgreSQL или пустую строку
func Code(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

// IsUniqueViolation нарушение уникального ограничения
func IsUniqueViolation(err error) bool {
	return Code(err) == CodeUniqueViolation
}

// IsForeignKeyViolation нарушение внешнего ключа
func IsForeignKeyViolation(err error) bool {
	return Code(err) == CodeForeignKeyViolation
}

// IsSerializationFailure транзакция проиграла конкурентной транзакции
// (serialization failure или deadlock) и может быть повторена
func IsSerializationFailure(err error) bool {
	code := Code(err)
	return code == CodeSerializationFailure || code == CodeDeadlockDetected
}

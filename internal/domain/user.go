package domain

import (
	"strings"
	"time"
	"unicode"
)

// User клиент мойки (пользователь Telegram)
type User struct {
	UserID       int64
	Username     *string
	PhoneNumber  *string
	FirstName    *string
	LastName     *string
	RegisteredAt time.Time
}

// NormalizePhone оставляет только цифры и добавляет "+".
// false, если цифр меньше MinPhoneDigits
func NormalizePhone(raw string) (string, bool) {
	var digits strings.Builder
	for _, r := range raw {
		if unicode.IsDigit(r) {
			digits.WriteRune(r)
		}
	}

	if digits.Len() < MinPhoneDigits {
		return "", false
	}

	return "+" + digits.String(), true
}

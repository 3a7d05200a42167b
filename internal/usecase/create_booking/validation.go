package create_booking

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.ProgramID <= 0 {
		return fmt.Errorf("%w: programID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	return nil
}

// normalizeCarNumber приводит номер к верхнему регистру и проверяет формат
func normalizeCarNumber(raw string) (string, error) {
	car := strings.ToUpper(strings.Join(strings.Fields(raw), ""))
	if !domain.CarNumberPattern.MatchString(car) {
		return "", fmt.Errorf("%w: %q, expected format AA1234BB", ErrInvalidCarNumber, raw)
	}
	return car, nil
}

// normalizePhone приводит телефон к виду "+цифры"
func normalizePhone(raw string) (string, error) {
	phone, ok := domain.NormalizePhone(raw)
	if !ok {
		return "", fmt.Errorf("%w: %q has less than %d digits", ErrInvalidPhone, raw, domain.MinPhoneDigits)
	}
	return phone, nil
}

package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-CarWashService/pkg/types"
)

// ErrValidation оборачивает все ошибки валидации структур
var ErrValidation = errors.New("validation failed")

var (
	once     sync.Once
	validate *validator.Validate

	// HH:MM:SS, часы без ограничения сверху (длительность программы)
	durationPattern = regexp.MustCompile(`^\d{1,3}:[0-5]\d:[0-5]\d$`)
)

var messages = map[string]string{
	"required": "{field} is required",
	"gt":       "{field} must be greater than {param}",
	"gte":      "{field} must be greater than or equal to {param}",
	"lte":      "{field} must be less than or equal to {param}",
	"max":      "{field} must be at most {param} characters",
	"oneof":    "{field} must be one of: {param}",
	"datetime": "{field} must match layout {param}",
	"hhmm":     "{field} must be a time of day HH:MM",
	"hhmmss":   "{field} must be a duration HH:MM:SS",
}

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		mustRegister("hhmm", func(fl validator.FieldLevel) bool {
			_, err := types.NewTimeStringFromString(fl.Field().String())
			return err == nil
		})
		mustRegister("hhmmss", func(fl validator.FieldLevel) bool {
			return durationPattern.MatchString(fl.Field().String())
		})
	})
	return validate
}

func mustRegister(tag string, fn validator.Func) {
	if err := validate.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// Struct проверяет структуру по тегам `validate`.
// Возвращает ErrValidation с описанием первого нарушенного правила
func Struct(data any) error {
	if err := instance().Struct(data); err != nil {
		return fmt.Errorf("%w: %s", ErrValidation, message(err))
	}
	return nil
}

func message(err error) string {
	var valErrors validator.ValidationErrors
	if !errors.As(err, &valErrors) {
		return err.Error()
	}

	for _, valErr := range valErrors {
		msg, ok := messages[valErr.Tag()]
		if !ok {
			continue
		}
		msg = strings.ReplaceAll(msg, "{field}", valErr.Field())
		msg = strings.ReplaceAll(msg, "{param}", valErr.Param())
		return msg
	}

	return valErrors.Error()
}

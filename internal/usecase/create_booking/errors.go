package create_booking

import "errors"

var (
	// ErrProgramNotFound возвращается, когда программа не найдена или не может быть записана
	ErrProgramNotFound = errors.New("create_booking: program not found")

	// ErrSlotTaken возвращается, когда время пересекается с другой записью
	// или конкурентная транзакция заняла его раньше
	ErrSlotTaken = errors.New("create_booking: slot is already taken")

	// ErrInvalidTimeSlot возвращается, когда время не является началом часа
	// в рабочем окне, уже прошло или слот не помещается до закрытия
	ErrInvalidTimeSlot = errors.New("create_booking: invalid time slot")

	// ErrInvalidCarNumber возвращается при неверном формате номера авто
	ErrInvalidCarNumber = errors.New("create_booking: invalid car number")

	// ErrInvalidPhone возвращается при неверном номере телефона
	ErrInvalidPhone = errors.New("create_booking: invalid phone number")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

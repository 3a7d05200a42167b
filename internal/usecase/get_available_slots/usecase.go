package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	programRepo "github.com/m04kA/SMC-CarWashService/internal/infra/storage/program"
	"github.com/m04kA/SMC-CarWashService/pkg/types"
)

// UseCase use case расчета свободного времени для программы на дату
type UseCase struct {
	bookingRepo  BookingRepository
	programRepo  ProgramRepository
	schedule     domain.Schedule
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	programRepo ProgramRepository,
	schedule domain.Schedule,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		programRepo:  programRepo,
		schedule:     schedule,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute возвращает свободные часовые начала слотов.
// Неизвестная программа или программа с неположительной длительностью
// дают пустой список без ошибки
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: program=%d, date=%s", req.ProgramID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	resp := &Response{
		Date:      domain.DayStart(req.Date),
		ProgramID: req.ProgramID,
		Starts:    []types.TimeString{},
	}

	// 2. Длительность программы
	program, err := uc.programRepo.GetByID(ctx, req.ProgramID)
	if err != nil {
		if errors.Is(err, programRepo.ErrProgramNotFound) {
			uc.logger.Warn("GetAvailableSlots: program id=%d not found", req.ProgramID)
			return resp, nil
		}
		uc.logger.Error("GetAvailableSlots: failed to get program id=%d: %v", req.ProgramID, err)
		return nil, fmt.Errorf("%w: failed to get program: %v", ErrInternal, err)
	}

	resp.DurationMinutes = program.DurationMinutes
	if !program.IsSchedulable() {
		uc.logger.Warn("GetAvailableSlots: program id=%d has non-positive duration %d", program.ID, program.DurationMinutes)
		return resp, nil
	}

	// 3. Кандидаты в рабочем окне
	now := uc.timeProvider.Now()
	slots := windowSlots(uc.schedule, resp.Date, program.Duration(), now)
	if len(slots) == 0 {
		return resp, nil
	}

	// 4. Все записи на дату, в любом статусе
	bookings, err := uc.bookingRepo.GetByDate(ctx, resp.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 5. Отбрасываем пересечения с учетом буфера
	resp.Starts = freeStarts(slots, bookings, uc.schedule.Buffer())

	uc.logger.Info("GetAvailableSlots: %d free starts for program=%d, date=%s",
		len(resp.Starts), req.ProgramID, resp.Date.Format(domain.DateFormat))

	return resp, nil
}

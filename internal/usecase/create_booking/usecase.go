package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	programRepo "github.com/m04kA/SMC-CarWashService/internal/infra/storage/program"
	"github.com/m04kA/SMC-CarWashService/pkg/pgerrors"
	"github.com/m04kA/SMC-CarWashService/pkg/ptr"
)

// UseCase use case создания записи на мойку
type UseCase struct {
	bookingRepo  BookingRepository
	programRepo  ProgramRepository
	userRepo     UserRepository
	txManager    TransactionManager
	schedule     domain.Schedule
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	programRepo ProgramRepository,
	userRepo UserRepository,
	txManager TransactionManager,
	schedule domain.Schedule,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		programRepo:  programRepo,
		userRepo:     userRepo,
		txManager:    txManager,
		schedule:     schedule,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute создает запись.
//
// Проверка и вставка выполняются в одной сериализуемой транзакции под
// advisory-блокировкой даты: из двух конкурентных запросов на пересекающееся
// время успешен ровно один, второй получает ErrSlotTaken
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, program=%d, date=%s, time=%s",
		req.UserID, req.ProgramID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	carNumber, err := normalizeCarNumber(req.CarNumber)
	if err != nil {
		uc.logger.Warn("CreateBooking: %v", err)
		return nil, err
	}

	var phone *string
	if req.PhoneNumber != nil && *req.PhoneNumber != "" {
		normalized, err := normalizePhone(*req.PhoneNumber)
		if err != nil {
			uc.logger.Warn("CreateBooking: %v", err)
			return nil, err
		}
		phone = &normalized
	}

	start, err := req.StartTime.On(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 2. Программа и ее длительность
	program, err := uc.programRepo.GetByID(ctx, req.ProgramID)
	if err != nil {
		if errors.Is(err, programRepo.ErrProgramNotFound) {
			uc.logger.Warn("CreateBooking: program id=%d not found", req.ProgramID)
			return nil, ErrProgramNotFound
		}
		uc.logger.Error("CreateBooking: failed to get program id=%d: %v", req.ProgramID, err)
		return nil, fmt.Errorf("%w: failed to get program: %v", ErrInternal, err)
	}
	if !program.IsSchedulable() {
		uc.logger.Warn("CreateBooking: program id=%d has non-positive duration", program.ID)
		return nil, ErrProgramNotFound
	}

	// 3. Регистрируем клиента (телефон сохраняется, если не передан новый)
	user, err := uc.userRepo.Upsert(ctx, &domain.User{
		UserID:      req.UserID,
		Username:    req.Username,
		PhoneNumber: phone,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
	})
	if err != nil {
		uc.logger.Error("CreateBooking: failed to save user id=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: failed to save user: %v", ErrInternal, err)
	}

	now := uc.timeProvider.Now()
	slot := domain.NewSlot(start, program.Duration())

	var result *domain.Booking

	// 4. Проверка и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Сериализуем все создания записей на эту дату
		if err := uc.bookingRepo.LockDate(txCtx, start); err != nil {
			return fmt.Errorf("%w: failed to lock date: %w", ErrInternal, err)
		}

		// 4.2. Время должно быть часовым началом в рабочем окне и еще не прошедшим
		if !uc.schedule.IsCandidateStart(start) || !uc.schedule.FitsWindow(slot, now) {
			uc.logger.Warn("CreateBooking: %s does not fit the working window", start.Format(domain.DisplayDateTimeFormat))
			return ErrInvalidTimeSlot
		}

		// 4.3. Перечитываем записи дня с блокировкой строк
		bookings, err := uc.bookingRepo.GetByDate(txCtx, start)
		if err != nil {
			return fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
		}

		// 4.4. Та же политика пересечений, что и при показе свободного времени
		if conflict := domain.FirstConflict(slot.Start, slot.End, bookings, uc.schedule.Buffer()); conflict != nil {
			uc.logger.Warn("CreateBooking: %s conflicts with booking id=%d",
				start.Format(domain.DisplayDateTimeFormat), conflict.ID)
			return ErrSlotTaken
		}

		// 4.5. Создаем запись
		created, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
			UserID:          req.UserID,
			ProgramID:       ptr.Ptr(program.ID),
			CarNumber:       carNumber,
			BookingDatetime: start,
			Status:          domain.StatusScheduled,
		})
		if err != nil {
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrSlotTaken), pgerrors.IsSerializationFailure(err):
			uc.metrics.IncSlotConflicts()
			uc.logger.Warn("CreateBooking: slot %s is taken: %v", start.Format(domain.DisplayDateTimeFormat), err)
			return nil, ErrSlotTaken
		case errors.Is(err, ErrInvalidTimeSlot):
			return nil, err
		default:
			uc.logger.Error("CreateBooking: %v", err)
			if errors.Is(err, ErrInternal) {
				return nil, err
			}
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
	}

	uc.metrics.IncBookingsCreated()
	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	return &Response{
		ID:              result.ID,
		UserID:          result.UserID,
		ProgramID:       program.ID,
		ProgramName:     program.Name,
		DurationMinutes: program.DurationMinutes,
		CarNumber:       result.CarNumber,
		PhoneNumber:     user.PhoneNumber,
		BookingDatetime: result.BookingDatetime,
		Status:          string(result.Status),
		CreatedAt:       result.CreatedAt,
	}, nil
}

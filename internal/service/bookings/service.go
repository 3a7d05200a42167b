package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CarWashService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-CarWashService/internal/service/bookings/models"
	"github.com/m04kA/SMC-CarWashService/pkg/types"
	"github.com/m04kA/SMC-CarWashService/pkg/validation"
)

// Переходы мойки для метрик
const (
	transitionStart      = "start"
	transitionFinish     = "finish"
	transitionReschedule = "reschedule"
	transitionDelete     = "delete"
)

// Service сервис жизненного цикла записей: старт и завершение мойки,
// административные изменения и чтение
type Service struct {
	bookingRepo  BookingRepository
	admins       AdminChecker
	customers    CustomerNotifier
	nextNotifier NextNotifier
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	bookingRepo BookingRepository,
	admins AdminChecker,
	customers CustomerNotifier,
	nextNotifier NextNotifier,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		admins:       admins,
		customers:    customers,
		nextNotifier: nextNotifier,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// GetByID получает запись по ID.
// Клиент видит только свои записи, администратор любые
func (s *Service) GetByID(ctx context.Context, id int64, requesterID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, requesterID)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if err := s.checkAccess(ctx, booking.UserID, requesterID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", requesterID, id)
		return nil, err
	}

	return models.FromDomainBooking(booking), nil
}

// GetUserActiveBookings незавершенные записи клиента по возрастанию времени
func (s *Service) GetUserActiveBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserActiveBookings: fetching bookings for user=%d by user=%d", req.UserID, req.RequesterID)

	if err := s.checkAccess(ctx, req.UserID, req.RequesterID); err != nil {
		s.logger.Warn("GetUserActiveBookings: access denied for user=%d", req.RequesterID)
		return nil, err
	}

	bookings, err := s.bookingRepo.GetActiveByUserID(ctx, req.UserID)
	if err != nil {
		s.logger.Error("GetUserActiveBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserActiveBookings - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBookingList(bookings), nil
}

// List административный список записей с фильтрами
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	if err := validation.Struct(req); err != nil {
		s.logger.Warn("List: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date: %v", ErrInvalidInput, err)
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// Start начинает мойку: scheduled -> in_progress.
// Переход атомарный: из двух одновременных вызовов успешен один
func (s *Service) Start(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("Start: starting wash id=%d", id)

	applied, err := s.bookingRepo.StartWash(ctx, id, s.timeProvider.Now())
	if err != nil {
		s.logger.Error("Start: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Start - repository error: %v", ErrInternal, err)
	}

	booking, err := s.getBooking(ctx, "Start", id)
	if err != nil {
		return nil, err
	}

	if !applied {
		return nil, s.rejectedTransition("Start", booking)
	}

	s.metrics.IncWashTransition(transitionStart)
	s.notify(ctx, booking, startedText(booking))

	s.logger.Info("Start: wash id=%d started at %s", id, booking.ActualStart)
	return models.FromDomainBooking(booking), nil
}

// Finish завершает мойку из scheduled или in_progress.
// После успеха следующий клиент дня получает приглашение приехать раньше;
// это происходит в фоне и на результат Finish не влияет
func (s *Service) Finish(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("Finish: finishing wash id=%d", id)

	applied, err := s.bookingRepo.FinishWash(ctx, id, s.timeProvider.Now())
	if err != nil {
		s.logger.Error("Finish: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Finish - repository error: %v", ErrInternal, err)
	}

	booking, err := s.getBooking(ctx, "Finish", id)
	if err != nil {
		return nil, err
	}

	if !applied {
		return nil, s.rejectedTransition("Finish", booking)
	}

	s.metrics.IncWashTransition(transitionFinish)
	s.notify(ctx, booking, finishedText(booking))

	go s.nextNotifier.NotifyNext(context.WithoutCancel(ctx), id)

	s.logger.Info("Finish: wash id=%d finished", id)
	return models.FromDomainBooking(booking), nil
}

// Reschedule административное изменение даты, времени и/или статуса.
// Пересечения и порядок переходов не проверяются.
// Возврат в scheduled очищает фактическое время, в in_progress - время окончания
func (s *Service) Reschedule(ctx context.Context, id int64, req *models.RescheduleRequest) (*models.BookingResponse, error) {
	s.logger.Info("Reschedule: booking id=%d", id)

	if req.IsEmpty() {
		return nil, fmt.Errorf("%w: nothing to change, set date, time or status", ErrInvalidInput)
	}
	if err := validation.Struct(req); err != nil {
		s.logger.Warn("Reschedule: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	booking, err := s.getBooking(ctx, "Reschedule", id)
	if err != nil {
		return nil, err
	}

	update, err := buildUpdate(booking, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.bookingRepo.Update(ctx, id, update); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Reschedule: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Reschedule - repository error: %v", ErrInternal, err)
	}

	updated, err := s.getBooking(ctx, "Reschedule", id)
	if err != nil {
		return nil, err
	}

	s.metrics.IncWashTransition(transitionReschedule)
	s.notify(ctx, updated, rescheduledText(updated, update.BookingDatetime != nil, update.Status != nil))

	s.logger.Info("Reschedule: booking id=%d now %s, status=%s",
		id, updated.BookingDatetime.Format(domain.DisplayDateTimeFormat), updated.Status)
	return models.FromDomainBooking(updated), nil
}

// Delete удаляет запись и сообщает клиенту об отмене
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting booking id=%d", id)

	booking, err := s.getBooking(ctx, "Delete", id)
	if err != nil {
		return err
	}

	if err := s.bookingRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("Delete: repository error for booking id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.metrics.IncWashTransition(transitionDelete)
	s.notify(ctx, booking, deletedText(booking))

	s.logger.Info("Delete: booking id=%d deleted", id)
	return nil
}

func (s *Service) getBooking(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

// rejectedTransition объясняет, почему условное обновление не применилось
func (s *Service) rejectedTransition(op string, booking *domain.Booking) error {
	s.logger.Warn("%s: booking id=%d rejected in status=%s", op, booking.ID, booking.Status)

	switch booking.Status {
	case domain.StatusFinished:
		return ErrAlreadyFinished
	case domain.StatusInProgress:
		return ErrAlreadyStarted
	default:
		// Статус успел измениться между обновлением и чтением
		return fmt.Errorf("%w: %s - booking id=%d changed concurrently", ErrInternal, op, booking.ID)
	}
}

func (s *Service) checkAccess(ctx context.Context, ownerID, requesterID int64) error {
	if ownerID == requesterID {
		return nil
	}

	isAdmin, err := s.admins.IsAdmin(ctx, requesterID)
	if err != nil {
		return fmt.Errorf("%w: failed to check admin rights: %v", ErrInternal, err)
	}
	if !isAdmin {
		return ErrAccessDenied
	}

	return nil
}

// notify отправляет сообщение клиенту; ошибки доставки только логируются
func (s *Service) notify(ctx context.Context, booking *domain.Booking, text string) {
	if err := s.customers.Send(ctx, booking.UserID, text); err != nil {
		s.logger.Warn("failed to notify user=%d about booking id=%d: %v", booking.UserID, booking.ID, err)
	}
}

// buildUpdate собирает изменение записи из запроса администратора
func buildUpdate(booking *domain.Booking, req *models.RescheduleRequest) (domain.BookingUpdate, error) {
	var update domain.BookingUpdate

	if req.Date != nil || req.Time != nil {
		current := booking.BookingDatetime
		date := current

		if req.Date != nil {
			parsed, err := time.ParseInLocation(domain.DateFormat, *req.Date, time.Local)
			if err != nil {
				return update, err
			}
			date = parsed
		}

		startTime := types.NewTimeString(current)
		if req.Time != nil {
			parsed, err := types.NewTimeStringFromString(*req.Time)
			if err != nil {
				return update, err
			}
			startTime = parsed
		}

		datetime, err := startTime.On(time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.Local))
		if err != nil {
			return update, err
		}
		update.BookingDatetime = &datetime
	}

	if req.Status != nil {
		status := domain.BookingStatus(*req.Status)
		if !status.IsValid() {
			return update, fmt.Errorf("unknown status %q", *req.Status)
		}
		update.Status = &status

		switch status {
		case domain.StatusScheduled:
			update.ClearActualStart = true
			update.ClearActualEnd = true
		case domain.StatusInProgress:
			update.ClearActualEnd = true
		}
	}

	return update, nil
}

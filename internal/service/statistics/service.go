package statistics

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	"github.com/m04kA/SMC-CarWashService/internal/service/statistics/models"
	"github.com/m04kA/SMC-CarWashService/pkg/validation"
)

// Service статистика записей по программам
type Service struct {
	bookingRepo  BookingRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса статистики
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// Get статистика за период включительно.
// Без дат берется сегодняшний день, только с from период from..сегодня
func (s *Service) Get(ctx context.Context, req *models.GetStatisticsRequest) (*models.StatisticsResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	from, to, err := s.period(req)
	if err != nil {
		return nil, err
	}

	byProgram, err := s.bookingRepo.GetStatistics(ctx, from, to)
	if err != nil {
		s.logger.Error("Get: failed to aggregate bookings %s..%s: %v",
			from.Format(domain.DateFormat), to.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	stats := &domain.Statistics{
		From:      from,
		To:        to,
		ByProgram: byProgram,
	}
	for _, p := range byProgram {
		stats.TotalCount += p.Count
		stats.TotalSum += p.Total
	}

	return models.FromDomainStatistics(stats), nil
}

func (s *Service) period(req *models.GetStatisticsRequest) (from, to time.Time, err error) {
	today := domain.DayStart(s.timeProvider.Now())
	from, to = today, today

	if req.From != nil {
		if from, err = parseDate(*req.From); err != nil {
			return from, to, err
		}
	}
	if req.To != nil {
		if to, err = parseDate(*req.To); err != nil {
			return from, to, err
		}
	}

	if from.After(to) {
		return from, to, fmt.Errorf("%w: from %s is after to %s",
			ErrInvalidInput, from.Format(domain.DateFormat), to.Format(domain.DateFormat))
	}

	return from, to, nil
}

func parseDate(s string) (time.Time, error) {
	date, err := time.ParseInLocation(domain.DateFormat, s, time.Local)
	if err != nil {
		return date, fmt.Errorf("%w: invalid date %q", ErrInvalidInput, s)
	}
	return date, nil
}

package models

import (
	"time"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	"github.com/m04kA/SMC-CarWashService/pkg/types"
)

// Request модели

// GetUserBookingsRequest незавершенные записи клиента
type GetUserBookingsRequest struct {
	UserID      int64 // Чьи записи
	RequesterID int64 // Кто спрашивает (сам клиент или администратор)
}

// ListBookingsRequest административный список записей
type ListBookingsRequest struct {
	Date      *string `validate:"omitempty,datetime=2006-01-02"`
	UserID    *int64  `validate:"omitempty,gt=0"`
	CarNumber *string `validate:"omitempty,max=16"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		UserID:    r.UserID,
		CarNumber: r.CarNumber,
	}

	if r.Date != nil {
		date, err := time.ParseInLocation(domain.DateFormat, *r.Date, time.Local)
		if err != nil {
			return filter, err
		}
		filter.Date = &date
	}

	return filter, nil
}

// RescheduleRequest административное изменение записи.
// Хотя бы одно поле должно быть задано
type RescheduleRequest struct {
	Date   *string `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Time   *string `json:"time,omitempty" validate:"omitempty,hhmm"`
	Status *string `json:"status,omitempty" validate:"omitempty,oneof=scheduled in_progress finished"`
}

// IsEmpty true, если изменять нечего
func (r *RescheduleRequest) IsEmpty() bool {
	return r.Date == nil && r.Time == nil && r.Status == nil
}

// Response модели

// BookingResponse ответ с данными записи
type BookingResponse struct {
	ID              int64    `json:"id"`
	UserID          int64    `json:"userId"`
	Username        *string  `json:"username,omitempty"`
	PhoneNumber     *string  `json:"phoneNumber,omitempty"`
	ProgramID       *int64   `json:"programId,omitempty"`
	ProgramName     *string  `json:"programName,omitempty"`
	ProgramPrice    *float64 `json:"programPrice,omitempty"`
	DurationMinutes *int     `json:"durationMinutes,omitempty"`
	CarNumber       string   `json:"carNumber"`
	Date            string   `json:"date"`      // "2026-10-20"
	StartTime       string   `json:"startTime"` // "12:00"
	Status          string   `json:"status"`

	ActualStart *time.Time `json:"actualStart,omitempty"`
	ActualEnd   *time.Time `json:"actualEnd,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// BookingListResponse ответ со списком записей
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:              b.ID,
		UserID:          b.UserID,
		Username:        b.Username,
		PhoneNumber:     b.PhoneNumber,
		ProgramID:       b.ProgramID,
		ProgramName:     b.ProgramName,
		ProgramPrice:    b.ProgramPrice,
		DurationMinutes: b.DurationMinutes,
		CarNumber:       b.CarNumber,
		Date:            b.BookingDatetime.Format(domain.DateFormat),
		StartTime:       types.NewTimeString(b.BookingDatetime).String(),
		Status:          string(b.Status),
		ActualStart:     b.ActualStart,
		ActualEnd:       b.ActualEnd,
		CreatedAt:       b.CreatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

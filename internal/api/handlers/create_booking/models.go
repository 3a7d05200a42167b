package create_booking

import (
	"time"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	createBooking "github.com/m04kA/SMC-CarWashService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-CarWashService/pkg/types"
)

// CreateBookingRequest HTTP request model.
// Клиент берется из X-User-ID, профиль передается ботом
type CreateBookingRequest struct {
	ProgramID   int64   `json:"programId"`
	CarNumber   string  `json:"carNumber"`   // "AA1234BB"
	BookingDate string  `json:"bookingDate"` // "2026-10-20"
	StartTime   string  `json:"startTime"`   // "12:00"
	PhoneNumber *string `json:"phoneNumber,omitempty"`
	Username    *string `json:"username,omitempty"`
	FirstName   *string `json:"firstName,omitempty"`
	LastName    *string `json:"lastName,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64   `json:"id"`
	UserID          int64   `json:"userId"`
	ProgramID       int64   `json:"programId"`
	ProgramName     string  `json:"programName"`
	DurationMinutes int     `json:"durationMinutes"`
	CarNumber       string  `json:"carNumber"`
	PhoneNumber     *string `json:"phoneNumber,omitempty"`
	BookingDate     string  `json:"bookingDate"`
	StartTime       string  `json:"startTime"`
	Status          string  `json:"status"`
	CreatedAt       string  `json:"createdAt"`
}

type parseError struct {
	field string
	err   error
}

func (e *parseError) Error() string { return e.field + ": " + e.err.Error() }
func (e *parseError) Unwrap() error { return e.err }

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*createBooking.Request, error) {
	bookingDate, err := time.ParseInLocation(domain.DateFormat, r.BookingDate, time.Local)
	if err != nil {
		return nil, &parseError{field: "bookingDate", err: err}
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, &parseError{field: "startTime", err: err}
	}

	return &createBooking.Request{
		UserID:      userID,
		Username:    r.Username,
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		PhoneNumber: r.PhoneNumber,
		ProgramID:   r.ProgramID,
		CarNumber:   r.CarNumber,
		Date:        bookingDate,
		StartTime:   startTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		UserID:          resp.UserID,
		ProgramID:       resp.ProgramID,
		ProgramName:     resp.ProgramName,
		DurationMinutes: resp.DurationMinutes,
		CarNumber:       resp.CarNumber,
		PhoneNumber:     resp.PhoneNumber,
		BookingDate:     resp.BookingDatetime.Format(domain.DateFormat),
		StartTime:       types.NewTimeString(resp.BookingDatetime).String(),
		Status:          resp.Status,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
	}
}

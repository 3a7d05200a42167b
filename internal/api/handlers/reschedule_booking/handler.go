package reschedule_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CarWashService/internal/api/handlers"
	"github.com/m04kA/SMC-CarWashService/internal/service/bookings"
	"github.com/m04kA/SMC-CarWashService/internal/service/bookings/models"
)

const (
	msgInvalidBookingID   = "некоректний ID запису"
	msgInvalidRequestBody = "некоректне тіло запиту"
	msgInvalidInput       = "вкажіть дату (YYYY-MM-DD), час (HH:MM) або статус"
	msgNotFound           = "запис не знайдено"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/admin/bookings/{bookingId}
// Body: {"date": "2026-10-21", "time": "14:00", "status": "scheduled"}, любое подмножество.
// Пересечения и порядок статусов не проверяются
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("PATCH /admin/bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req models.RescheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/bookings/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	booking, err := h.service.Reschedule(r.Context(), bookingID, &req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("PATCH /admin/bookings/{id} - Invalid input: booking_id=%d, %v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /admin/bookings/{id} - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("PATCH /admin/bookings/{id} - Failed to update booking: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/bookings/{id} - Booking updated: booking_id=%d", bookingID)
	handlers.RespondJSON(w, http.StatusOK, booking)
}

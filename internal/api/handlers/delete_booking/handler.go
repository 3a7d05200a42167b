package delete_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CarWashService/internal/api/handlers"
	"github.com/m04kA/SMC-CarWashService/internal/service/bookings"
)

const (
	msgInvalidBookingID = "некоректний ID запису"
	msgNotFound         = "запис не знайдено"
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

// Handle DELETE /api/v1/admin/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("DELETE /admin/bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	if err := h.service.Delete(r.Context(), bookingID); err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("DELETE /admin/bookings/{id} - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /admin/bookings/{id} - Failed to delete booking: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/bookings/{id} - Booking deleted: booking_id=%d", bookingID)
	handlers.RespondNoContent(w)
}

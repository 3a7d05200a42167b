package finish_wash

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CarWashService/internal/api/handlers"
	"github.com/m04kA/SMC-CarWashService/internal/service/bookings"
)

const (
	msgInvalidBookingID = "некоректний ID запису"
	msgNotFound         = "запис не знайдено"
	msgAlreadyFinished  = "мийку вже завершено"
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

// Handle POST /api/v1/admin/bookings/{bookingId}/finish
// завершает мойку и планирует приглашение следующему клиенту
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("POST /admin/bookings/{id}/finish - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	booking, err := h.service.Finish(r.Context(), bookingID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("POST /admin/bookings/{id}/finish - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAlreadyFinished):
			h.logger.Warn("POST /admin/bookings/{id}/finish - Already finished: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgAlreadyFinished)

		default:
			h.logger.Error("POST /admin/bookings/{id}/finish - Failed: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/bookings/{id}/finish - Done: booking_id=%d, status=%s", bookingID, booking.Status)
	handlers.RespondJSON(w, http.StatusOK, booking)
}

package list_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CarWashService/internal/api/handlers"
	"github.com/m04kA/SMC-CarWashService/internal/service/bookings"
)

const (
	msgInvalidParams = "некоректні параметри запиту"
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

// Handle GET /api/v1/admin/bookings
// Query params: date (YYYY-MM-DD), userId, car (подстрока номера). Без фильтра только незавершенные
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceReq, err := ToServiceRequest(r)
	if err != nil {
		h.logger.Warn("GET /admin/bookings - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.List(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /admin/bookings - Invalid parameters: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /admin/bookings - Failed to list bookings: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/bookings - Bookings retrieved: count=%d", len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result.Bookings)
}

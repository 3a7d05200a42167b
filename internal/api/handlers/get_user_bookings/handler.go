package get_user_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CarWashService/internal/api/handlers"
	"github.com/m04kA/SMC-CarWashService/internal/api/middleware"
	"github.com/m04kA/SMC-CarWashService/internal/service/bookings"
	"github.com/m04kA/SMC-CarWashService/internal/service/bookings/models"
)

const (
	msgInvalidUserID = "некоректний ID користувача"
	msgMissingUserID = "відсутній ID користувача"
	msgForbidden     = "доступ заборонено"
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

// Handle GET /api/v1/users/{userId}/bookings
// Незавершенные записи клиента: scheduled и in_progress
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, err := handlers.PathInt64(r, "userId")
	if err != nil {
		h.logger.Warn("GET /users/{userId}/bookings - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	requesterID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.GetUserActiveBookings(r.Context(), &models.GetUserBookingsRequest{
		UserID:      userID,
		RequesterID: requesterID,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /users/{userId}/bookings - Access denied: user_id=%d, requester_id=%d", userID, requesterID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /users/{userId}/bookings - Failed to get bookings: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /users/{userId}/bookings - Bookings retrieved: user_id=%d, count=%d",
		userID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result.Bookings)
}

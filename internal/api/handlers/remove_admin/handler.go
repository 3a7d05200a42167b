package remove_admin

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CarWashService/internal/api/handlers"
	"github.com/m04kA/SMC-CarWashService/internal/api/middleware"
	"github.com/m04kA/SMC-CarWashService/internal/service/admins"
)

const (
	msgMissingUserID = "відсутній ID користувача"
	msgInvalidUserID = "некоректний ID користувача"
	msgNotFound      = "користувач не є адміністратором"
	msgMainAdminOnly = "дія доступна лише головному адміністратору"
)

type Handler struct {
	service AdminService
	logger  Logger
}

func NewHandler(service AdminService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/admin/admins/{userId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	userID, err := handlers.PathInt64(r, "userId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	if err := h.service.Remove(r.Context(), requesterID, userID); err != nil {
		switch {
		case errors.Is(err, admins.ErrAccessDenied):
			h.logger.Warn("DELETE /admin/admins/{id} - Denied: requester_id=%d", requesterID)
			handlers.RespondForbidden(w, msgMainAdminOnly)

		case errors.Is(err, admins.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidUserID)

		case errors.Is(err, admins.ErrAdminNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /admin/admins/{id} - Failed to remove admin: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/admins/{id} - Admin removed: user_id=%d", userID)
	handlers.RespondNoContent(w)
}

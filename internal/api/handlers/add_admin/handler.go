package add_admin

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CarWashService/internal/api/handlers"
	"github.com/m04kA/SMC-CarWashService/internal/api/middleware"
	"github.com/m04kA/SMC-CarWashService/internal/service/admins"
)

const (
	msgInvalidRequestBody = "некоректне тіло запиту"
	msgMissingUserID      = "відсутній ID користувача"
	msgInvalidUserID      = "некоректний ID користувача"
	msgMainAdminOnly      = "дія доступна лише головному адміністратору"
)

// AddAdminRequest HTTP request model
type AddAdminRequest struct {
	UserID int64 `json:"userId"`
}

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

// Handle POST /api/v1/admin/admins
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req AddAdminRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/admins - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.Add(r.Context(), requesterID, req.UserID); err != nil {
		switch {
		case errors.Is(err, admins.ErrAccessDenied):
			h.logger.Warn("POST /admin/admins - Denied: requester_id=%d", requesterID)
			handlers.RespondForbidden(w, msgMainAdminOnly)

		case errors.Is(err, admins.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidUserID)

		default:
			h.logger.Error("POST /admin/admins - Failed to add admin: user_id=%d, error=%v", req.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/admins - Admin added: user_id=%d", req.UserID)
	handlers.RespondNoContent(w)
}

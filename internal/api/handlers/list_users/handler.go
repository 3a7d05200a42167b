package list_users

import (
	"net/http"

	"github.com/m04kA/SMC-CarWashService/internal/api/handlers"
)

type Handler struct {
	service UserService
	logger  Logger
}

func NewHandler(service UserService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/users
// Последние зарегистрированные клиенты, новые первыми
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/users - Failed to list users: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, users)
}

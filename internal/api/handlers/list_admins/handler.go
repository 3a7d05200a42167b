package list_admins

import (
	"net/http"

	"github.com/m04kA/SMC-CarWashService/internal/api/handlers"
)

// AdminsResponse ID администраторов, главный первым
type AdminsResponse struct {
	UserIDs []int64 `json:"userIds"`
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

// Handle GET /api/v1/admin/admins
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ids, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/admins - Failed to list admins: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, AdminsResponse{UserIDs: ids})
}

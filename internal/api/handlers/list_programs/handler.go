package list_programs

import (
	"net/http"

	"github.com/m04kA/SMC-CarWashService/internal/api/handlers"
)

type Handler struct {
	service ProgramService
	logger  Logger
}

func NewHandler(service ProgramService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/programs
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	programs, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /programs - Failed to list programs: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, programs)
}

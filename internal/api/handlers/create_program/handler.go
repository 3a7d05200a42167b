package create_program

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CarWashService/internal/api/handlers"
	"github.com/m04kA/SMC-CarWashService/internal/service/programs"
	"github.com/m04kA/SMC-CarWashService/internal/service/programs/models"
)

const (
	msgInvalidRequestBody = "некоректне тіло запиту"
	msgAlreadyExists      = "програма з такою назвою вже існує"
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

// Handle POST /api/v1/admin/programs
// Body: {"name": "Комплекс", "duration": "01:00:00", "price": 600, "description": "..."}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateProgramRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/programs - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	program, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, programs.ErrInvalidInput):
			h.logger.Warn("POST /admin/programs - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, programs.ErrProgramAlreadyExists):
			handlers.RespondConflict(w, msgAlreadyExists)

		default:
			h.logger.Error("POST /admin/programs - Failed to create program: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/programs - Program created: program_id=%d", program.ID)
	handlers.RespondJSON(w, http.StatusCreated, program)
}

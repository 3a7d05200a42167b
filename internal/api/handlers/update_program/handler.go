package update_program

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CarWashService/internal/api/handlers"
	"github.com/m04kA/SMC-CarWashService/internal/service/programs"
	"github.com/m04kA/SMC-CarWashService/internal/service/programs/models"
)

const (
	msgInvalidProgramID   = "некоректний ID програми"
	msgInvalidRequestBody = "некоректне тіло запиту"
	msgNotFound           = "програму не знайдено"
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

// Handle PATCH /api/v1/admin/programs/{programId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	programID, err := handlers.PathInt64(r, "programId")
	if err != nil {
		h.logger.Warn("PATCH /admin/programs/{id} - Invalid program ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProgramID)
		return
	}

	var req models.UpdateProgramRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/programs/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	program, err := h.service.Update(r.Context(), programID, &req)
	if err != nil {
		switch {
		case errors.Is(err, programs.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, programs.ErrProgramNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, programs.ErrProgramAlreadyExists):
			handlers.RespondConflict(w, msgAlreadyExists)

		default:
			h.logger.Error("PATCH /admin/programs/{id} - Failed to update program: program_id=%d, error=%v", programID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/programs/{id} - Program updated: program_id=%d", programID)
	handlers.RespondJSON(w, http.StatusOK, program)
}

package delete_program

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CarWashService/internal/api/handlers"
	"github.com/m04kA/SMC-CarWashService/internal/service/programs"
)

const (
	msgInvalidProgramID = "некоректний ID програми"
	msgNotFound         = "програму не знайдено"
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

// Handle DELETE /api/v1/admin/programs/{programId}
// Записи удаленной программы остаются без программы
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	programID, err := handlers.PathInt64(r, "programId")
	if err != nil {
		h.logger.Warn("DELETE /admin/programs/{id} - Invalid program ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProgramID)
		return
	}

	if err := h.service.Delete(r.Context(), programID); err != nil {
		switch {
		case errors.Is(err, programs.ErrProgramNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /admin/programs/{id} - Failed to delete program: program_id=%d, error=%v", programID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/programs/{id} - Program deleted: program_id=%d", programID)
	handlers.RespondNoContent(w)
}

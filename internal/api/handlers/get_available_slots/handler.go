package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CarWashService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-CarWashService/internal/usecase/get_available_slots"
)

const (
	msgInvalidProgramID = "некоректний ID програми"
	msgMissingDate      = "дата обов'язкова"
	msgInvalidDate      = "некоректний формат дати, очікується YYYY-MM-DD"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/programs/{programId}/available-slots
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	programID, err := handlers.PathInt64(r, "programId")
	if err != nil {
		h.logger.Warn("GET /programs/{id}/available-slots - Invalid program ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProgramID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /programs/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(programID, dateStr)
	if err != nil {
		h.logger.Warn("GET /programs/{id}/available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /programs/{id}/available-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /programs/{id}/available-slots - Failed to get slots: program_id=%d, error=%v",
				programID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /programs/{id}/available-slots - Slots retrieved: program_id=%d, date=%s, count=%d",
		programID, dateStr, len(result.Starts))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

package get_statistics

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CarWashService/internal/api/handlers"
	"github.com/m04kA/SMC-CarWashService/internal/service/statistics"
	"github.com/m04kA/SMC-CarWashService/internal/service/statistics/models"
)

const (
	msgInvalidPeriod = "некоректний період, очікується from <= to у форматі YYYY-MM-DD"
)

type Handler struct {
	service StatisticsService
	logger  Logger
}

func NewHandler(service StatisticsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/statistics
// Query params: from, to (YYYY-MM-DD, опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := &models.GetStatisticsRequest{
		From: handlers.QueryString(r, "from"),
		To:   handlers.QueryString(r, "to"),
	}

	stats, err := h.service.Get(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, statistics.ErrInvalidInput):
			h.logger.Warn("GET /admin/statistics - Invalid period: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		default:
			h.logger.Error("GET /admin/statistics - Failed to get statistics: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/statistics - %s..%s: count=%d", stats.From, stats.To, stats.TotalCount)
	handlers.RespondJSON(w, http.StatusOK, stats)
}

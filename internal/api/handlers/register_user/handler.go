package register_user

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CarWashService/internal/api/handlers"
	"github.com/m04kA/SMC-CarWashService/internal/api/middleware"
	"github.com/m04kA/SMC-CarWashService/internal/service/users"
	"github.com/m04kA/SMC-CarWashService/internal/service/users/models"
)

const (
	msgInvalidRequestBody = "некоректне тіло запиту"
	msgMissingUserID      = "відсутній ID користувача"
	msgInvalidInput       = "некоректні дані користувача"
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

// Handle POST /api/v1/users
// Регистрирует автора запроса; userId в теле игнорируется
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.RegisterRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /users - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID

	user, err := h.service.Register(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrInvalidInput):
			h.logger.Warn("POST /users - Invalid input: user_id=%d, %v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /users - Failed to register user: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /users - User registered: user_id=%d", userID)
	handlers.RespondJSON(w, http.StatusOK, user)
}

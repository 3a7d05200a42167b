package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-CarWashService/internal/api/handlers"
)

// UserIDHeader заголовок с Telegram ID пользователя, его выставляет бот
const UserIDHeader = "X-User-ID"

const (
	msgMissingUserID = "відсутній або некоректний заголовок X-User-ID"
	msgAdminOnly     = "дія доступна лише адміністраторам"
)

type userIDKey struct{}

// AdminChecker проверка прав администратора
type AdminChecker interface {
	IsAdmin(ctx context.Context, userID int64) (bool, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// WithUserID кладет ID пользователя в контекст
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// GetUserID ID пользователя, установленный Auth
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey{}).(int64)
	return userID, ok
}

// Auth требует положительный X-User-ID
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.ParseInt(r.Header.Get(UserIDHeader), 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
	})
}

// AdminOnly пропускает только администраторов. Ставится после Auth
func AdminOnly(admins AdminChecker, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := GetUserID(r.Context())
			if !ok {
				handlers.RespondUnauthorized(w, msgMissingUserID)
				return
			}

			isAdmin, err := admins.IsAdmin(r.Context(), userID)
			if err != nil {
				logger.Error("%s %s - Failed to check admin rights: user_id=%d, error=%v", r.Method, r.URL.Path, userID, err)
				handlers.RespondInternalError(w)
				return
			}
			if !isAdmin {
				logger.Warn("%s %s - Admin route denied: user_id=%d", r.Method, r.URL.Path, userID)
				handlers.RespondForbidden(w, msgAdminOnly)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

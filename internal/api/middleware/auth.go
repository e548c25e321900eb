package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/shoemant/strata-web/internal/api/handlers"
)

type ctxKey struct{}

// userIDKey ключ контекста для ID аутентифицированного пользователя
var userIDKey = ctxKey{}

// Auth проверяет наличие заголовка X-User-ID и кладет ID пользователя
// в контекст запроса. Сервис доверяет заголовку: аутентификацию выполняет
// API gateway перед ним
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userIDStr := r.Header.Get("X-User-ID")
		if userIDStr == "" {
			handlers.RespondUnauthorized(w, "отсутствует заголовок X-User-ID")
			return
		}

		userID, err := strconv.ParseInt(userIDStr, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, "некорректный заголовок X-User-ID")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID возвращает ID пользователя, положенный Auth middleware
func GetUserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/HC-RoomService/internal/api/handlers"
)

const msgMissingUserID = "отсутствует или некорректен заголовок X-User-ID"

// HeaderUserID заголовок с идентификатором авторизованного пользователя.
// Аутентификацию выполняет внешний шлюз, сервис доверяет заголовку.
const HeaderUserID = "X-User-ID"

type contextKey string

const userIDKey contextKey = "userID"

// Auth требует заголовок X-User-ID и кладёт его значение в контекст запроса
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(HeaderUserID)

		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserIDFromContext достает идентификатор пользователя из контекста.
// Второе значение false, если запрос прошел мимо Auth.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}

package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/jongque/JQ-BookingService/internal/api/handlers"
)

// userIDKey ключ контекста для ID пользователя
type userIDKey struct{}

// userIDHeader заголовок с ID авторизованного пользователя
// Аутентификацию выполняет API gateway, сюда приходит уже проверенный ID
const userIDHeader = "X-User-ID"

// Auth middleware извлекает ID пользователя из заголовка X-User-ID
// и кладет его в контекст запроса
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		headerValue := r.Header.Get(userIDHeader)
		if headerValue == "" {
			handlers.RespondUnauthorized(w, "отсутствует заголовок X-User-ID")
			return
		}

		userID, err := strconv.ParseInt(headerValue, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, "некорректный заголовок X-User-ID")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey{}, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuth middleware кладет ID пользователя в контекст, если заголовок
// X-User-ID передан и корректен, но не требует его.
// Используется на публичных маршрутах, где гость и авторизованный клиент
// обслуживаются одним handler'ом (создание и отмена бронирования)
func OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		headerValue := r.Header.Get(userIDHeader)
		if headerValue != "" {
			if userID, err := strconv.ParseInt(headerValue, 10, 64); err == nil && userID > 0 {
				r = r.WithContext(context.WithValue(r.Context(), userIDKey{}, userID))
			}
		}

		next.ServeHTTP(w, r)
	})
}

// GetUserID извлекает ID пользователя из контекста
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey{}).(int64)
	return userID, ok
}

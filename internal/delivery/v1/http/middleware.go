package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/synapse-net/go-backend/pkg/e"
)

type ctxKey string

const userIDKey ctxKey = "user_id"

// IdentityMiddleware извлекает ID вызывающего из заголовка X-User-ID.
// Аутентификация выполняется снаружи, сервис доверяет заголовку шлюза.
func IdentityMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := strings.TrimSpace(r.Header.Get("X-User-ID"))
		if userID == "" {
			WriteError(w, e.ErrMissingIdentity)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// userIDFromCtx возвращает ID вызывающего, установленный IdentityMiddleware.
func userIDFromCtx(ctx context.Context) (string, error) {
	userID, ok := ctx.Value(userIDKey).(string)
	if !ok || userID == "" {
		return "", e.ErrMissingIdentity
	}

	return userID, nil
}

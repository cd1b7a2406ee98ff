// Package middlewarectx содержит HTTP middleware для проверки токена доступа
// и ограничений на уровне маршрута.
//
// JWTMiddleware проверяет наличие и валидность токена в заголовке access-token
// и в случае успеха добавляет в контекст имя пользователя и роль для
// дальнейшего использования в обработчиках.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/andrianprakoso/movie-catalog/internal/http/response"
	"github.com/andrianprakoso/movie-catalog/internal/lib/jwt"
	"github.com/andrianprakoso/movie-catalog/internal/lib/sl"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

const (
	// User — ключ для имени пользователя в контексте
	User Key = "username"
	// Role — ключ для роли пользователя в контексте
	Role Key = "role"
)

// HeaderAccessToken — заголовок, в котором клиент передает токен.
const HeaderAccessToken = "access-token"

// JWTMiddleware возвращает HTTP middleware, который проверяет токен
// в заголовке access-token (схема Bearer).
//
// Если токен валиден, добавляет имя пользователя и роль в контекст запроса,
// иначе возвращает ошибку с HTTP статусом 401 Unauthorized.
func JWTMiddleware(tokens jwt.Maker, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.JWTMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			authHeader := r.Header.Get(HeaderAccessToken)
			if authHeader == "" {
				log.Warn("token not provided")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Err(http.StatusUnauthorized, "token not provided"))
				return
			}
			if !strings.HasPrefix(authHeader, "Bearer ") {
				log.Warn("malformed authorization header")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Err(http.StatusUnauthorized, "malformed authorization header"))
				return
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			claims, err := tokens.ParseToken(tokenStr)
			if err != nil {
				log.Warn("invalid or expired token", sl.Err(err))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Err(http.StatusUnauthorized, "invalid or expired token"))
				return
			}

			ctx := context.WithValue(r.Context(), User, claims.Username)
			ctx = context.WithValue(ctx, Role, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UsernameFromContext возвращает имя пользователя, положенное JWTMiddleware.
func UsernameFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(User).(string)
	return username, ok
}

// RoleFromContext возвращает роль, положенную JWTMiddleware.
func RoleFromContext(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(Role).(string)
	return role, ok
}

package middlewarectx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/andrianprakoso/movie-catalog/internal/http/response"
	"github.com/andrianprakoso/movie-catalog/internal/models"
)

// RequireAdmin пропускает запрос дальше только для роли admin.
// Ставится после JWTMiddleware.
func RequireAdmin(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.RequireAdmin"

			role, ok := RoleFromContext(r.Context())
			if !ok || role != models.RoleAdmin {
				log.Warn("admin access denied",
					slog.String("op", op),
					slog.String("request_id", middleware.GetReqID(r.Context())),
					slog.String("role", role),
				)
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Err(http.StatusForbidden, "Forbidden"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

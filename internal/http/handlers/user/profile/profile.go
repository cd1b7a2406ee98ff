// Package profile реализует HTTP-обработчик просмотра учетной записи.
// Чужой профиль доступен только администратору.
package profile

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/andrianprakoso/movie-catalog/internal/http/middlewarectx"
	"github.com/andrianprakoso/movie-catalog/internal/http/response"
	"github.com/andrianprakoso/movie-catalog/internal/lib/sl"
	"github.com/andrianprakoso/movie-catalog/internal/models"
	"github.com/andrianprakoso/movie-catalog/internal/services/user"
)

// Service описывает интерфейс бизнес-логики просмотра профиля.
type Service interface {
	GetProfile(ctx context.Context, target, requester, requesterRole string) (*models.UserProfile, error)
}

// Handler обрабатывает запросы на просмотр профиля.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Просмотр учетной записи
// @Description Возвращает профиль пользователя. Доступен владельцу и администратору.
// @Tags User
// @Produce json
// @Param access-token header string true "Bearer токен"
// @Param username path string true "Имя пользователя"
// @Success 200 {object} response.Response "Профиль"
// @Failure 401 {object} response.Response "Токен отсутствует или невалиден"
// @Failure 403 {object} response.Response "Чужой профиль"
// @Failure 404 {object} response.Response "Учетная запись не найдена"
// @Failure 500 {object} response.Response "Внутренняя ошибка"
// @Router /user/view/{username} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.profile"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	requester, ok := middlewarectx.UsernameFromContext(r.Context())
	if !ok || requester == "" {
		log.Error("user identification missing")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Err(http.StatusUnauthorized, "user identification missing"))
		return
	}
	role, _ := middlewarectx.RoleFromContext(r.Context())
	target := chi.URLParam(r, "username")

	profile, err := h.service.GetProfile(r.Context(), target, requester, role)
	switch {
	case errors.Is(err, user.ErrForbidden):
		log.Warn("profile access denied", slog.String("target", target), slog.String("requester", requester))
		w.WriteHeader(http.StatusForbidden)
		render.JSON(w, r, response.Err(http.StatusForbidden, "Forbidden"))
		return
	case errors.Is(err, user.ErrAccountNotFound):
		log.Warn("account not found", slog.String("username", target))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Err(http.StatusNotFound, "account not found"))
		return
	case err != nil:
		log.Error("failed to read profile", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Err(http.StatusInternalServerError, "failed to read profile"))
		return
	}

	render.JSON(w, r, response.OK(profile, "success"))
}

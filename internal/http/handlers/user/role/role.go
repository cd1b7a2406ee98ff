// Package role реализует HTTP-обработчик смены роли пользователя.
// Маршрут закрыт ролью admin на уровне middleware.
package role

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/andrianprakoso/movie-catalog/internal/http/response"
	"github.com/andrianprakoso/movie-catalog/internal/lib/sl"
	"github.com/andrianprakoso/movie-catalog/internal/services/user"
)

// Request — новая роль пользователя.
type Request struct {
	Role string `json:"role" validate:"required,oneof=user admin"`
}

// Service описывает интерфейс бизнес-логики смены роли.
type Service interface {
	UpdateRole(ctx context.Context, username, role string) error
}

// Handler обрабатывает запросы на смену роли.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Смена роли пользователя
// @Description Назначает пользователю роль user или admin. Только для администратора.
// @Tags User
// @Accept json
// @Produce json
// @Param access-token header string true "Bearer токен"
// @Param username path string true "Имя пользователя"
// @Param request body Request true "Новая роль"
// @Success 200 {object} response.Response "Роль изменена"
// @Failure 400 {object} response.Response "Недопустимая роль"
// @Failure 401 {object} response.Response "Токен отсутствует или невалиден"
// @Failure 403 {object} response.Response "Недостаточно прав"
// @Failure 404 {object} response.Response "Учетная запись не найдена"
// @Failure 500 {object} response.Response "Внутренняя ошибка"
// @Router /user/role/{username} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.role"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	username := chi.URLParam(r, "username")

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Err(http.StatusBadRequest, "invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	err := h.service.UpdateRole(r.Context(), username, req.Role)
	switch {
	case errors.Is(err, user.ErrInvalidRole):
		log.Warn("invalid role", slog.String("role", req.Role))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Err(http.StatusBadRequest, "role must be user or admin"))
		return
	case errors.Is(err, user.ErrAccountNotFound):
		log.Warn("account not found", slog.String("username", username))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Err(http.StatusNotFound, "account not found"))
		return
	case err != nil:
		log.Error("role update failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Err(http.StatusInternalServerError, "failed to update role"))
		return
	}

	log.Info("role updated", slog.String("username", username), slog.String("role", req.Role))
	render.JSON(w, r, response.OK(map[string]any{"username": username, "role": req.Role}, "role updated"))
}

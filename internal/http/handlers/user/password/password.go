// Package password реализует HTTP-обработчик смены пароля владельцем
// учетной записи. Имя пользователя берется из токена доступа.
package password

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/andrianprakoso/movie-catalog/internal/http/middlewarectx"
	"github.com/andrianprakoso/movie-catalog/internal/http/response"
	"github.com/andrianprakoso/movie-catalog/internal/lib/sl"
	"github.com/andrianprakoso/movie-catalog/internal/models"
	"github.com/andrianprakoso/movie-catalog/internal/services/user"
)

// Request — старый и новый пароли.
type Request struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

// Service описывает интерфейс бизнес-логики смены пароля.
type Service interface {
	ChangePassword(ctx context.Context, username, oldPassword, newPassword string) (*models.UserProfile, error)
}

// Handler обрабатывает запросы на смену пароля.
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
// @Summary Смена пароля
// @Description Заменяет пароль текущего пользователя после проверки старого.
// @Tags User
// @Accept json
// @Produce json
// @Param access-token header string true "Bearer токен"
// @Param request body Request true "Старый и новый пароли"
// @Success 200 {object} response.Response "Пароль изменен"
// @Failure 400 {object} response.Response "Ошибка валидации или неверный старый пароль"
// @Failure 401 {object} response.Response "Токен отсутствует или невалиден"
// @Failure 404 {object} response.Response "Учетная запись не найдена"
// @Failure 500 {object} response.Response "Внутренняя ошибка"
// @Router /user/password [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.password"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	username, ok := middlewarectx.UsernameFromContext(r.Context())
	if !ok || username == "" {
		log.Error("user identification missing")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Err(http.StatusUnauthorized, "user identification missing"))
		return
	}

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

	profile, err := h.service.ChangePassword(r.Context(), username, req.OldPassword, req.NewPassword)
	switch {
	case errors.Is(err, user.ErrAccountNotFound):
		log.Warn("account not found", slog.String("username", username))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Err(http.StatusNotFound, "account not found"))
		return
	case errors.Is(err, user.ErrInvalidCredential):
		log.Warn("old password mismatch", slog.String("username", username))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Err(http.StatusBadRequest, "old password is wrong"))
		return
	case err != nil:
		log.Error("password change failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Err(http.StatusInternalServerError, "failed to change password"))
		return
	}

	log.Info("password changed", slog.String("username", username))
	render.JSON(w, r, response.OK(profile, "password changed"))
}

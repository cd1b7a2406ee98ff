// Package reset реализует HTTP-обработчик завершения сброса пароля
// по одноразовой ссылке из письма.
package reset

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/andrianprakoso/movie-catalog/internal/http/response"
	"github.com/andrianprakoso/movie-catalog/internal/lib/sl"
	"github.com/andrianprakoso/movie-catalog/internal/services/user"
)

// Service описывает интерфейс бизнес-логики завершения сброса.
type Service interface {
	CompletePasswordReset(ctx context.Context, username, code string) error
}

// Handler обрабатывает переходы по ссылке сброса.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Завершение сброса пароля
// @Description Потребляет одноразовый код сброса, устанавливает временный пароль и отправляет его на email учетной записи.
// @Tags User
// @Produce json
// @Param username path string true "Имя пользователя"
// @Param code path string true "Одноразовый код из письма"
// @Success 200 {object} response.Response "Временный пароль отправлен"
// @Failure 400 {object} response.Response "Код невалиден или просрочен"
// @Failure 404 {object} response.Response "Учетная запись не найдена"
// @Failure 500 {object} response.Response "Письмо не доставлено или внутренняя ошибка"
// @Router /user/forgot/{username}/{code} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.reset"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	username := chi.URLParam(r, "username")
	code := chi.URLParam(r, "code")

	err := h.service.CompletePasswordReset(r.Context(), username, code)
	switch {
	case errors.Is(err, user.ErrAccountNotFound):
		log.Warn("account not found", slog.String("username", username))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Err(http.StatusNotFound, "account not found"))
		return
	case errors.Is(err, user.ErrResetCodeInvalid):
		log.Warn("reset code rejected", slog.String("username", username))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Err(http.StatusBadRequest, "reset code is invalid or expired"))
		return
	case errors.Is(err, user.ErrEmailDelivery):
		log.Error("temporary password not delivered", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Err(http.StatusInternalServerError, "failed to send temporary password"))
		return
	case err != nil:
		log.Error("reset completion failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Err(http.StatusInternalServerError, "failed to reset password"))
		return
	}

	log.Info("password reset completed", slog.String("username", username))
	render.JSON(w, r, response.OK(nil, "temporary password sent to your email"))
}

// Package verify реализует HTTP-обработчик подтверждения email по ссылке
// из письма регистрации.
package verify

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

// Service описывает интерфейс бизнес-логики подтверждения email.
type Service interface {
	VerifyEmail(ctx context.Context, username string) error
}

// Handler обрабатывает переходы по ссылке подтверждения.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Подтверждение email
// @Description Помечает email учетной записи подтвержденным. Повторное подтверждение — ошибка.
// @Tags User
// @Produce json
// @Param username path string true "Имя пользователя"
// @Success 200 {object} response.Response "Email подтвержден"
// @Failure 400 {object} response.Response "Email уже подтвержден"
// @Failure 404 {object} response.Response "Учетная запись не найдена"
// @Failure 500 {object} response.Response "Внутренняя ошибка"
// @Router /user/verify/{username} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.verify"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	username := chi.URLParam(r, "username")

	err := h.service.VerifyEmail(r.Context(), username)
	switch {
	case errors.Is(err, user.ErrAccountNotFound):
		log.Warn("account not found", slog.String("username", username))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Err(http.StatusNotFound, "account not found"))
		return
	case errors.Is(err, user.ErrAlreadyVerified):
		log.Warn("email already verified", slog.String("username", username))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Err(http.StatusBadRequest, "email is already verified"))
		return
	case err != nil:
		log.Error("verification failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Err(http.StatusInternalServerError, "failed to verify email"))
		return
	}

	log.Info("email verified", slog.String("username", username))
	render.JSON(w, r, response.OK(map[string]any{"username": username}, "email verified"))
}

// Package remove реализует HTTP-обработчик удаления учетной записи.
// Маршрут закрыт ролью admin на уровне middleware. Удаление
// безвозвратное; выпущенные токены доживают свой срок.
package remove

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

// Service описывает интерфейс бизнес-логики удаления учетной записи.
type Service interface {
	DeleteAccount(ctx context.Context, username string) error
}

// Handler обрабатывает запросы на удаление.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Удаление учетной записи
// @Description Безвозвратно удаляет учетную запись. Только для администратора.
// @Tags User
// @Produce json
// @Param access-token header string true "Bearer токен"
// @Param username path string true "Имя пользователя"
// @Success 200 {object} response.Response "Учетная запись удалена"
// @Failure 401 {object} response.Response "Токен отсутствует или невалиден"
// @Failure 403 {object} response.Response "Недостаточно прав"
// @Failure 404 {object} response.Response "Учетная запись не найдена"
// @Failure 500 {object} response.Response "Внутренняя ошибка"
// @Router /user/delete/{username} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.remove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	username := chi.URLParam(r, "username")

	err := h.service.DeleteAccount(r.Context(), username)
	switch {
	case errors.Is(err, user.ErrAccountNotFound):
		log.Warn("account not found", slog.String("username", username))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Err(http.StatusNotFound, "account not found"))
		return
	case err != nil:
		log.Error("account deletion failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Err(http.StatusInternalServerError, "failed to delete account"))
		return
	}

	log.Info("account deleted", slog.String("username", username))
	render.JSON(w, r, response.OK(map[string]any{"username": username}, "account deleted"))
}

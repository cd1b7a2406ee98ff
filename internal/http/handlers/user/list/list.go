// Package list реализует HTTP-обработчик списка всех учетных записей.
// Маршрут закрыт ролью admin на уровне middleware.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/andrianprakoso/movie-catalog/internal/http/response"
	"github.com/andrianprakoso/movie-catalog/internal/lib/sl"
	"github.com/andrianprakoso/movie-catalog/internal/models"
)

// Service описывает интерфейс бизнес-логики списка пользователей.
type Service interface {
	ListProfiles(ctx context.Context) ([]models.UserProfile, error)
}

// Handler обрабатывает запросы на список пользователей.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список всех пользователей
// @Description Возвращает профили всех учетных записей. Только для администратора.
// @Tags User
// @Produce json
// @Param access-token header string true "Bearer токен"
// @Success 200 {object} response.Response "Список профилей"
// @Failure 401 {object} response.Response "Токен отсутствует или невалиден"
// @Failure 403 {object} response.Response "Недостаточно прав"
// @Failure 500 {object} response.Response "Внутренняя ошибка"
// @Router /user/all-user [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	profiles, err := h.service.ListProfiles(r.Context())
	if err != nil {
		log.Error("failed to list users", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Err(http.StatusInternalServerError, "failed to list users"))
		return
	}

	log.Info("users listed", slog.Int("count", len(profiles)))
	render.JSON(w, r, response.OK(profiles, "success"))
}

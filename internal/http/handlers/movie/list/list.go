// Package list реализует HTTP-обработчик списка всех фильмов.
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

// Service описывает интерфейс бизнес-логики списка фильмов.
type Service interface {
	List(ctx context.Context) ([]*models.Movie, error)
}

// Handler обрабатывает запросы на полный список фильмов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список фильмов
// @Description Возвращает весь каталог фильмов.
// @Tags Movies
// @Produce json
// @Param access-token header string true "Bearer токен"
// @Success 200 {object} response.Response "Каталог"
// @Failure 401 {object} response.Response "Токен отсутствует или невалиден"
// @Failure 500 {object} response.Response "Внутренняя ошибка"
// @Router /movies [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.movie.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	movies, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list movies", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Err(http.StatusInternalServerError, "failed to list movies"))
		return
	}

	log.Info("movies listed", slog.Int("count", len(movies)))
	render.JSON(w, r, response.OK(movies, "success"))
}

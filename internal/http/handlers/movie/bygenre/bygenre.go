// Package bygenre реализует HTTP-обработчик выборки фильмов по жанру.
package bygenre

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/andrianprakoso/movie-catalog/internal/http/response"
	"github.com/andrianprakoso/movie-catalog/internal/lib/sl"
	"github.com/andrianprakoso/movie-catalog/internal/models"
)

// Service описывает интерфейс бизнес-логики выборки по жанру.
type Service interface {
	ListByGenre(ctx context.Context, genre string) ([]*models.MovieByGenre, error)
}

// Handler обрабатывает запросы на выборку по жанру.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Фильмы по жанру
// @Tags Movies
// @Produce json
// @Param access-token header string true "Bearer токен"
// @Param genre path string true "Жанр"
// @Success 200 {object} response.Response "Список пар название-жанр"
// @Failure 401 {object} response.Response "Токен отсутствует или невалиден"
// @Failure 500 {object} response.Response "Внутренняя ошибка"
// @Router /movies/genre/{genre} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.movie.bygenre"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	genre := chi.URLParam(r, "genre")

	movies, err := h.service.ListByGenre(r.Context(), genre)
	if err != nil {
		log.Error("failed to list movies by genre", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Err(http.StatusInternalServerError, "failed to list movies by genre"))
		return
	}

	log.Info("movies listed by genre", slog.String("genre", genre), slog.Int("count", len(movies)))
	render.JSON(w, r, response.OK(movies, "success"))
}

// Package read реализует HTTP-обработчик получения фильма по ID.
package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/andrianprakoso/movie-catalog/internal/http/response"
	"github.com/andrianprakoso/movie-catalog/internal/lib/sl"
	"github.com/andrianprakoso/movie-catalog/internal/models"
	"github.com/andrianprakoso/movie-catalog/internal/services/movie"
)

// Service описывает интерфейс бизнес-логики чтения фильма.
type Service interface {
	Read(ctx context.Context, id int) (*models.Movie, error)
}

// Handler обрабатывает запросы на получение фильма по идентификатору.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Получить фильм по ID
// @Tags Movies
// @Produce json
// @Param access-token header string true "Bearer токен"
// @Param id path int true "Идентификатор фильма"
// @Success 200 {object} response.Response "Фильм"
// @Failure 400 {object} response.Response "Некорректный ID"
// @Failure 401 {object} response.Response "Токен отсутствует или невалиден"
// @Failure 404 {object} response.Response "Фильм не найден"
// @Failure 500 {object} response.Response "Внутренняя ошибка"
// @Router /movies/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.movie.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Err(http.StatusBadRequest, "movie id must be a number"))
		return
	}

	m, err := h.service.Read(r.Context(), id)
	switch {
	case errors.Is(err, movie.ErrMovieNotFound):
		log.Warn("movie not found", slog.Int("id", id))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Err(http.StatusNotFound, "movie not found"))
		return
	case err != nil:
		log.Error("failed to read movie", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Err(http.StatusInternalServerError, "failed to read movie"))
		return
	}

	render.JSON(w, r, response.OK(m, "success"))
}

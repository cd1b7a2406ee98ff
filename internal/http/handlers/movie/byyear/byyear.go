// Package byyear реализует HTTP-обработчик выборки фильмов по году.
//
// Последний сегмент пути задает направление: before — не позже года,
// after — не раньше, обе границы включительно.
package byyear

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/andrianprakoso/movie-catalog/internal/http/response"
	"github.com/andrianprakoso/movie-catalog/internal/lib/sl"
	"github.com/andrianprakoso/movie-catalog/internal/models"
)

// Service описывает интерфейс бизнес-логики выборки по году.
type Service interface {
	ListByYear(ctx context.Context, year int, before bool) ([]*models.MovieByYear, error)
}

// Handler обрабатывает запросы на выборку по году.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Фильмы по году
// @Description Возвращает фильмы не позже (before) либо не раньше (after) указанного года включительно.
// @Tags Movies
// @Produce json
// @Param access-token header string true "Bearer токен"
// @Param year path int true "Год"
// @Param beforeafter path string true "before или after"
// @Success 200 {object} response.Response "Список пар название-год"
// @Failure 400 {object} response.Response "Некорректный год или направление"
// @Failure 401 {object} response.Response "Токен отсутствует или невалиден"
// @Failure 500 {object} response.Response "Внутренняя ошибка"
// @Router /movies/year/{year}/{beforeafter} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.movie.byyear"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		log.Error("failed to decode year from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Err(http.StatusBadRequest, "year must be a number"))
		return
	}

	direction := chi.URLParam(r, "beforeafter")
	if direction != "before" && direction != "after" {
		log.Warn("invalid direction", slog.String("direction", direction))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Err(http.StatusBadRequest, "direction must be before or after"))
		return
	}

	movies, err := h.service.ListByYear(r.Context(), year, direction == "before")
	if err != nil {
		log.Error("failed to list movies by year", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Err(http.StatusInternalServerError, "failed to list movies by year"))
		return
	}

	log.Info("movies listed by year", slog.Int("year", year), slog.String("direction", direction))
	render.JSON(w, r, response.OK(movies, "success"))
}

// Package update реализует HTTP-обработчик изменения фильма.
//
// Как и при создании, запрос приходит multipart/form-data; новый файл
// постера заменяет прежний в объектном хранилище.
package update

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/andrianprakoso/movie-catalog/internal/http/response"
	"github.com/andrianprakoso/movie-catalog/internal/lib/sl"
	"github.com/andrianprakoso/movie-catalog/internal/models"
	"github.com/andrianprakoso/movie-catalog/internal/services/movie"
)

const maxUploadSize = 10 << 20

// Request — текстовые поля формы изменения фильма.
type Request struct {
	Title string `validate:"required"`
	Year  string `validate:"required,numeric"`
	Genre string `validate:"required"`
}

// Service описывает интерфейс бизнес-логики изменения фильма.
type Service interface {
	Update(ctx context.Context, movie models.Movie, poster io.Reader, contentType string) (*models.Movie, error)
}

// Handler обрабатывает запросы на изменение фильма.
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
// @Summary Изменить фильм
// @Tags Movies
// @Accept mpfd
// @Produce json
// @Param access-token header string true "Bearer токен"
// @Param id path int true "Идентификатор фильма"
// @Param title formData string true "Название"
// @Param year formData int true "Год выпуска"
// @Param genre formData string true "Жанр"
// @Param poster formData file false "Новый файл постера"
// @Success 200 {object} response.Response "Фильм изменен"
// @Failure 400 {object} response.Response "Ошибка валидации"
// @Failure 401 {object} response.Response "Токен отсутствует или невалиден"
// @Failure 404 {object} response.Response "Фильм не найден"
// @Failure 500 {object} response.Response "Внутренняя ошибка"
// @Router /movies/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.movie.update"

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

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		log.Error("failed to parse multipart form", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Err(http.StatusBadRequest, "invalid multipart form"))
		return
	}

	req := Request{
		Title: r.FormValue("title"),
		Year:  r.FormValue("year"),
		Genre: r.FormValue("genre"),
	}
	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	year, _ := strconv.Atoi(req.Year)

	poster, contentType, err := posterFile(r)
	if err != nil {
		log.Error("failed to read poster file", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Err(http.StatusBadRequest, "invalid poster file"))
		return
	}
	if poster != nil {
		defer poster.Close()
	}

	updated, err := h.service.Update(r.Context(), models.Movie{
		ID:    id,
		Title: req.Title,
		Year:  year,
		Genre: req.Genre,
	}, readerOrNil(poster), contentType)
	switch {
	case errors.Is(err, movie.ErrMovieNotFound):
		log.Warn("movie not found", slog.Int("id", id))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Err(http.StatusNotFound, "movie not found"))
		return
	case err != nil:
		log.Error("failed to update movie", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Err(http.StatusInternalServerError, "failed to update movie"))
		return
	}

	log.Info("movie updated", slog.Int("id", id))
	render.JSON(w, r, response.OK(updated, "movie updated"))
}

func posterFile(r *http.Request) (multipart.File, string, error) {
	file, header, err := r.FormFile("poster")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", err
	}
	return file, header.Header.Get("Content-Type"), nil
}

func readerOrNil(f multipart.File) io.Reader {
	if f == nil {
		return nil
	}
	return f
}

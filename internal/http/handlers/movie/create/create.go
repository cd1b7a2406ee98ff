// Package create реализует HTTP-обработчик добавления фильма.
//
// Запрос приходит как multipart/form-data: текстовые поля фильма плюс
// необязательный файл постера, который уходит в объектное хранилище.
package create

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/andrianprakoso/movie-catalog/internal/http/response"
	"github.com/andrianprakoso/movie-catalog/internal/lib/sl"
	"github.com/andrianprakoso/movie-catalog/internal/models"
)

const maxUploadSize = 10 << 20

// Request — текстовые поля формы добавления фильма.
type Request struct {
	Title string `validate:"required"`
	Year  string `validate:"required,numeric"`
	Genre string `validate:"required"`
}

// Service описывает интерфейс бизнес-логики добавления фильма.
type Service interface {
	Create(ctx context.Context, movie models.Movie, poster io.Reader, contentType string) (*models.Movie, error)
}

// Handler обрабатывает запросы на добавление фильма.
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
// @Summary Добавить фильм
// @Description Сохраняет фильм; постер из поля формы poster загружается в объектное хранилище.
// @Tags Movies
// @Accept mpfd
// @Produce json
// @Param access-token header string true "Bearer токен"
// @Param title formData string true "Название"
// @Param year formData int true "Год выпуска"
// @Param genre formData string true "Жанр"
// @Param poster formData file false "Файл постера"
// @Success 200 {object} response.Response "Фильм добавлен"
// @Failure 400 {object} response.Response "Ошибка валидации"
// @Failure 401 {object} response.Response "Токен отсутствует или невалиден"
// @Failure 500 {object} response.Response "Внутренняя ошибка"
// @Router /movies [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.movie.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

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

	created, err := h.service.Create(r.Context(), models.Movie{
		Title: req.Title,
		Year:  year,
		Genre: req.Genre,
	}, readerOrNil(poster), contentType)
	if err != nil {
		log.Error("failed to create movie", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Err(http.StatusInternalServerError, "failed to create movie"))
		return
	}

	log.Info("movie created", slog.Int("id", created.ID))
	render.JSON(w, r, response.OK(created, "movie created"))
}

// posterFile достает необязательный файл poster из формы.
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

// readerOrNil защищает от типизированного nil в интерфейсе io.Reader.
func readerOrNil(f multipart.File) io.Reader {
	if f == nil {
		return nil
	}
	return f
}

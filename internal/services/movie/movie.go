// Package movie содержит бизнес-логику каталога фильмов: CRUD, выборки
// по жанру и году, загрузка постеров в объектное хранилище и кэширование
// полного списка.
package movie

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/andrianprakoso/movie-catalog/internal/lib/sl"
	"github.com/andrianprakoso/movie-catalog/internal/models"
	"github.com/andrianprakoso/movie-catalog/internal/storage"
)

// ErrMovieNotFound фильм не найден.
var ErrMovieNotFound = errors.New("movie not found")

const (
	listCacheKey = "movies:all"
	listCacheTTL = 5 * time.Minute
)

// Repository описывает контракт хранилища фильмов.
type Repository interface {
	CreateMovie(ctx context.Context, movie models.Movie) (int, error)
	ReadMovie(ctx context.Context, id int) (*models.Movie, error)
	ListMovies(ctx context.Context) ([]*models.Movie, error)
	ListMoviesByGenre(ctx context.Context, genre string) ([]*models.MovieByGenre, error)
	ListMoviesByYear(ctx context.Context, year int, before bool) ([]*models.MovieByYear, error)
	UpdateMovie(ctx context.Context, movie models.Movie) (int, error)
	RemoveMovie(ctx context.Context, id int) (int, error)
}

// PosterStore описывает контракт объектного хранилища постеров.
type PosterStore interface {
	UploadPoster(ctx context.Context, body io.Reader, contentType string) (key, url string, err error)
	DeletePoster(ctx context.Context, key string) error
}

// ListCache кэширует полный список фильмов.
type ListCache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// Service реализует операции каталога.
type Service struct {
	repo    Repository
	posters PosterStore
	cache   ListCache
	log     *slog.Logger
}

// New создает новый Service.
func New(repo Repository, posters PosterStore, cache ListCache, log *slog.Logger) *Service {
	return &Service{repo: repo, posters: posters, cache: cache, log: log}
}

// Create сохраняет фильм. Если передан poster, файл сначала загружается
// в объектное хранилище, а в запись попадает его URL и ключ.
func (s *Service) Create(ctx context.Context, movie models.Movie, poster io.Reader, contentType string) (*models.Movie, error) {
	const op = "movie.Create"
	log := s.log.With(slog.String("op", op), slog.String("title", movie.Title))

	if poster != nil {
		key, url, err := s.posters.UploadPoster(ctx, poster, contentType)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		movie.Poster = url
		movie.PosterID = key
	}

	id, err := s.repo.CreateMovie(ctx, movie)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	movie.ID = id

	s.dropListCache()
	log.Info("movie created", slog.Int("id", id))
	return &movie, nil
}

// Read возвращает фильм по идентификатору.
func (s *Service) Read(ctx context.Context, id int) (*models.Movie, error) {
	const op = "movie.Read"

	m, err := s.repo.ReadMovie(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrMovieNotFound) {
			return nil, ErrMovieNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return m, nil
}

// List возвращает весь каталог. Список кэшируется на listCacheTTL,
// запись в каталог сбрасывает кэш.
func (s *Service) List(ctx context.Context) ([]*models.Movie, error) {
	const op = "movie.List"

	var cached []*models.Movie
	found, err := s.cache.Get(listCacheKey, &cached)
	if err != nil {
		s.log.Warn("cache read failed", sl.Err(err))
	}
	if found {
		return cached, nil
	}

	movies, err := s.repo.ListMovies(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.cache.Set(listCacheKey, movies, listCacheTTL); err != nil {
		s.log.Warn("cache write failed", sl.Err(err))
	}
	return movies, nil
}

// ListByGenre возвращает пары (название, жанр) для заданного жанра.
func (s *Service) ListByGenre(ctx context.Context, genre string) ([]*models.MovieByGenre, error) {
	const op = "movie.ListByGenre"

	movies, err := s.repo.ListMoviesByGenre(ctx, genre)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return movies, nil
}

// ListByYear возвращает фильмы не позже (before=true) либо не раньше
// заданного года, включительно.
func (s *Service) ListByYear(ctx context.Context, year int, before bool) ([]*models.MovieByYear, error) {
	const op = "movie.ListByYear"

	movies, err := s.repo.ListMoviesByYear(ctx, year, before)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return movies, nil
}

// Update перезаписывает фильм по идентификатору. Новый poster заменяет
// прежний файл в объектном хранилище.
func (s *Service) Update(ctx context.Context, movie models.Movie, poster io.Reader, contentType string) (*models.Movie, error) {
	const op = "movie.Update"
	log := s.log.With(slog.String("op", op), slog.Int("id", movie.ID))

	existing, err := s.repo.ReadMovie(ctx, movie.ID)
	if err != nil {
		if errors.Is(err, storage.ErrMovieNotFound) {
			return nil, ErrMovieNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	movie.Poster = existing.Poster
	movie.PosterID = existing.PosterID
	if poster != nil {
		key, url, err := s.posters.UploadPoster(ctx, poster, contentType)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if existing.PosterID != "" {
			if err := s.posters.DeletePoster(ctx, existing.PosterID); err != nil {
				log.Warn("failed to delete old poster", sl.Err(err))
			}
		}
		movie.Poster = url
		movie.PosterID = key
	}

	affected, err := s.repo.UpdateMovie(ctx, movie)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return nil, ErrMovieNotFound
	}

	s.dropListCache()
	log.Info("movie updated")
	return &movie, nil
}

// Remove удаляет фильм вместе с его постером.
func (s *Service) Remove(ctx context.Context, id int) error {
	const op = "movie.Remove"
	log := s.log.With(slog.String("op", op), slog.Int("id", id))

	existing, err := s.repo.ReadMovie(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrMovieNotFound) {
			return ErrMovieNotFound
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	affected, err := s.repo.RemoveMovie(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return ErrMovieNotFound
	}

	if existing.PosterID != "" {
		if err := s.posters.DeletePoster(ctx, existing.PosterID); err != nil {
			log.Warn("failed to delete poster", sl.Err(err))
		}
	}

	s.dropListCache()
	log.Info("movie removed")
	return nil
}

func (s *Service) dropListCache() {
	if err := s.cache.Invalidate(listCacheKey); err != nil {
		s.log.Warn("cache invalidation failed", sl.Err(err))
	}
}

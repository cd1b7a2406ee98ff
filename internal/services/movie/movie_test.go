package movie

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/andrianprakoso/movie-catalog/internal/models"
	"github.com/andrianprakoso/movie-catalog/internal/storage"
)

type mockRepo struct{ mock.Mock }

func (m *mockRepo) CreateMovie(ctx context.Context, movie models.Movie) (int, error) {
	args := m.Called(ctx, movie)
	return args.Int(0), args.Error(1)
}

func (m *mockRepo) ReadMovie(ctx context.Context, id int) (*models.Movie, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*models.Movie), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) ListMovies(ctx context.Context) ([]*models.Movie, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]*models.Movie), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) ListMoviesByGenre(ctx context.Context, genre string) ([]*models.MovieByGenre, error) {
	args := m.Called(ctx, genre)
	if v := args.Get(0); v != nil {
		return v.([]*models.MovieByGenre), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) ListMoviesByYear(ctx context.Context, year int, before bool) ([]*models.MovieByYear, error) {
	args := m.Called(ctx, year, before)
	if v := args.Get(0); v != nil {
		return v.([]*models.MovieByYear), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) UpdateMovie(ctx context.Context, movie models.Movie) (int, error) {
	args := m.Called(ctx, movie)
	return args.Int(0), args.Error(1)
}

func (m *mockRepo) RemoveMovie(ctx context.Context, id int) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

type mockPosters struct{ mock.Mock }

func (m *mockPosters) UploadPoster(ctx context.Context, body io.Reader, contentType string) (string, string, error) {
	args := m.Called(ctx, body, contentType)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *mockPosters) DeletePoster(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

type mockCache struct{ mock.Mock }

func (m *mockCache) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}

func (m *mockCache) Set(key string, value any, expiration time.Duration) error {
	return m.Called(key, value, expiration).Error(0)
}

func (m *mockCache) Invalidate(key string) error {
	return m.Called(key).Error(0)
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }

func newService(repo *mockRepo, posters *mockPosters, cache *mockCache) *Service {
	log := slog.New(slog.NewTextHandler(discardWriter{}, nil))
	return New(repo, posters, cache, log)
}

func TestCreate(t *testing.T) {
	t.Run("with poster", func(t *testing.T) {
		repo := new(mockRepo)
		posters := new(mockPosters)
		cache := new(mockCache)
		svc := newService(repo, posters, cache)

		body := strings.NewReader("png-bytes")
		posters.On("UploadPoster", mock.Anything, body, "image/png").
			Return("posters/abc", "https://cdn.example.com/posters/abc", nil)
		repo.On("CreateMovie", mock.Anything, mock.MatchedBy(func(m models.Movie) bool {
			return m.Title == "Heat" && m.PosterID == "posters/abc"
		})).Return(7, nil)
		cache.On("Invalidate", listCacheKey).Return(nil)

		created, err := svc.Create(context.Background(), models.Movie{Title: "Heat", Year: 1995, Genre: "crime"}, body, "image/png")
		require.NoError(t, err)
		assert.Equal(t, 7, created.ID)
		assert.Equal(t, "https://cdn.example.com/posters/abc", created.Poster)
		repo.AssertExpectations(t)
		posters.AssertExpectations(t)
	})

	t.Run("without poster", func(t *testing.T) {
		repo := new(mockRepo)
		posters := new(mockPosters)
		cache := new(mockCache)
		svc := newService(repo, posters, cache)

		repo.On("CreateMovie", mock.Anything, mock.Anything).Return(3, nil)
		cache.On("Invalidate", listCacheKey).Return(nil)

		created, err := svc.Create(context.Background(), models.Movie{Title: "Heat", Year: 1995, Genre: "crime"}, nil, "")
		require.NoError(t, err)
		assert.Equal(t, 3, created.ID)
		posters.AssertNotCalled(t, "UploadPoster", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestRead(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo := new(mockRepo)
		svc := newService(repo, new(mockPosters), new(mockCache))

		repo.On("ReadMovie", mock.Anything, 7).
			Return(&models.Movie{ID: 7, Title: "Heat"}, nil)

		m, err := svc.Read(context.Background(), 7)
		require.NoError(t, err)
		assert.Equal(t, "Heat", m.Title)
	})

	t.Run("not found", func(t *testing.T) {
		repo := new(mockRepo)
		svc := newService(repo, new(mockPosters), new(mockCache))

		repo.On("ReadMovie", mock.Anything, 404).Return(nil, storage.ErrMovieNotFound)

		_, err := svc.Read(context.Background(), 404)
		assert.ErrorIs(t, err, ErrMovieNotFound)
	})
}

func TestList(t *testing.T) {
	movies := []*models.Movie{{ID: 1, Title: "Heat"}, {ID: 2, Title: "Alien"}}

	t.Run("cache miss populates cache", func(t *testing.T) {
		repo := new(mockRepo)
		cache := new(mockCache)
		svc := newService(repo, new(mockPosters), cache)

		cache.On("Get", listCacheKey, mock.Anything).Return(false, nil)
		repo.On("ListMovies", mock.Anything).Return(movies, nil)
		cache.On("Set", listCacheKey, movies, listCacheTTL).Return(nil)

		got, err := svc.List(context.Background())
		require.NoError(t, err)
		assert.Len(t, got, 2)
		cache.AssertExpectations(t)
	})

	t.Run("cache hit skips repository", func(t *testing.T) {
		repo := new(mockRepo)
		cache := new(mockCache)
		svc := newService(repo, new(mockPosters), cache)

		cache.On("Get", listCacheKey, mock.Anything).Run(func(args mock.Arguments) {
			out := args.Get(1).(*[]*models.Movie)
			*out = movies
		}).Return(true, nil)

		got, err := svc.List(context.Background())
		require.NoError(t, err)
		assert.Len(t, got, 2)
		repo.AssertNotCalled(t, "ListMovies", mock.Anything)
	})
}

func TestListByYear(t *testing.T) {
	repo := new(mockRepo)
	svc := newService(repo, new(mockPosters), new(mockCache))

	repo.On("ListMoviesByYear", mock.Anything, 2000, true).
		Return([]*models.MovieByYear{{Title: "Heat", Year: 1995}}, nil)

	got, err := svc.ListByYear(context.Background(), 2000, true)
	require.NoError(t, err)
	assert.Equal(t, 1995, got[0].Year)
	repo.AssertExpectations(t)
}

func TestUpdate(t *testing.T) {
	existing := &models.Movie{ID: 7, Title: "Heat", Poster: "old-url", PosterID: "posters/old"}

	t.Run("replaces poster", func(t *testing.T) {
		repo := new(mockRepo)
		posters := new(mockPosters)
		cache := new(mockCache)
		svc := newService(repo, posters, cache)

		body := strings.NewReader("new-png")
		repo.On("ReadMovie", mock.Anything, 7).Return(existing, nil)
		posters.On("UploadPoster", mock.Anything, body, "image/png").
			Return("posters/new", "new-url", nil)
		posters.On("DeletePoster", mock.Anything, "posters/old").Return(nil)
		repo.On("UpdateMovie", mock.Anything, mock.MatchedBy(func(m models.Movie) bool {
			return m.PosterID == "posters/new"
		})).Return(1, nil)
		cache.On("Invalidate", listCacheKey).Return(nil)

		updated, err := svc.Update(context.Background(), models.Movie{ID: 7, Title: "Heat", Year: 1995, Genre: "crime"}, body, "image/png")
		require.NoError(t, err)
		assert.Equal(t, "new-url", updated.Poster)
		posters.AssertExpectations(t)
	})

	t.Run("keeps poster when no file sent", func(t *testing.T) {
		repo := new(mockRepo)
		posters := new(mockPosters)
		cache := new(mockCache)
		svc := newService(repo, posters, cache)

		repo.On("ReadMovie", mock.Anything, 7).Return(existing, nil)
		repo.On("UpdateMovie", mock.Anything, mock.MatchedBy(func(m models.Movie) bool {
			return m.PosterID == "posters/old"
		})).Return(1, nil)
		cache.On("Invalidate", listCacheKey).Return(nil)

		updated, err := svc.Update(context.Background(), models.Movie{ID: 7, Title: "Heat", Year: 1995, Genre: "crime"}, nil, "")
		require.NoError(t, err)
		assert.Equal(t, "old-url", updated.Poster)
	})

	t.Run("not found", func(t *testing.T) {
		repo := new(mockRepo)
		svc := newService(repo, new(mockPosters), new(mockCache))

		repo.On("ReadMovie", mock.Anything, 404).Return(nil, storage.ErrMovieNotFound)

		_, err := svc.Update(context.Background(), models.Movie{ID: 404}, nil, "")
		assert.ErrorIs(t, err, ErrMovieNotFound)
	})
}

func TestRemove(t *testing.T) {
	t.Run("success deletes poster", func(t *testing.T) {
		repo := new(mockRepo)
		posters := new(mockPosters)
		cache := new(mockCache)
		svc := newService(repo, posters, cache)

		repo.On("ReadMovie", mock.Anything, 7).
			Return(&models.Movie{ID: 7, PosterID: "posters/abc"}, nil)
		repo.On("RemoveMovie", mock.Anything, 7).Return(1, nil)
		posters.On("DeletePoster", mock.Anything, "posters/abc").Return(nil)
		cache.On("Invalidate", listCacheKey).Return(nil)

		assert.NoError(t, svc.Remove(context.Background(), 7))
		posters.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		repo := new(mockRepo)
		svc := newService(repo, new(mockPosters), new(mockCache))

		repo.On("ReadMovie", mock.Anything, 404).Return(nil, storage.ErrMovieNotFound)

		assert.ErrorIs(t, svc.Remove(context.Background(), 404), ErrMovieNotFound)
	})
}

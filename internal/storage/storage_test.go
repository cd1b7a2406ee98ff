package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/andrianprakoso/movie-catalog/internal/migrations"
	"github.com/andrianprakoso/movie-catalog/internal/models"
)

func setupStorage(t *testing.T) *Storage {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx)
	require.NoError(t, err)

	st, err := New(dsn)
	require.NoError(t, err)

	migrationsPath, err := filepath.Abs("../../migrations")
	require.NoError(t, err)
	require.NoError(t, migrations.Run(st.DB, migrationsPath))

	t.Cleanup(func() {
		st.Close()
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	return st
}

func TestUserLifecycle(t *testing.T) {
	st := setupStorage(t)
	ctx := context.Background()

	alice := models.User{
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "hash-1",
		Role:         models.RoleUser,
	}
	require.NoError(t, st.CreateUser(ctx, alice))

	t.Run("duplicate username rejected by constraint", func(t *testing.T) {
		dup := alice
		dup.Email = "other@example.com"
		assert.ErrorIs(t, st.CreateUser(ctx, dup), ErrUserExists)
	})

	t.Run("duplicate email rejected by constraint", func(t *testing.T) {
		dup := alice
		dup.Username = "alice2"
		assert.ErrorIs(t, st.CreateUser(ctx, dup), ErrUserExists)
	})

	t.Run("get by username", func(t *testing.T) {
		got, err := st.GetUserByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", got.Email)
		assert.False(t, got.Verified)
	})

	t.Run("get by email", func(t *testing.T) {
		got, err := st.GetUserByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, "alice", got.Username)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := st.GetUserByUsername(ctx, "ghost")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("set verified", func(t *testing.T) {
		require.NoError(t, st.SetVerified(ctx, "alice"))
		got, err := st.GetUserByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.True(t, got.Verified)
	})

	t.Run("update password", func(t *testing.T) {
		require.NoError(t, st.UpdatePassword(ctx, "alice", "hash-2"))
		got, err := st.GetUserByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, "hash-2", got.PasswordHash)
	})

	t.Run("update role", func(t *testing.T) {
		require.NoError(t, st.UpdateRole(ctx, "alice", models.RoleAdmin))
		got, err := st.GetUserByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, models.RoleAdmin, got.Role)
	})

	t.Run("update role of unknown user", func(t *testing.T) {
		assert.ErrorIs(t, st.UpdateRole(ctx, "ghost", models.RoleUser), ErrUserNotFound)
	})

	t.Run("list users", func(t *testing.T) {
		users, err := st.ListUsers(ctx)
		require.NoError(t, err)
		// admin из миграции плюс alice
		assert.GreaterOrEqual(t, len(users), 2)
	})

	t.Run("delete user", func(t *testing.T) {
		require.NoError(t, st.DeleteUser(ctx, "alice"))
		_, err := st.GetUserByUsername(ctx, "alice")
		assert.ErrorIs(t, err, ErrUserNotFound)
		assert.ErrorIs(t, st.DeleteUser(ctx, "alice"), ErrUserNotFound)
	})
}

func TestMovieLifecycle(t *testing.T) {
	st := setupStorage(t)
	ctx := context.Background()

	heat := models.Movie{Title: "Heat", Year: 1995, Genre: "crime", Poster: "url-1", PosterID: "posters/1"}
	alien := models.Movie{Title: "Alien", Year: 1979, Genre: "sci-fi"}

	heatID, err := st.CreateMovie(ctx, heat)
	require.NoError(t, err)
	alienID, err := st.CreateMovie(ctx, alien)
	require.NoError(t, err)
	require.NotEqual(t, heatID, alienID)

	t.Run("read", func(t *testing.T) {
		got, err := st.ReadMovie(ctx, heatID)
		require.NoError(t, err)
		assert.Equal(t, "Heat", got.Title)
		assert.Equal(t, "posters/1", got.PosterID)
	})

	t.Run("read unknown", func(t *testing.T) {
		_, err := st.ReadMovie(ctx, 999999)
		assert.ErrorIs(t, err, ErrMovieNotFound)
	})

	t.Run("list", func(t *testing.T) {
		movies, err := st.ListMovies(ctx)
		require.NoError(t, err)
		assert.Len(t, movies, 2)
	})

	t.Run("list by genre", func(t *testing.T) {
		movies, err := st.ListMoviesByGenre(ctx, "crime")
		require.NoError(t, err)
		require.Len(t, movies, 1)
		assert.Equal(t, "Heat", movies[0].Title)
	})

	t.Run("list by genre ignores case", func(t *testing.T) {
		movies, err := st.ListMoviesByGenre(ctx, "Crime")
		require.NoError(t, err)
		require.Len(t, movies, 1)
		assert.Equal(t, "Heat", movies[0].Title)
	})

	t.Run("list by year before inclusive", func(t *testing.T) {
		movies, err := st.ListMoviesByYear(ctx, 1979, true)
		require.NoError(t, err)
		require.Len(t, movies, 1)
		assert.Equal(t, "Alien", movies[0].Title)
	})

	t.Run("list by year after inclusive", func(t *testing.T) {
		movies, err := st.ListMoviesByYear(ctx, 1979, false)
		require.NoError(t, err)
		assert.Len(t, movies, 2)
	})

	t.Run("update", func(t *testing.T) {
		affected, err := st.UpdateMovie(ctx, models.Movie{ID: heatID, Title: "Heat", Year: 1995, Genre: "thriller", Poster: "url-1", PosterID: "posters/1"})
		require.NoError(t, err)
		assert.Equal(t, 1, affected)

		got, err := st.ReadMovie(ctx, heatID)
		require.NoError(t, err)
		assert.Equal(t, "thriller", got.Genre)
	})

	t.Run("remove", func(t *testing.T) {
		affected, err := st.RemoveMovie(ctx, alienID)
		require.NoError(t, err)
		assert.Equal(t, 1, affected)

		affected, err = st.RemoveMovie(ctx, alienID)
		require.NoError(t, err)
		assert.Equal(t, 0, affected)
	})
}

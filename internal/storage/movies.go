package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/andrianprakoso/movie-catalog/internal/models"
)

// CreateMovie вставляет новый фильм и возвращает его ID.
func (s *Storage) CreateMovie(ctx context.Context, movie models.Movie) (int, error) {
	const op = "storage.CreateMovie"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO movies (title, year, genre, poster, poster_id)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		movie.Title, movie.Year, movie.Genre, movie.Poster, movie.PosterID).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ReadMovie возвращает данные фильма по его ID.
func (s *Storage) ReadMovie(ctx context.Context, id int) (*models.Movie, error) {
	const op = "storage.ReadMovie"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, year, genre, poster, poster_id
			  FROM movies WHERE id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)

	var result models.Movie
	if err := row.Scan(&result.ID, &result.Title, &result.Year, &result.Genre,
		&result.Poster, &result.PosterID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrMovieNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// ListMovies возвращает список всех фильмов каталога.
func (s *Storage) ListMovies(ctx context.Context) ([]*models.Movie, error) {
	const op = "storage.ListMovies"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, year, genre, poster, poster_id
			  FROM movies
			  ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Movie
	for rows.Next() {
		var item models.Movie
		if err := rows.Scan(&item.ID, &item.Title, &item.Year, &item.Genre,
			&item.Poster, &item.PosterID); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListMoviesByGenre возвращает проекции (title, genre) фильмов заданного жанра.
// Жанр сравнивается без учета регистра.
func (s *Storage) ListMoviesByGenre(ctx context.Context, genre string) ([]*models.MovieByGenre, error) {
	const op = "storage.ListMoviesByGenre"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT title, genre
			  FROM movies
			  WHERE LOWER(genre) = LOWER($1)
			  ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query, genre)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.MovieByGenre
	for rows.Next() {
		var item models.MovieByGenre
		if err := rows.Scan(&item.Title, &item.Genre); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListMoviesByYear возвращает проекции (title, year) фильмов не позже
// (before=true) либо не раньше (before=false) заданного года.
func (s *Storage) ListMoviesByYear(ctx context.Context, year int, before bool) ([]*models.MovieByYear, error) {
	const op = "storage.ListMoviesByYear"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT title, year
			  FROM movies
			  WHERE year >= $1
			  ORDER BY id`
	if before {
		query = `SELECT title, year
			  FROM movies
			  WHERE year <= $1
			  ORDER BY id`
	}
	rows, err := s.DB.QueryContext(ctx, query, year)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.MovieByYear
	for rows.Next() {
		var item models.MovieByYear
		if err := rows.Scan(&item.Title, &item.Year); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateMovie обновляет данные фильма и возвращает количество измененных строк.
func (s *Storage) UpdateMovie(ctx context.Context, movie models.Movie) (int, error) {
	const op = "storage.UpdateMovie"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE movies
			  SET title = $1, year = $2, genre = $3, poster = $4, poster_id = $5
			  WHERE id = $6`
	result, err := s.DB.ExecContext(ctx, query, movie.Title, movie.Year, movie.Genre, movie.Poster, movie.PosterID, movie.ID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemoveMovie удаляет фильм по ID и возвращает количество удаленных строк.
func (s *Storage) RemoveMovie(ctx context.Context, id int) (int, error) {
	const op = "storage.RemoveMovie"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM movies WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// Package storage реализует хранилище данных на основе PostgreSQL
// для управления учетными записями и фильмами каталога. Уникальность
// username и email обеспечивается ограничениями на уровне базы: проверки
// в коде оркестрации носят только консультативный характер.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

var (
	// ErrUserNotFound учетная запись не найдена.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserExists нарушена уникальность username или email.
	ErrUserExists = errors.New("user already exists")
	// ErrMovieNotFound фильм не найден.
	ErrMovieNotFound = errors.New("movie not found")
)

// Storage инкапсулирует соединение с базой данных PostgreSQL
// и реализует методы работы с пользователями и фильмами.
type Storage struct {
	DB *sql.DB
}

// New создает подключение к PostgreSQL и проверяет его доступность.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// Close закрывает пул соединений.
func (s *Storage) Close() error {
	return s.DB.Close()
}

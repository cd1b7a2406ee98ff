// Package models содержит доменные модели сервиса: учетную запись
// пользователя и фильм каталога. Структуры используются в бизнес-логике
// и при работе с хранилищем.
package models

import "time"

// Роли учетных записей. Других значений в системе не существует.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User представляет зарегистрированного пользователя каталога.
//
// Username уникален и неизменяем, служит первичным ключом.
// Email также уникален. Пароль хранится только в виде bcrypt-хэша.
type User struct {
	Username     string    // Имя пользователя (первичный ключ)
	Email        string    // Электронная почта (уникальная)
	PasswordHash string    // bcrypt-хэш пароля
	Role         string    // Роль пользователя: admin или user
	Verified     bool      // Подтвержден ли email
	CreatedAt    time.Time // Дата регистрации
}

// UserProfile — проекция User без секретных полей, отдается наружу.
type UserProfile struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Verified bool   `json:"verified"`
}

// Profile возвращает несекретную проекцию учетной записи.
func (u *User) Profile() UserProfile {
	return UserProfile{
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
		Verified: u.Verified,
	}
}

// Package jwt реализует выпуск и проверку JWT токенов доступа.
//
// Токен несет имя пользователя и его роль; подписывается секретом сервера
// алгоритмом HS256 и живет ограниченное время (по умолчанию 2 часа).
// Проверка полностью stateless: списка отзыва нет, выпущенный токен
// остается валидным до истечения срока независимо от последующих
// изменений учетной записи.
package jwt

import (
	"time"
)

// Maker описывает интерфейс выпуска и проверки токенов доступа.
type Maker interface {
	// GenerateToken выпускает токен с именем пользователя и ролью.
	GenerateToken(username, role string) (string, error)
	// ParseToken проверяет подпись и срок действия, возвращает claims.
	ParseToken(tokenStr string) (*CustomClaims, error)
}

// MakerImpl реализует Maker на секретном ключе и фиксированном TTL.
type MakerImpl struct {
	secretKey string
	tokenTTL  time.Duration
}

// NewJWTMaker создает новый MakerImpl. Секрет приходит из конфигурации
// при старте процесса и дальше не меняется.
func NewJWTMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}

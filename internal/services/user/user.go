// Package user содержит бизнес-логику жизненного цикла учетной записи:
// регистрация, подтверждение email, вход, смена и сброс пароля,
// административные операции над ролями и удаление.
//
// Все внутренние сбои сворачиваются в ошибки пакета на границе операции;
// HTTP-слой видит только их.
package user

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/andrianprakoso/movie-catalog/internal/lib/jwt"
	"github.com/andrianprakoso/movie-catalog/internal/lib/password"
	"github.com/andrianprakoso/movie-catalog/internal/lib/sl"
	"github.com/andrianprakoso/movie-catalog/internal/models"
	"github.com/andrianprakoso/movie-catalog/internal/storage"
)

var (
	// ErrDuplicate username или email уже заняты.
	ErrDuplicate = errors.New("username or email already exists")
	// ErrAccountNotFound учетная запись не найдена.
	ErrAccountNotFound = errors.New("account not found")
	// ErrAlreadyVerified email уже подтвержден.
	ErrAlreadyVerified = errors.New("email is already verified")
	// ErrAuthenticationFailed неверная пара username/password.
	ErrAuthenticationFailed = errors.New("invalid username or password")
	// ErrEmailNotVerified вход запрещен до подтверждения email.
	ErrEmailNotVerified = errors.New("email is not verified")
	// ErrInvalidCredential старый пароль не совпал при смене.
	ErrInvalidCredential = errors.New("old password is wrong")
	// ErrForbidden операция недоступна этому пользователю.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidRole роль вне множества {user, admin}.
	ErrInvalidRole = errors.New("role must be user or admin")
	// ErrResetCodeInvalid код сброса не найден, просрочен или не совпал.
	ErrResetCodeInvalid = errors.New("reset code is invalid or expired")
	// ErrEmailDelivery письмо не удалось доставить.
	ErrEmailDelivery = errors.New("failed to deliver email")
)

// Repository описывает контракт хранилища учетных записей.
// Уникальность username/email обязана обеспечиваться самим хранилищем.
type Repository interface {
	CreateUser(ctx context.Context, user models.User) error
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	SetVerified(ctx context.Context, username string) error
	UpdatePassword(ctx context.Context, username, passwordHash string) error
	UpdateRole(ctx context.Context, username, role string) error
	ListUsers(ctx context.Context) ([]*models.User, error)
	DeleteUser(ctx context.Context, username string) error
}

// Mailer описывает контракт почтового шлюза.
type Mailer interface {
	SendVerificationEmail(ctx context.Context, email, username string) error
	SendPasswordResetEmail(ctx context.Context, email, username, code string) error
	SendTemporaryPassword(ctx context.Context, email, username, tempPassword string) error
}

// ResetCodeStore хранит одноразовые коды сброса с TTL.
// TakeString обязан удалять значение атомарно с чтением.
type ResetCodeStore interface {
	SetString(ctx context.Context, key, value string, expiration time.Duration) error
	TakeString(ctx context.Context, key string) (string, bool, error)
}

// Service реализует операции жизненного цикла учетной записи.
type Service struct {
	repo     Repository
	mailer   Mailer
	codes    ResetCodeStore
	tokens   jwt.Maker
	resetTTL time.Duration
	log      *slog.Logger
}

// New создает новый Service.
func New(repo Repository, mailer Mailer, codes ResetCodeStore, tokens jwt.Maker, resetTTL time.Duration, log *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		mailer:   mailer,
		codes:    codes,
		tokens:   tokens,
		resetTTL: resetTTL,
		log:      log,
	}
}

// LoginSession — результат успешного входа.
type LoginSession struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	Token    string `json:"token"`
}

// Register создает новую учетную запись: verified=false, роль всегда user.
// Роль при саморегистрации задать нельзя — это проверяет HTTP-слой до вызова.
// Если письмо подтверждения не доставлено, запись все равно остается
// созданной, а вызывающему возвращается ErrEmailDelivery.
func (s *Service) Register(ctx context.Context, username, email, rawPassword string) (*models.UserProfile, error) {
	const op = "user.Register"
	log := s.log.With(slog.String("op", op), slog.String("username", username))

	hash, err := password.GetHash(rawPassword)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	newUser := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleUser,
		Verified:     false,
	}
	if err := s.repo.CreateUser(ctx, newUser); err != nil {
		if errors.Is(err, storage.ErrUserExists) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	log.Info("user registered")

	profile := newUser.Profile()
	if err := s.mailer.SendVerificationEmail(ctx, email, username); err != nil {
		log.Error("failed to send verification email", sl.Err(err))
		return &profile, fmt.Errorf("%w: %w", ErrEmailDelivery, err)
	}
	return &profile, nil
}

// VerifyEmail подтверждает email. Повторный вызов не меняет состояния,
// но отвечает ErrAlreadyVerified.
func (s *Service) VerifyEmail(ctx context.Context, username string) error {
	const op = "user.VerifyEmail"

	u, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return ErrAccountNotFound
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	if u.Verified {
		return ErrAlreadyVerified
	}
	if err := s.repo.SetVerified(ctx, username); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("email verified", slog.String("username", username))
	return nil
}

// Login проверяет учетные данные и выпускает токен доступа.
// Неподтвержденный email — отдельная ошибка, чтобы клиент мог предложить
// повторную отправку письма.
func (s *Service) Login(ctx context.Context, username, rawPassword string) (*LoginSession, error) {
	const op = "user.Login"
	log := s.log.With(slog.String("op", op), slog.String("username", username))

	u, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			log.Warn("user not found")
			return nil, ErrAuthenticationFailed
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := password.CompareHash(u.PasswordHash, rawPassword); err != nil {
		log.Warn("invalid credentials")
		return nil, ErrAuthenticationFailed
	}

	if !u.Verified {
		return nil, ErrEmailNotVerified
	}

	token, err := s.tokens.GenerateToken(u.Username, u.Role)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("user logged in")
	return &LoginSession{
		Username: u.Username,
		Role:     u.Role,
		Token:    token,
	}, nil
}

// ChangePassword заменяет пароль после проверки старого.
// При неверном старом пароле запись не меняется.
func (s *Service) ChangePassword(ctx context.Context, username, oldPassword, newPassword string) (*models.UserProfile, error) {
	const op = "user.ChangePassword"

	u, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := password.CompareHash(u.PasswordHash, oldPassword); err != nil {
		return nil, ErrInvalidCredential
	}

	hash, err := password.GetHash(newPassword)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.repo.UpdatePassword(ctx, username, hash); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("password changed", slog.String("username", username))
	profile := u.Profile()
	return &profile, nil
}

// RequestPasswordReset генерирует одноразовый код, сохраняет его хэш
// с TTL и отправляет пользователю ссылку. Сам пароль здесь не меняется.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	const op = "user.RequestPasswordReset"
	log := s.log.With(slog.String("op", op))

	u, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return ErrAccountNotFound
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	code, err := generateResetCode()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.codes.SetString(ctx, resetKey(u.Username), hashCode(code), s.resetTTL); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.mailer.SendPasswordResetEmail(ctx, u.Email, u.Username, code); err != nil {
		log.Error("failed to send reset email", sl.Err(err))
		return fmt.Errorf("%w: %w", ErrEmailDelivery, err)
	}

	log.Info("reset code issued", slog.String("username", u.Username))
	return nil
}

// CompletePasswordReset потребляет код сброса и ровно один раз фиксирует
// новый пароль. Код удаляется из хранилища атомарно с чтением, поэтому
// повторный переход по той же ссылке получает ErrResetCodeInvalid.
// Временный пароль отправляется на email учетной записи.
func (s *Service) CompletePasswordReset(ctx context.Context, username, code string) error {
	const op = "user.CompletePasswordReset"
	log := s.log.With(slog.String("op", op), slog.String("username", username))

	u, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return ErrAccountNotFound
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	stored, found, err := s.codes.TakeString(ctx, resetKey(username))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !found {
		return ErrResetCodeInvalid
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(hashCode(code))) != 1 {
		// Код уже потреблен: после неудачной попытки нужен новый запрос сброса.
		return ErrResetCodeInvalid
	}

	tempPassword, err := generateTempPassword()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	hash, err := password.GetHash(tempPassword)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.repo.UpdatePassword(ctx, username, hash); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	log.Info("password reset committed")

	if err := s.mailer.SendTemporaryPassword(ctx, u.Email, username, tempPassword); err != nil {
		log.Error("failed to send temporary password", sl.Err(err))
		return fmt.Errorf("%w: %w", ErrEmailDelivery, err)
	}
	return nil
}

// GetProfile возвращает несекретную проекцию учетной записи.
// Полные данные доступны владельцу и администратору.
func (s *Service) GetProfile(ctx context.Context, target, requester, requesterRole string) (*models.UserProfile, error) {
	const op = "user.GetProfile"

	if requester != target && requesterRole != models.RoleAdmin {
		return nil, ErrForbidden
	}

	u, err := s.repo.GetUserByUsername(ctx, target)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	profile := u.Profile()
	return &profile, nil
}

// ListProfiles возвращает проекции всех учетных записей.
func (s *Service) ListProfiles(ctx context.Context) ([]models.UserProfile, error) {
	const op = "user.ListProfiles"

	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	profiles := make([]models.UserProfile, 0, len(users))
	for _, u := range users {
		profiles = append(profiles, u.Profile())
	}
	return profiles, nil
}

// UpdateRole заменяет роль пользователя. Допустимы только user и admin.
func (s *Service) UpdateRole(ctx context.Context, username, role string) error {
	const op = "user.UpdateRole"

	if role != models.RoleUser && role != models.RoleAdmin {
		return ErrInvalidRole
	}
	if err := s.repo.UpdateRole(ctx, username, role); err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return ErrAccountNotFound
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("role updated", slog.String("username", username), slog.String("role", role))
	return nil
}

// DeleteAccount безвозвратно удаляет учетную запись. Выпущенные токены
// остаются валидными до истечения срока — списка отзыва нет.
func (s *Service) DeleteAccount(ctx context.Context, username string) error {
	const op = "user.DeleteAccount"

	if err := s.repo.DeleteUser(ctx, username); err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return ErrAccountNotFound
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("account deleted", slog.String("username", username))
	return nil
}

func resetKey(username string) string {
	return "reset:" + username
}

func hashCode(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}

// generateResetCode возвращает шестизначный криптослучайный код.
func generateResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// generateTempPassword возвращает случайный временный пароль.
func generateTempPassword() (string, error) {
	buf := make([]byte, 9)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

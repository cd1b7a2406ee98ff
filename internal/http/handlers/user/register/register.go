// Package register реализует HTTP-обработчик регистрации учетной записи.
//
// Новая запись создается с ролью user и неподтвержденным email; роль
// в теле запроса запрещена. После создания пользователю отправляется
// письмо со ссылкой подтверждения.
package register

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/andrianprakoso/movie-catalog/internal/http/response"
	"github.com/andrianprakoso/movie-catalog/internal/lib/sl"
	"github.com/andrianprakoso/movie-catalog/internal/models"
	"github.com/andrianprakoso/movie-catalog/internal/services/user"
)

// Request — входные данные для регистрации.
// Поле role намеренно присутствует: его передача — ошибка клиента.
type Request struct {
	Username string  `json:"username" validate:"required,min=3,max=50"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=6"`
	Role     *string `json:"role"`
}

// Service описывает интерфейс бизнес-логики регистрации.
type Service interface {
	Register(ctx context.Context, username, email, password string) (*models.UserProfile, error)
}

// Handler обрабатывает запросы на регистрацию.
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
// @Summary Регистрация нового пользователя
// @Description Создает учетную запись с ролью user и отправляет письмо подтверждения email. Указывать роль в запросе запрещено.
// @Tags User
// @Accept json
// @Produce json
// @Param request body Request true "Данные нового пользователя"
// @Success 200 {object} response.Response "Учетная запись создана"
// @Failure 400 {object} response.Response "Некорректный JSON, ошибка валидации или дубликат"
// @Failure 403 {object} response.Response "Роль в запросе запрещена"
// @Failure 500 {object} response.Response "Письмо не доставлено или внутренняя ошибка"
// @Router /user/register [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.register"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Err(http.StatusBadRequest, "invalid request body"))
		return
	}

	if req.Role != nil {
		log.Warn("role supplied on self-registration", slog.String("username", req.Username))
		w.WriteHeader(http.StatusForbidden)
		render.JSON(w, r, response.Err(http.StatusForbidden, "role cannot be set on registration"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	profile, err := h.service.Register(r.Context(), req.Username, req.Email, req.Password)
	switch {
	case errors.Is(err, user.ErrDuplicate):
		log.Warn("duplicate registration", slog.String("username", req.Username))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Err(http.StatusBadRequest, "username or email already exists"))
		return
	case errors.Is(err, user.ErrEmailDelivery):
		// Учетная запись уже создана, подтверждение придется запросить повторно.
		log.Error("verification email not delivered", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Err(http.StatusInternalServerError, "failed to send verification email"))
		return
	case err != nil:
		log.Error("registration failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Err(http.StatusInternalServerError, "failed to register user"))
		return
	}

	log.Info("user registered", slog.String("username", profile.Username))
	render.JSON(w, r, response.OK(profile, "user created, verification email sent"))
}

// Package forgot реализует HTTP-обработчик запроса сброса пароля.
//
// Пользователь указывает email; на него уходит письмо с одноразовой
// ссылкой, действующей ограниченное время. Пароль на этом шаге
// не меняется.
package forgot

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
	"github.com/andrianprakoso/movie-catalog/internal/services/user"
)

// Request — email учетной записи.
type Request struct {
	Email string `json:"email" validate:"required,email"`
}

// Service описывает интерфейс бизнес-логики запроса сброса.
type Service interface {
	RequestPasswordReset(ctx context.Context, email string) error
}

// Handler обрабатывает запросы сброса пароля.
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
// @Summary Запрос сброса пароля
// @Description Отправляет на указанный email одноразовую ссылку сброса с ограниченным сроком действия.
// @Tags User
// @Accept json
// @Produce json
// @Param request body Request true "Email учетной записи"
// @Success 200 {object} response.Response "Письмо отправлено"
// @Failure 400 {object} response.Response "Ошибка валидации"
// @Failure 404 {object} response.Response "Учетная запись не найдена"
// @Failure 500 {object} response.Response "Письмо не доставлено или внутренняя ошибка"
// @Router /user/forgot [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.forgot"

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

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	err := h.service.RequestPasswordReset(r.Context(), req.Email)
	switch {
	case errors.Is(err, user.ErrAccountNotFound):
		log.Warn("account not found for email")
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Err(http.StatusNotFound, "account not found"))
		return
	case errors.Is(err, user.ErrEmailDelivery):
		log.Error("reset email not delivered", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Err(http.StatusInternalServerError, "failed to send reset email"))
		return
	case err != nil:
		log.Error("reset request failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Err(http.StatusInternalServerError, "failed to request password reset"))
		return
	}

	log.Info("reset email sent")
	render.JSON(w, r, response.OK(nil, "password reset email sent"))
}

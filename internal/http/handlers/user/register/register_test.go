package register

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/andrianprakoso/movie-catalog/internal/models"
	"github.com/andrianprakoso/movie-catalog/internal/services/user"
)

// MockService реализует интерфейс register.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Register(ctx context.Context, username, email, password string) (*models.UserProfile, error) {
	args := m.Called(ctx, username, email, password)
	if res := args.Get(0); res != nil {
		return res.(*models.UserProfile), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestRegisterHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешная регистрация",
			body: `{"username":"alice","email":"alice@example.com","password":"secret1"}`,
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, "alice", "alice@example.com", "secret1").
					Return(&models.UserProfile{Username: "alice", Email: "alice@example.com", Role: models.RoleUser}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"username":"alice"`,
		},
		{
			name:           "роль в запросе запрещена",
			body:           `{"username":"mallory","email":"m@example.com","password":"secret1","role":"admin"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusForbidden,
			expectedBody:   `"role cannot be set on registration"`,
		},
		{
			name:           "некорректный JSON",
			body:           `{"username":`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"invalid request body"`,
		},
		{
			name:           "ошибка валидации",
			body:           `{"username":"al","email":"not-an-email","password":"123"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"status":400`,
		},
		{
			name: "дубликат имени или email",
			body: `{"username":"alice","email":"alice@example.com","password":"secret1"}`,
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, "alice", "alice@example.com", "secret1").
					Return(nil, user.ErrDuplicate)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"username or email already exists"`,
		},
		{
			name: "письмо не доставлено",
			body: `{"username":"alice","email":"alice@example.com","password":"secret1"}`,
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, "alice", "alice@example.com", "secret1").
					Return(&models.UserProfile{Username: "alice"}, user.ErrEmailDelivery)
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"failed to send verification email"`,
		},
		{
			name: "внутренняя ошибка",
			body: `{"username":"alice","email":"alice@example.com","password":"secret1"}`,
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, "alice", "alice@example.com", "secret1").
					Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"failed to register user"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/user/register", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.expectedBody)
			mockService.AssertExpectations(t)
		})
	}
}

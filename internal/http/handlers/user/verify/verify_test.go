package verify

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/andrianprakoso/movie-catalog/internal/services/user"
)

// MockService реализует интерфейс verify.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) VerifyEmail(ctx context.Context, username string) error {
	return m.Called(ctx, username).Error(0)
}

func TestVerifyHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		username       string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:     "успешное подтверждение",
			username: "alice",
			setupMock: func(m *MockService) {
				m.On("VerifyEmail", mock.Anything, "alice").Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"email verified"`,
		},
		{
			name:     "учетная запись не найдена",
			username: "ghost",
			setupMock: func(m *MockService) {
				m.On("VerifyEmail", mock.Anything, "ghost").Return(user.ErrAccountNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"account not found"`,
		},
		{
			name:     "email уже подтвержден",
			username: "alice",
			setupMock: func(m *MockService) {
				m.On("VerifyEmail", mock.Anything, "alice").Return(user.ErrAlreadyVerified)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"email is already verified"`,
		},
		{
			name:     "внутренняя ошибка",
			username: "alice",
			setupMock: func(m *MockService) {
				m.On("VerifyEmail", mock.Anything, "alice").Return(errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"failed to verify email"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, "/user/verify/"+tt.username, nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("username", tt.username)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.expectedBody)
			mockService.AssertExpectations(t)
		})
	}
}

package role

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/andrianprakoso/movie-catalog/internal/services/user"
)

// MockService реализует интерфейс role.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) UpdateRole(ctx context.Context, username, role string) error {
	return m.Called(ctx, username, role).Error(0)
}

func TestRoleHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		username       string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:     "назначение роли admin",
			username: "alice",
			body:     `{"role":"admin"}`,
			setupMock: func(m *MockService) {
				m.On("UpdateRole", mock.Anything, "alice", "admin").Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"role updated"`,
		},
		{
			name:           "недопустимая роль",
			username:       "alice",
			body:           `{"role":"superuser"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"status":400`,
		},
		{
			name:     "учетная запись не найдена",
			username: "ghost",
			body:     `{"role":"user"}`,
			setupMock: func(m *MockService) {
				m.On("UpdateRole", mock.Anything, "ghost", "user").Return(user.ErrAccountNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"account not found"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPut, "/user/role/"+tt.username, strings.NewReader(tt.body))
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

package removeuser

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/fintask/internal/http/middlewarectx"
	"github.com/magabrotheeeer/fintask/internal/lib/apperr"
	"github.com/magabrotheeeer/fintask/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) DeleteUser(ctx context.Context, actorID, id string) error {
	return m.Called(ctx, actorID, id).Error(0)
}

func TestRemoveUserHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	admin := &models.User{ID: "admin-1", Role: models.RoleAdmin}

	tests := []struct {
		name           string
		id             string
		user           *models.User
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "пользователь удален",
			id:   "user-1",
			user: admin,
			setupMock: func(m *MockService) {
				m.On("DeleteUser", mock.Anything, "admin-1", "user-1").Return(nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"message":"user deleted"`,
		},
		{
			name: "удаление себя",
			id:   "admin-1",
			user: admin,
			setupMock: func(m *MockService) {
				m.On("DeleteUser", mock.Anything, "admin-1", "admin-1").
					Return(apperr.Validation("cannot delete your own account")).Once()
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"message":"cannot delete your own account"`,
		},
		{
			name: "пользователь не найден",
			id:   "ghost",
			user: admin,
			setupMock: func(m *MockService) {
				m.On("DeleteUser", mock.Anything, "admin-1", "ghost").Return(apperr.NotFound("user not found")).Once()
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"message":"user not found"`,
		},
		{
			name:           "без пользователя",
			id:             "user-1",
			setupMock:      func(*MockService) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "ошибка хранилища",
			id:   "user-1",
			user: admin,
			setupMock: func(m *MockService) {
				m.On("DeleteUser", mock.Anything, "admin-1", "user-1").Return(errors.New("db down")).Once()
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setupMock(svc)

			req := httptest.NewRequest(http.MethodDelete, "/api/admin/users/"+tt.id, nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.id)
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			if tt.user != nil {
				ctx = middlewarectx.WithUser(ctx, tt.user)
			}

			w := httptest.NewRecorder()
			New(logger, svc).ServeHTTP(w, req.WithContext(ctx))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			svc.AssertExpectations(t)
		})
	}
}

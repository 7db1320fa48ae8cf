package bulkdelete

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/fintask/internal/http/middlewarectx"
	"github.com/magabrotheeeer/fintask/internal/lib/apperr"
	"github.com/magabrotheeeer/fintask/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) BulkDelete(ctx context.Context, ownerID string, req models.BulkTaskDelete) (int64, error) {
	args := m.Called(ctx, ownerID, req)
	return args.Get(0).(int64), args.Error(1)
}

func TestBulkDeleteHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	owner := &models.User{ID: "owner-1"}
	id := "0b7f3e2a-1111-4c2d-9e1f-000000000001"

	tests := []struct {
		name           string
		body           string
		user           *models.User
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "удалена одна задача",
			body: `{"ids":["` + id + `"]}`,
			user: owner,
			setupMock: func(m *MockService) {
				m.On("BulkDelete", mock.Anything, "owner-1", models.BulkTaskDelete{IDs: []string{id}}).
					Return(int64(1), nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"deletedCount":1`,
		},
		{
			name: "пустой список",
			body: `{"ids":[]}`,
			user: owner,
			setupMock: func(m *MockService) {
				m.On("BulkDelete", mock.Anything, "owner-1", mock.Anything).
					Return(int64(0), apperr.Validation("field ids must have min length 1")).Once()
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"message":"field ids must have min length 1"`,
		},
		{
			name:           "без пользователя",
			body:           `{"ids":["` + id + `"]}`,
			setupMock:      func(*MockService) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "ошибка хранилища",
			body: `{"ids":["` + id + `"]}`,
			user: owner,
			setupMock: func(m *MockService) {
				m.On("BulkDelete", mock.Anything, "owner-1", mock.Anything).Return(int64(0), errors.New("db down")).Once()
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"message":"internal server error"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setupMock(svc)

			req := httptest.NewRequest(http.MethodPost, "/api/task/bulk-delete", strings.NewReader(tt.body))
			if tt.user != nil {
				req = req.WithContext(middlewarectx.WithUser(req.Context(), tt.user))
			}
			w := httptest.NewRecorder()
			New(logger, svc).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			svc.AssertExpectations(t)
		})
	}
}

package bulkupdate

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

func (m *MockService) BulkUpdate(ctx context.Context, ownerID string, upd models.BulkTaskUpdate) (int64, error) {
	args := m.Called(ctx, ownerID, upd)
	return args.Get(0).(int64), args.Error(1)
}

func TestBulkUpdateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	owner := &models.User{ID: "owner-1"}
	ids := `["0b7f3e2a-1111-4c2d-9e1f-000000000001","0b7f3e2a-1111-4c2d-9e1f-000000000002"]`

	tests := []struct {
		name           string
		body           string
		user           *models.User
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "две задачи завершены",
			body: `{"taskIds":` + ids + `,"status":"completed"}`,
			user: owner,
			setupMock: func(m *MockService) {
				m.On("BulkUpdate", mock.Anything, "owner-1", mock.MatchedBy(func(u models.BulkTaskUpdate) bool {
					return len(u.TaskIDs) == 2 && u.Status != nil && *u.Status == "completed"
				})).Return(int64(2), nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"modifiedCount":2`,
		},
		{
			name: "пустой список",
			body: `{"taskIds":[],"status":"completed"}`,
			user: owner,
			setupMock: func(m *MockService) {
				m.On("BulkUpdate", mock.Anything, "owner-1", mock.Anything).
					Return(int64(0), apperr.Validation("field taskIds must have min length 1")).Once()
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"status":"Error"`,
		},
		{
			name:           "некорректный json",
			body:           `{"taskIds":"all"}`,
			user:           owner,
			setupMock:      func(*MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"message":"invalid request body"`,
		},
		{
			name:           "без пользователя",
			body:           `{"taskIds":` + ids + `,"status":"completed"}`,
			setupMock:      func(*MockService) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "ошибка хранилища",
			body: `{"taskIds":` + ids + `,"priority":"low"}`,
			user: owner,
			setupMock: func(m *MockService) {
				m.On("BulkUpdate", mock.Anything, "owner-1", mock.Anything).Return(int64(0), errors.New("db down")).Once()
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setupMock(svc)

			req := httptest.NewRequest(http.MethodPatch, "/api/task/bulk-update", strings.NewReader(tt.body))
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

package summary

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/fintask/internal/http/middlewarectx"
	"github.com/magabrotheeeer/fintask/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Summary(ctx context.Context, ownerID string) (*models.TaskSummary, error) {
	args := m.Called(ctx, ownerID)
	s, _ := args.Get(0).(*models.TaskSummary)
	return s, args.Error(1)
}

func TestSummaryHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	owner := &models.User{ID: "owner-1"}

	tests := []struct {
		name           string
		user           *models.User
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   []string
	}{
		{
			name: "сводка",
			user: owner,
			setupMock: func(m *MockService) {
				m.On("Summary", mock.Anything, "owner-1").Return(&models.TaskSummary{
					TotalTasks: 3, CompletedTasks: 1, PendingTasks: 2,
					StatusBreakdown: []models.StatusCount{{Status: "completed", Count: 1}, {Status: "pending", Count: 2}},
				}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   []string{`"totalTasks":3`, `"pendingTasks":2`, `{"status":"completed","count":1}`},
		},
		{
			name: "задач нет",
			user: owner,
			setupMock: func(m *MockService) {
				m.On("Summary", mock.Anything, "owner-1").Return(&models.TaskSummary{}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   []string{`"statusBreakdown":[]`},
		},
		{
			name:           "без пользователя",
			setupMock:      func(*MockService) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "ошибка хранилища",
			user: owner,
			setupMock: func(m *MockService) {
				m.On("Summary", mock.Anything, "owner-1").Return(nil, errors.New("db down")).Once()
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setupMock(svc)

			req := httptest.NewRequest(http.MethodGet, "/api/task/summary", nil)
			if tt.user != nil {
				req = req.WithContext(middlewarectx.WithUser(req.Context(), tt.user))
			}
			w := httptest.NewRecorder()
			New(logger, svc).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			for _, want := range tt.expectedBody {
				assert.Contains(t, w.Body.String(), want)
			}
			svc.AssertExpectations(t)
		})
	}
}

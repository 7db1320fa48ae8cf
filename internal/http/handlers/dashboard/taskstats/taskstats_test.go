package taskstats

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
	"github.com/magabrotheeeer/fintask/internal/lib/period"
	"github.com/magabrotheeeer/fintask/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) TaskStats(ctx context.Context, ownerID string, p period.Name) (models.TaskStats, error) {
	args := m.Called(ctx, ownerID, p)
	return args.Get(0).(models.TaskStats), args.Error(1)
}

func TestTaskStatsHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	owner := &models.User{ID: "owner-1"}

	t.Run("статистика за квартал", func(t *testing.T) {
		svc := new(MockService)
		svc.On("TaskStats", mock.Anything, "owner-1", period.Quarter).
			Return(models.TaskStats{TotalTasks: 5, CompletedTasks: 2, HighPriorityTasks: 1, TodayTasks: 1}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/dashboard/task-stats?period=quarter", nil)
		req = req.WithContext(middlewarectx.WithUser(req.Context(), owner))
		w := httptest.NewRecorder()
		New(logger, svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, `"totalTasks":5`)
		assert.Contains(t, body, `"highPriorityTasks":1`)
		assert.Contains(t, body, `"period":"quarter"`)
		svc.AssertExpectations(t)
	})

	t.Run("без пользователя", func(t *testing.T) {
		svc := new(MockService)
		w := httptest.NewRecorder()
		New(logger, svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/dashboard/task-stats", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("ошибка сервиса", func(t *testing.T) {
		svc := new(MockService)
		svc.On("TaskStats", mock.Anything, "owner-1", period.Month).
			Return(models.TaskStats{}, errors.New("db down")).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/dashboard/task-stats", nil)
		req = req.WithContext(middlewarectx.WithUser(req.Context(), owner))
		w := httptest.NewRecorder()
		New(logger, svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

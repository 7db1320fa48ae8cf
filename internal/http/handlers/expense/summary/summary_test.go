package summary

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/fintask/internal/http/middlewarectx"
	"github.com/magabrotheeeer/fintask/internal/lib/period"
	"github.com/magabrotheeeer/fintask/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Summarize(ctx context.Context, scope models.Scope, p period.Name) (*models.Summary, error) {
	args := m.Called(ctx, scope, p)
	s, _ := args.Get(0).(*models.Summary)
	return s, args.Error(1)
}

func TestSummaryHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	owner := &models.User{ID: "owner-1"}
	start := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 10, 8, 9, 30, 0, 0, time.UTC)

	t.Run("сводка за месяц по умолчанию", func(t *testing.T) {
		svc := new(MockService)
		svc.On("Summarize", mock.Anything, models.OwnerScope("owner-1"), period.Month).Return(&models.Summary{
			Period:    "month",
			StartDate: start,
			EndDate:   end,
			Financial: models.FinancialSummary{
				TotalIncome: 1200, TotalExpense: 18.5, NetBalance: 1181.5,
				IncomeChange: "0.0%", ExpenseChange: "0.0%", BalanceChange: "0.0%",
			},
			CategoryBreakdown: []models.CategoryTotal{{Category: "Food", Total: 18.5, Count: 1}},
		}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/expenses/summary", nil)
		req = req.WithContext(middlewarectx.WithUser(req.Context(), owner))
		w := httptest.NewRecorder()
		New(logger, svc).ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Data Result `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 1181.5, resp.Data.Summary.NetBalance)
		assert.Equal(t, "0.0%", resp.Data.Summary.IncomeChange)
		assert.Equal(t, "month", resp.Data.Period)
		assert.True(t, start.Equal(resp.Data.StartDate))
		require.Len(t, resp.Data.CategoryBreakdown, 1)
		assert.Equal(t, "Food", resp.Data.CategoryBreakdown[0].Category)
		assert.NotContains(t, w.Body.String(), "taskStats")
		svc.AssertExpectations(t)
	})

	t.Run("неизвестный период трактуется как месяц", func(t *testing.T) {
		svc := new(MockService)
		svc.On("Summarize", mock.Anything, mock.Anything, period.Month).Return(&models.Summary{Period: "month"}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/expenses/summary?period=decade", nil)
		req = req.WithContext(middlewarectx.WithUser(req.Context(), owner))
		w := httptest.NewRecorder()
		New(logger, svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"categoryBreakdown":[]`)
		svc.AssertExpectations(t)
	})

	t.Run("квартал", func(t *testing.T) {
		svc := new(MockService)
		svc.On("Summarize", mock.Anything, mock.Anything, period.Quarter).Return(&models.Summary{Period: "quarter"}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/expenses/summary?period=quarter", nil)
		req = req.WithContext(middlewarectx.WithUser(req.Context(), owner))
		w := httptest.NewRecorder()
		New(logger, svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("без пользователя", func(t *testing.T) {
		svc := new(MockService)
		w := httptest.NewRecorder()
		New(logger, svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/expenses/summary", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		svc.AssertNotCalled(t, "Summarize", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("ошибка сервиса", func(t *testing.T) {
		svc := new(MockService)
		svc.On("Summarize", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("db down")).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/expenses/summary", nil)
		req = req.WithContext(middlewarectx.WithUser(req.Context(), owner))
		w := httptest.NewRecorder()
		New(logger, svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

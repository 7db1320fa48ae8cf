package list_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/fintask/internal/http/handlers/expense/list"
	"github.com/magabrotheeeer/fintask/internal/http/middlewarectx"
	"github.com/magabrotheeeer/fintask/internal/models"
)

type mockList struct {
	ListFunc func(ctx context.Context, filter models.TransactionFilter) (models.ListResult[models.Transaction], error)
}

func (m *mockList) List(ctx context.Context, filter models.TransactionFilter) (models.ListResult[models.Transaction], error) {
	return m.ListFunc(ctx, filter)
}

func makeLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestListHandler(t *testing.T) {
	owner := &models.User{ID: "owner-1"}
	baseCtx := middlewarectx.WithUser(context.Background(), owner)

	t.Run("success", func(t *testing.T) {
		svc := &mockList{
			ListFunc: func(_ context.Context, filter models.TransactionFilter) (models.ListResult[models.Transaction], error) {
				require.Equal(t, models.OwnerScope("owner-1"), filter.Scope)
				require.Equal(t, "Food", filter.Category)
				require.Equal(t, models.Page{Number: 2, Size: 2}, filter.Page)
				return models.ListResult[models.Transaction]{
					Items: []models.Transaction{{ID: "a"}, {ID: "b"}},
					Total: 5,
					Page:  filter.Page,
				}, nil
			},
		}

		req := httptest.NewRequest(http.MethodGet, "/api/expenses?category=Food&page=2&limit=2", nil).WithContext(baseCtx)
		w := httptest.NewRecorder()
		list.New(makeLogger(), svc).ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Status string    `json:"status"`
			Data   list.Page `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "OK", resp.Status)
		assert.Len(t, resp.Data.Expenses, 2)
		assert.Equal(t, 3, resp.Data.TotalPages)
		assert.Equal(t, 2, resp.Data.CurrentPage)
		assert.Equal(t, 5, resp.Data.TotalExpenses)
	})

	t.Run("empty result renders empty array", func(t *testing.T) {
		svc := &mockList{
			ListFunc: func(_ context.Context, filter models.TransactionFilter) (models.ListResult[models.Transaction], error) {
				return models.ListResult[models.Transaction]{Page: filter.Page}, nil
			},
		}

		req := httptest.NewRequest(http.MethodGet, "/api/expenses?category=Nonexistent", nil).WithContext(baseCtx)
		w := httptest.NewRecorder()
		list.New(makeLogger(), svc).ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"expenses":[]`)
		assert.Contains(t, w.Body.String(), `"totalExpenses":0`)
	})

	t.Run("unauthorized - no user in ctx", func(t *testing.T) {
		svc := &mockList{
			ListFunc: func(context.Context, models.TransactionFilter) (models.ListResult[models.Transaction], error) {
				t.Fatal("List should not be called when unauthorized")
				return models.ListResult[models.Transaction]{}, nil
			},
		}

		req := httptest.NewRequest(http.MethodGet, "/api/expenses", nil)
		w := httptest.NewRecorder()
		list.New(makeLogger(), svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("bad date", func(t *testing.T) {
		svc := &mockList{
			ListFunc: func(context.Context, models.TransactionFilter) (models.ListResult[models.Transaction], error) {
				t.Fatal("List should not be called with invalid filter")
				return models.ListResult[models.Transaction]{}, nil
			},
		}

		req := httptest.NewRequest(http.MethodGet, "/api/expenses?startDate=07.10.2025", nil).WithContext(baseCtx)
		w := httptest.NewRecorder()
		list.New(makeLogger(), svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("storage returns error", func(t *testing.T) {
		svc := &mockList{
			ListFunc: func(context.Context, models.TransactionFilter) (models.ListResult[models.Transaction], error) {
				return models.ListResult[models.Transaction]{}, errors.New("db error")
			},
		}

		req := httptest.NewRequest(http.MethodGet, "/api/expenses", nil).WithContext(baseCtx)
		w := httptest.NewRecorder()
		list.New(makeLogger(), svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "internal server error")
	})
}

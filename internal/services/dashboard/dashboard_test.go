package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/fintask/internal/lib/period"
	"github.com/magabrotheeeer/fintask/internal/models"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Totals(ctx context.Context, scope models.Scope, window *period.Window) (models.Totals, error) {
	args := m.Called(ctx, scope, window)
	return args.Get(0).(models.Totals), args.Error(1)
}

func (m *MockRepository) CategoryTotals(ctx context.Context, scope models.Scope, window *period.Window) ([]models.CategoryTotal, error) {
	args := m.Called(ctx, scope, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CategoryTotal), args.Error(1)
}

func (m *MockRepository) TaskStats(ctx context.Context, q models.TaskStatsQuery) (models.TaskStats, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(models.TaskStats), args.Error(1)
}

func (m *MockRepository) TaskPoints(ctx context.Context, scope models.Scope, since time.Time) ([]models.TaskPoint, error) {
	args := m.Called(ctx, scope, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TaskPoint), args.Error(1)
}

func (m *MockRepository) RecentTransactions(ctx context.Context, scope models.Scope, limit int) ([]models.Transaction, error) {
	args := m.Called(ctx, scope, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Transaction), args.Error(1)
}

func (m *MockRepository) UpcomingTasks(ctx context.Context, scope models.Scope, limit int) ([]models.Task, error) {
	args := m.Called(ctx, scope, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Task), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string, result any) (bool, error) {
	args := m.Called(ctx, key, result)
	return args.Bool(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	return m.Called(ctx, key, value, expiration).Error(0)
}

const ownerID = "0b8e6b7a-4a3f-4c1e-9a43-0f5b8a2d7c11"

var fixedNow = time.Date(2025, 10, 8, 9, 30, 0, 0, time.UTC)

func newTestService(repo *MockRepository, c Cache) *DashboardService {
	s := NewDashboardService(repo, c, time.Minute, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.now = func() time.Time { return fixedNow }
	return s
}

// isWindow сопоставляет указатель на окно с ожидаемым началом.
func isWindow(start time.Time) any {
	return mock.MatchedBy(func(w *period.Window) bool {
		return w != nil && w.Start.Equal(start)
	})
}

func TestDashboardService_Summarize(t *testing.T) {
	monthStart := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	prevStart := monthStart.Add(-fixedNow.Sub(monthStart))
	scope := models.OwnerScope(ownerID)

	tests := []struct {
		name       string
		current    models.Totals
		previous   models.Totals
		wantIncome string
		wantExp    string
		wantNet    string
		wantBal    float64
	}{
		{
			name:       "no previous period",
			current:    models.Totals{Income: 1200, Expense: 18.5},
			wantIncome: "0.0%",
			wantExp:    "0.0%",
			wantNet:    "0.0%",
			wantBal:    1181.5,
		},
		{
			name:       "growth and decline",
			current:    models.Totals{Income: 150, Expense: 50},
			previous:   models.Totals{Income: 100, Expense: 100},
			wantIncome: "+50.0%",
			wantExp:    "-50.0%",
			wantNet:    "0.0%",
			wantBal:    100,
		},
		{
			name:       "unchanged values",
			current:    models.Totals{Income: 100, Expense: 40},
			previous:   models.Totals{Income: 100, Expense: 40},
			wantIncome: "+0.0%",
			wantExp:    "+0.0%",
			wantNet:    "+0.0%",
			wantBal:    60,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			c := new(MockCache)
			key := "summary:" + ownerID + ":month"

			c.On("Get", mock.Anything, key, mock.Anything).Return(false, nil).Once()
			repo.On("Totals", mock.Anything, scope, isWindow(monthStart)).Return(tt.current, nil).Once()
			repo.On("Totals", mock.Anything, scope, isWindow(prevStart)).Return(tt.previous, nil).Once()
			repo.On("CategoryTotals", mock.Anything, scope, isWindow(monthStart)).
				Return([]models.CategoryTotal{{Category: "Food", Total: 18.5, Count: 1}}, nil).Once()
			repo.On("TaskStats", mock.Anything, models.TaskStatsQuery{Scope: scope, Now: fixedNow}).
				Return(models.TaskStats{TotalTasks: 3}, nil).Once()
			c.On("Set", mock.Anything, key, mock.Anything, time.Minute).Return(nil).Once()

			summary, err := newTestService(repo, c).Summarize(context.Background(), scope, period.Month)
			require.NoError(t, err)
			assert.Equal(t, "month", summary.Period)
			assert.Equal(t, monthStart, summary.StartDate)
			assert.Equal(t, fixedNow, summary.EndDate)
			assert.InDelta(t, tt.current.Income, summary.Financial.TotalIncome, 0.001)
			assert.InDelta(t, tt.current.Expense, summary.Financial.TotalExpense, 0.001)
			assert.InDelta(t, tt.wantBal, summary.Financial.NetBalance, 0.001)
			assert.Equal(t, tt.wantIncome, summary.Financial.IncomeChange)
			assert.Equal(t, tt.wantExp, summary.Financial.ExpenseChange)
			assert.Equal(t, tt.wantNet, summary.Financial.BalanceChange)
			assert.Equal(t, 3, summary.Tasks.TotalTasks)
			assert.Len(t, summary.CategoryBreakdown, 1)
			repo.AssertExpectations(t)
			c.AssertExpectations(t)
		})
	}
}

func TestDashboardService_Summarize_CacheHit(t *testing.T) {
	repo := new(MockRepository)
	c := new(MockCache)
	c.On("Get", mock.Anything, "summary:"+ownerID+":week", mock.Anything).
		Run(func(args mock.Arguments) {
			*(args.Get(2).(*models.Summary)) = models.Summary{Period: "week", Financial: models.FinancialSummary{TotalIncome: 10}}
		}).
		Return(true, nil).Once()

	summary, err := newTestService(repo, c).Summarize(context.Background(), models.OwnerScope(ownerID), period.Week)
	require.NoError(t, err)
	assert.Equal(t, "week", summary.Period)
	assert.Equal(t, 10.0, summary.Financial.TotalIncome)
	repo.AssertNotCalled(t, "Totals", mock.Anything, mock.Anything, mock.Anything)
}

func TestDashboardService_Summarize_CacheFailureIgnored(t *testing.T) {
	repo := new(MockRepository)
	c := new(MockCache)
	c.On("Get", mock.Anything, mock.Anything, mock.Anything).Return(false, errors.New("redis down")).Once()
	c.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("redis down")).Once()
	repo.On("Totals", mock.Anything, mock.Anything, mock.Anything).Return(models.Totals{Income: 5}, nil)
	repo.On("CategoryTotals", mock.Anything, mock.Anything, mock.Anything).Return([]models.CategoryTotal{}, nil)
	repo.On("TaskStats", mock.Anything, mock.Anything).Return(models.TaskStats{}, nil)

	summary, err := newTestService(repo, c).Summarize(context.Background(), models.OwnerScope(ownerID), period.Year)
	require.NoError(t, err)
	assert.Equal(t, 5.0, summary.Financial.NetBalance)
}

func TestDashboardService_Summarize_GlobalNotCached(t *testing.T) {
	repo := new(MockRepository)
	c := new(MockCache)
	repo.On("Totals", mock.Anything, models.GlobalScope(), mock.Anything).Return(models.Totals{}, nil)
	repo.On("CategoryTotals", mock.Anything, models.GlobalScope(), mock.Anything).Return([]models.CategoryTotal{}, nil)
	repo.On("TaskStats", mock.Anything, mock.Anything).Return(models.TaskStats{}, nil)

	_, err := newTestService(repo, c).Summarize(context.Background(), models.GlobalScope(), period.Month)
	require.NoError(t, err)
	c.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything)
	c.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDashboardService_Summarize_RepositoryError(t *testing.T) {
	repo := new(MockRepository)
	c := new(MockCache)
	c.On("Get", mock.Anything, mock.Anything, mock.Anything).Return(false, nil).Once()
	repo.On("Totals", mock.Anything, mock.Anything, mock.Anything).Return(models.Totals{}, errors.New("db error")).Once()

	_, err := newTestService(repo, c).Summarize(context.Background(), models.OwnerScope(ownerID), period.Month)
	assert.Error(t, err)
	c.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDashboardService_TaskStats(t *testing.T) {
	repo := new(MockRepository)
	weekStart := fixedNow.AddDate(0, 0, -7)
	repo.On("TaskStats", mock.Anything, mock.MatchedBy(func(q models.TaskStatsQuery) bool {
		return q.Scope.OwnerID == ownerID && q.CreatedSince != nil && q.CreatedSince.Equal(weekStart) && q.Now.Equal(fixedNow)
	})).Return(models.TaskStats{TotalTasks: 2, OverdueTasks: 1}, nil).Once()

	stats, err := newTestService(repo, new(MockCache)).TaskStats(context.Background(), ownerID, period.Week)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalTasks)
	assert.Equal(t, 1, stats.OverdueTasks)
}

func TestDashboardService_RecentActivity(t *testing.T) {
	tests := []struct {
		name      string
		limit     int
		wantLimit int
	}{
		{name: "default", limit: 0, wantLimit: DefaultRecentLimit},
		{name: "explicit", limit: 3, wantLimit: 3},
		{name: "capped", limit: 1000, wantLimit: MaxRecentLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			scope := models.OwnerScope(ownerID)
			repo.On("RecentTransactions", mock.Anything, scope, tt.wantLimit).Return([]models.Transaction{
				{ID: "tx-1", Title: "Coffee", Amount: 18.5, Kind: models.KindExpense, Category: "Food", Date: fixedNow},
			}, nil).Once()
			repo.On("UpcomingTasks", mock.Anything, scope, tt.wantLimit).Return([]models.Task{
				{ID: "task-1", Title: "Pay rent", Priority: models.PriorityHigh, Status: models.StatusPending, DueDate: fixedNow},
			}, nil).Once()

			activity, err := newTestService(repo, new(MockCache)).RecentActivity(context.Background(), ownerID, tt.limit)
			require.NoError(t, err)
			require.Len(t, activity.Expenses, 1)
			require.Len(t, activity.Tasks, 1)
			assert.Equal(t, "expense", activity.Expenses[0].Type)
			assert.Equal(t, models.KindExpense, activity.Expenses[0].Kind)
			assert.Equal(t, "task", activity.Tasks[0].Type)
			assert.Equal(t, models.PriorityHigh, activity.Tasks[0].Priority)
			repo.AssertExpectations(t)
		})
	}
}

func TestDashboardService_ExpenseChart(t *testing.T) {
	repo := new(MockRepository)
	repo.On("CategoryTotals", mock.Anything, models.OwnerScope(ownerID), mock.Anything).Return([]models.CategoryTotal{
		{Category: "Food", Total: 10.005},
		{Category: "Bills", Total: 3.333},
	}, nil).Once()
	repo.On("Totals", mock.Anything, models.OwnerScope(ownerID), mock.Anything).
		Return(models.Totals{Income: 100.126, Expense: 13.338}, nil).Once()

	chart, err := newTestService(repo, new(MockCache)).ExpenseChart(context.Background(), ownerID, period.Month)
	require.NoError(t, err)
	require.Len(t, chart.Categories, 2)
	assert.Equal(t, "Food", chart.Categories[0].Name)
	assert.InDelta(t, 3.33, chart.Categories[1].Value, 1e-9)
	assert.InDelta(t, 100.13, chart.Summary.Income, 1e-9)
	assert.InDelta(t, 13.34, chart.Summary.Expense, 1e-9)
	assert.InDelta(t, 86.79, chart.Summary.Net, 1e-9)
}

func TestDashboardService_TaskProgress(t *testing.T) {
	repo := new(MockRepository)
	monthStart := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	repo.On("TaskPoints", mock.Anything, models.OwnerScope(ownerID), monthStart).Return([]models.TaskPoint{
		{Status: models.StatusCompleted, Priority: models.PriorityHigh, CreatedAt: fixedNow.Add(-time.Hour)},
		{Status: models.StatusPending, Priority: models.PriorityLow, CreatedAt: fixedNow.Add(-2 * time.Hour)},
		{Status: models.StatusCompleted, Priority: models.PriorityHigh, CreatedAt: fixedNow.AddDate(0, 0, -7)},
		{Status: models.StatusInProgress, Priority: models.PriorityMedium, CreatedAt: fixedNow.AddDate(0, 0, -10)},
	}, nil).Once()

	progress, err := newTestService(repo, new(MockCache)).TaskProgress(context.Background(), ownerID, period.Month)
	require.NoError(t, err)

	assert.Equal(t, 4, progress.TotalTasks)
	assert.Equal(t, map[string]int{"pending": 1, "in-progress": 1, "completed": 2}, progress.Status)
	assert.Equal(t, map[string]int{"low": 1, "medium": 1, "high": 2}, progress.Priority)

	require.Len(t, progress.WeeklyProgress, 4)
	assert.Equal(t, "Week 1", progress.WeeklyProgress[0].Week)
	assert.Equal(t, "Week 4", progress.WeeklyProgress[3].Week)
	assert.Equal(t, 0, progress.WeeklyProgress[0].Total)
	assert.Equal(t, 0.0, progress.WeeklyProgress[0].Rate)
	assert.Equal(t, models.WeeklyProgress{Week: "Week 2", Total: 1}, progress.WeeklyProgress[1])
	// неделя 3 начинается ровно 7 дней назад
	assert.Equal(t, models.WeeklyProgress{Week: "Week 3", Completed: 1, Total: 1, Rate: 100}, progress.WeeklyProgress[2])
	// последняя неделя начинается в now, более ранние задачи в нее не попадают
	assert.Equal(t, 0, progress.WeeklyProgress[3].Total)
}

func TestBuildProgress_Rate(t *testing.T) {
	points := []models.TaskPoint{
		{Status: models.StatusCompleted, CreatedAt: fixedNow},
		{Status: models.StatusPending, CreatedAt: fixedNow.Add(time.Hour)},
		{Status: models.StatusPending, CreatedAt: fixedNow.Add(2 * time.Hour)},
	}
	progress := buildProgress(points, fixedNow)
	last := progress.WeeklyProgress[3]
	assert.Equal(t, 3, last.Total)
	assert.Equal(t, 1, last.Completed)
	assert.Equal(t, 33.3, last.Rate)
}

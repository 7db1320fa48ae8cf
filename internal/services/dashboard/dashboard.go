// Package services считает сводки для панели пользователя: суммы за период
// и их изменение, разбивку по категориям, статистику и прогресс задач.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/magabrotheeeer/fintask/internal/cache"
	"github.com/magabrotheeeer/fintask/internal/lib/period"
	"github.com/magabrotheeeer/fintask/internal/lib/sl"
	"github.com/magabrotheeeer/fintask/internal/models"
)

// Значения ленты последних событий.
const (
	DefaultRecentLimit = 6
	MaxRecentLimit     = 50
)

const progressWeeks = 4

// Repository определяет агрегирующие запросы к хранилищу.
type Repository interface {
	Totals(ctx context.Context, scope models.Scope, window *period.Window) (models.Totals, error)
	CategoryTotals(ctx context.Context, scope models.Scope, window *period.Window) ([]models.CategoryTotal, error)
	TaskStats(ctx context.Context, q models.TaskStatsQuery) (models.TaskStats, error)
	TaskPoints(ctx context.Context, scope models.Scope, since time.Time) ([]models.TaskPoint, error)
	RecentTransactions(ctx context.Context, scope models.Scope, limit int) ([]models.Transaction, error)
	UpcomingTasks(ctx context.Context, scope models.Scope, limit int) ([]models.Task, error)
}

// Cache хранит готовые сводки владельцев.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

// DashboardService вычисляет сводки по транзакциям и задачам.
type DashboardService struct {
	repo  Repository
	cache Cache
	ttl   time.Duration
	log   *slog.Logger
	now   func() time.Time
}

// NewDashboardService создает новый экземпляр DashboardService.
// ttl задает время жизни сводки в кэше.
func NewDashboardService(repo Repository, cache Cache, ttl time.Duration, log *slog.Logger) *DashboardService {
	return &DashboardService{
		repo:  repo,
		cache: cache,
		ttl:   ttl,
		log:   log,
		now:   time.Now,
	}
}

// Summarize возвращает суммы за период, их изменение относительно
// предыдущего периода той же длины, разбивку расходов по категориям и
// статистику по всем задачам. Сводки владельца кэшируются.
func (s *DashboardService) Summarize(ctx context.Context, scope models.Scope, p period.Name) (*models.Summary, error) {
	const op = "services.dashboard.Summarize"

	var key string
	if !scope.IsGlobal() {
		key = cache.SummaryKey(scope.OwnerID, string(p))
		var cached models.Summary
		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			s.log.Warn("failed to read summary from cache", slog.String("key", key), sl.Err(err))
		}
		if found {
			return &cached, nil
		}
	}

	now := s.now().UTC()
	window := period.Resolve(p, now)
	previous := window.Previous()

	current, err := s.repo.Totals(ctx, scope, &window)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	prev, err := s.repo.Totals(ctx, scope, &previous)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	categories, err := s.repo.CategoryTotals(ctx, scope, &window)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	tasks, err := s.repo.TaskStats(ctx, models.TaskStatsQuery{Scope: scope, Now: now})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	summary := &models.Summary{
		Period:            string(p),
		StartDate:         window.Start,
		EndDate:           window.End,
		Financial:         financial(current, prev),
		CategoryBreakdown: categories,
		Tasks:             tasks,
	}

	if key != "" {
		if err = s.cache.Set(ctx, key, summary, s.ttl); err != nil {
			s.log.Warn("failed to cache summary", slog.String("key", key), sl.Err(err))
		}
	}
	return summary, nil
}

func financial(current, prev models.Totals) models.FinancialSummary {
	return models.FinancialSummary{
		TotalIncome:   current.Income,
		TotalExpense:  current.Expense,
		NetBalance:    current.Net(),
		IncomeChange:  period.Change(current.Income, prev.Income),
		ExpenseChange: period.Change(current.Expense, prev.Expense),
		BalanceChange: period.Change(current.Net(), prev.Net()),
	}
}

// TaskStats считает статистику задач владельца, созданных с начала периода.
func (s *DashboardService) TaskStats(ctx context.Context, ownerID string, p period.Name) (models.TaskStats, error) {
	const op = "services.dashboard.TaskStats"

	now := s.now().UTC()
	window := period.Resolve(p, now)
	stats, err := s.repo.TaskStats(ctx, models.TaskStatsQuery{
		Scope:        models.OwnerScope(ownerID),
		CreatedSince: &window.Start,
		Now:          now,
	})
	if err != nil {
		return stats, fmt.Errorf("%s: %w", op, err)
	}
	return stats, nil
}

// RecentActivity возвращает последние по дате транзакции и ближайшие по
// сроку задачи двумя независимыми списками.
func (s *DashboardService) RecentActivity(ctx context.Context, ownerID string, limit int) (*models.RecentActivity, error) {
	const op = "services.dashboard.RecentActivity"

	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	if limit > MaxRecentLimit {
		limit = MaxRecentLimit
	}
	scope := models.OwnerScope(ownerID)

	txs, err := s.repo.RecentTransactions(ctx, scope, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	tasks, err := s.repo.UpcomingTasks(ctx, scope, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	activity := &models.RecentActivity{
		Expenses: make([]models.TransactionActivity, 0, len(txs)),
		Tasks:    make([]models.TaskActivity, 0, len(tasks)),
	}
	for _, tx := range txs {
		activity.Expenses = append(activity.Expenses, models.TransactionActivity{
			Type:        "expense",
			ID:          tx.ID,
			Title:       tx.Title,
			Amount:      tx.Amount,
			Kind:        tx.Kind,
			Category:    tx.Category,
			Date:        tx.Date,
			Description: tx.Description,
		})
	}
	for _, task := range tasks {
		activity.Tasks = append(activity.Tasks, models.TaskActivity{
			Type:        "task",
			ID:          task.ID,
			Title:       task.Title,
			Priority:    task.Priority,
			DueDate:     task.DueDate,
			Status:      task.Status,
			Category:    task.Category,
			Description: task.Description,
		})
	}
	return activity, nil
}

// ExpenseChart возвращает расходы периода по категориям и итоги,
// округленные до копеек.
func (s *DashboardService) ExpenseChart(ctx context.Context, ownerID string, p period.Name) (*models.ExpenseChart, error) {
	const op = "services.dashboard.ExpenseChart"

	window := period.Resolve(p, s.now().UTC())
	scope := models.OwnerScope(ownerID)

	categories, err := s.repo.CategoryTotals(ctx, scope, &window)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	totals, err := s.repo.Totals(ctx, scope, &window)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	chart := &models.ExpenseChart{
		Categories: make([]models.ChartPoint, 0, len(categories)),
		Summary: models.ChartTotals{
			Income:  period.Round2(totals.Income),
			Expense: period.Round2(totals.Expense),
			Net:     period.Round2(totals.Net()),
		},
	}
	for _, c := range categories {
		chart.Categories = append(chart.Categories, models.ChartPoint{Name: c.Category, Value: period.Round2(c.Total)})
	}
	return chart, nil
}

// TaskProgress распределяет задачи, созданные с начала периода, по статусам
// и приоритетам и считает долю завершенных за каждую из последних четырех недель.
func (s *DashboardService) TaskProgress(ctx context.Context, ownerID string, p period.Name) (*models.TaskProgress, error) {
	const op = "services.dashboard.TaskProgress"

	now := s.now().UTC()
	window := period.Resolve(p, now)
	points, err := s.repo.TaskPoints(ctx, models.OwnerScope(ownerID), window.Start)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return buildProgress(points, now), nil
}

func buildProgress(points []models.TaskPoint, now time.Time) *models.TaskProgress {
	progress := &models.TaskProgress{
		Status:         make(map[string]int, len(models.TaskStatuses)),
		Priority:       make(map[string]int, len(models.TaskPriorities)),
		WeeklyProgress: make([]models.WeeklyProgress, 0, progressWeeks),
		TotalTasks:     len(points),
	}
	for _, st := range models.TaskStatuses {
		progress.Status[st] = 0
	}
	for _, pr := range models.TaskPriorities {
		progress.Priority[pr] = 0
	}
	for _, pt := range points {
		if _, ok := progress.Status[pt.Status]; ok {
			progress.Status[pt.Status]++
		}
		if _, ok := progress.Priority[pt.Priority]; ok {
			progress.Priority[pt.Priority]++
		}
	}

	for i, week := range period.Weeks(now, progressWeeks) {
		wp := models.WeeklyProgress{Week: fmt.Sprintf("Week %d", i+1)}
		for _, pt := range points {
			if !week.Contains(pt.CreatedAt) {
				continue
			}
			wp.Total++
			if pt.Status == models.StatusCompleted {
				wp.Completed++
			}
		}
		if wp.Total > 0 {
			wp.Rate = math.Round(float64(wp.Completed)/float64(wp.Total)*1000) / 10
		}
		progress.WeeklyProgress = append(progress.WeeklyProgress, wp)
	}
	return progress
}

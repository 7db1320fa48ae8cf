package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/magabrotheeeer/fintask/internal/lib/period"
	"github.com/magabrotheeeer/fintask/internal/models"
)

func windowWhere(w *where, column string, window *period.Window) {
	if window == nil {
		return
	}
	w.add(column+" >= ?", window.Start)
	w.add(column+" <= ?", window.End)
}

// Totals суммирует доходы и расходы в окне. nil окно означает всё время.
func (s *Storage) Totals(ctx context.Context, scope models.Scope, window *period.Window) (models.Totals, error) {
	const op = "storage.Totals"
	var totals models.Totals
	if err := checkCtx(ctx, op); err != nil {
		return totals, err
	}

	var w where
	w.scope("owner_id", scope)
	windowWhere(&w, "tx_date", window)
	query := `SELECT
				  COALESCE(SUM(amount) FILTER (WHERE kind = 'income'), 0),
				  COALESCE(SUM(amount) FILTER (WHERE kind = 'expense'), 0)
			  FROM transactions` + w.String()
	if err := s.DB.QueryRowContext(ctx, query, w.args...).Scan(&totals.Income, &totals.Expense); err != nil {
		return totals, fmt.Errorf("%s: %w", op, err)
	}
	return totals, nil
}

// CategoryTotals группирует расходы окна по категориям, большие суммы первыми.
func (s *Storage) CategoryTotals(ctx context.Context, scope models.Scope, window *period.Window) ([]models.CategoryTotal, error) {
	const op = "storage.CategoryTotals"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	var w where
	w.scope("owner_id", scope)
	w.add("kind = ?", models.KindExpense)
	windowWhere(&w, "tx_date", window)
	query := `SELECT category, SUM(amount), COUNT(*) FROM transactions` + w.String() +
		` GROUP BY category ORDER BY SUM(amount) DESC, category`
	rows, err := s.DB.QueryContext(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := []models.CategoryTotal{}
	for rows.Next() {
		var c models.CategoryTotal
		if err = rows.Scan(&c.Category, &c.Total, &c.Count); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// TaskStats считает задачи по статусам, срокам и приоритету.
// «Сегодня» и «просрочено» отсчитываются от q.Now.
func (s *Storage) TaskStats(ctx context.Context, q models.TaskStatsQuery) (models.TaskStats, error) {
	const op = "storage.TaskStats"
	var stats models.TaskStats
	if err := checkCtx(ctx, op); err != nil {
		return stats, err
	}

	today, tomorrow := period.DayBounds(q.Now)
	w := where{args: []any{today, tomorrow, q.Now}}
	w.scope("owner_id", q.Scope)
	if q.CreatedSince != nil {
		w.add("created_at >= ?", *q.CreatedSince)
	}
	query := `SELECT
				  COUNT(*),
				  COUNT(*) FILTER (WHERE status = 'completed'),
				  COUNT(*) FILTER (WHERE status = 'pending'),
				  COUNT(*) FILTER (WHERE status = 'in-progress'),
				  COUNT(*) FILTER (WHERE due_date >= $1 AND due_date < $2 AND status <> 'completed'),
				  COUNT(*) FILTER (WHERE priority = 'high'),
				  COUNT(*) FILTER (WHERE due_date < $3 AND status <> 'completed')
			  FROM tasks` + w.String()
	if err := s.DB.QueryRowContext(ctx, query, w.args...).Scan(
		&stats.TotalTasks, &stats.CompletedTasks, &stats.PendingTasks, &stats.InProgressTasks,
		&stats.TodayTasks, &stats.HighPriorityTasks, &stats.OverdueTasks); err != nil {
		return stats, fmt.Errorf("%s: %w", op, err)
	}
	return stats, nil
}

// StatusBreakdown возвращает количество задач в каждом статусе.
func (s *Storage) StatusBreakdown(ctx context.Context, scope models.Scope) ([]models.StatusCount, error) {
	const op = "storage.StatusBreakdown"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	var w where
	w.scope("owner_id", scope)
	rows, err := s.DB.QueryContext(ctx,
		`SELECT status, COUNT(*) FROM tasks`+w.String()+` GROUP BY status ORDER BY status`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := []models.StatusCount{}
	for rows.Next() {
		var c models.StatusCount
		if err = rows.Scan(&c.Status, &c.Count); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// TaskPoints возвращает статус, приоритет и дату создания задач,
// созданных не раньше since.
func (s *Storage) TaskPoints(ctx context.Context, scope models.Scope, since time.Time) ([]models.TaskPoint, error) {
	const op = "storage.TaskPoints"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	var w where
	w.scope("owner_id", scope)
	w.add("created_at >= ?", since)
	rows, err := s.DB.QueryContext(ctx,
		`SELECT status, priority, created_at FROM tasks`+w.String()+` ORDER BY created_at`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.TaskPoint
	for rows.Next() {
		var p models.TaskPoint
		if err = rows.Scan(&p.Status, &p.Priority, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// MonthlyExpenses группирует расходы всех пользователей по месяцам (UTC),
// начиная с since, в хронологическом порядке.
func (s *Storage) MonthlyExpenses(ctx context.Context, since time.Time) ([]models.MonthTotal, error) {
	const op = "storage.MonthlyExpenses"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT
				  EXTRACT(YEAR FROM tx_date AT TIME ZONE 'UTC')::int AS y,
				  EXTRACT(MONTH FROM tx_date AT TIME ZONE 'UTC')::int AS m,
				  SUM(amount), COUNT(*)
			  FROM transactions
			  WHERE kind = 'expense' AND tx_date >= $1
			  GROUP BY y, m
			  ORDER BY y, m`
	rows, err := s.DB.QueryContext(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := []models.MonthTotal{}
	for rows.Next() {
		var m models.MonthTotal
		if err = rows.Scan(&m.Year, &m.Month, &m.Total, &m.Count); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// TopSpenders возвращает limit пользователей с наибольшей суммой расходов
// в окне. При равной сумме выше тот, чья первая запись раньше.
func (s *Storage) TopSpenders(ctx context.Context, window period.Window, limit int) ([]models.TopSpender, error) {
	const op = "storage.TopSpenders"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT u.id, u.username, u.email, SUM(t.amount), COUNT(*)
			  FROM transactions t
			  JOIN users u ON u.id = t.owner_id
			  WHERE t.kind = 'expense' AND t.tx_date >= $1 AND t.tx_date <= $2
			  GROUP BY u.id, u.username, u.email
			  ORDER BY SUM(t.amount) DESC, MIN(t.created_at) ASC
			  LIMIT $3`
	rows, err := s.DB.QueryContext(ctx, query, window.Start, window.End, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := []models.TopSpender{}
	for rows.Next() {
		var t models.TopSpender
		if err = rows.Scan(&t.UserID, &t.Username, &t.Email, &t.TotalSpent, &t.TransactionCount); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// RegistrationTrend считает регистрации по дням (UTC), начиная с since.
func (s *Storage) RegistrationTrend(ctx context.Context, since time.Time) ([]models.DayCount, error) {
	const op = "storage.RegistrationTrend"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT to_char(created_at AT TIME ZONE 'UTC', 'YYYY-MM-DD') AS day, COUNT(*)
			  FROM users
			  WHERE created_at >= $1
			  GROUP BY day
			  ORDER BY day`
	rows, err := s.DB.QueryContext(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := []models.DayCount{}
	for rows.Next() {
		var d models.DayCount
		if err = rows.Scan(&d.Date, &d.Count); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, d)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ActiveUsers считает пользователей, у которых есть транзакция с датой в окне.
func (s *Storage) ActiveUsers(ctx context.Context, window period.Window) (int, error) {
	const op = "storage.ActiveUsers"
	if err := checkCtx(ctx, op); err != nil {
		return 0, err
	}

	var n int
	query := `SELECT COUNT(DISTINCT owner_id) FROM transactions WHERE tx_date >= $1 AND tx_date <= $2`
	if err := s.DB.QueryRowContext(ctx, query, window.Start, window.End).Scan(&n); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

// UserActivityStats возвращает вовлечённость каждого пользователя.
// Последняя активность - самая поздняя из даты регистрации, даты
// транзакции и создания задачи.
func (s *Storage) UserActivityStats(ctx context.Context) ([]models.UserActivityStat, error) {
	const op = "storage.UserActivityStats"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT u.id, u.username, u.email, u.created_at,
				  COALESCE(e.cnt, 0), COALESCE(k.cnt, 0),
				  GREATEST(u.created_at, e.last, k.last) AS last_activity
			  FROM users u
			  LEFT JOIN (SELECT owner_id, COUNT(*) AS cnt, MAX(tx_date) AS last
						 FROM transactions GROUP BY owner_id) e ON e.owner_id = u.id
			  LEFT JOIN (SELECT owner_id, COUNT(*) AS cnt, MAX(created_at) AS last
						 FROM tasks GROUP BY owner_id) k ON k.owner_id = u.id
			  ORDER BY last_activity DESC, u.created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := []models.UserActivityStat{}
	for rows.Next() {
		var u models.UserActivityStat
		if err = rows.Scan(&u.ID, &u.Username, &u.Email, &u.CreatedAt,
			&u.ExpenseCount, &u.TaskCount, &u.LastActivity); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

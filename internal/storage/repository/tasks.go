package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/magabrotheeeer/fintask/internal/models"
)

const taskColumns = `t.id, t.owner_id, t.title, t.description, t.due_date, t.status,
	t.priority, t.category, t.created_at, t.updated_at`

// Допустимые поля сортировки задач.
var taskSort = map[string]string{
	"dueDate":   "t.due_date",
	"title":     "t.title",
	"status":    "t.status",
	"priority":  "t.priority",
	"category":  "t.category",
	"createdAt": "t.created_at",
	"updatedAt": "t.updated_at",
}

func scanTask(row interface{ Scan(...any) error }, task *models.Task) error {
	return row.Scan(&task.ID, &task.OwnerID, &task.Title, &task.Description, &task.DueDate,
		&task.Status, &task.Priority, &task.Category, &task.CreatedAt, &task.UpdatedAt)
}

// CreateTask сохраняет новую задачу.
func (s *Storage) CreateTask(ctx context.Context, task *models.Task) error {
	const op = "storage.CreateTask"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	query := `INSERT INTO tasks (id, owner_id, title, description, due_date, status,
				  priority, category, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	if _, err := s.DB.ExecContext(ctx, query,
		task.ID, task.OwnerID, task.Title, task.Description, task.DueDate, task.Status,
		task.Priority, task.Category, task.CreatedAt, task.UpdatedAt); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetTask возвращает задачу владельца.
func (s *Storage) GetTask(ctx context.Context, scope models.Scope, id string) (*models.Task, error) {
	const op = "storage.GetTask"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	var w where
	w.add("t.id = ?", id)
	w.scope("t.owner_id", scope)
	task := &models.Task{}
	row := s.DB.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks t`+w.String(), w.args...)
	if err := scanTask(row, task); err != nil {
		return nil, mapError(op, err, "task not found")
	}
	return task, nil
}

// UpdateTask перезаписывает изменяемые поля задачи владельца.
func (s *Storage) UpdateTask(ctx context.Context, task *models.Task) error {
	const op = "storage.UpdateTask"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	query := `UPDATE tasks
			  SET title = $1, description = $2, due_date = $3, status = $4,
				  priority = $5, category = $6, updated_at = $7
			  WHERE id = $8 AND owner_id = $9`
	res, err := s.DB.ExecContext(ctx, query,
		task.Title, task.Description, task.DueDate, task.Status,
		task.Priority, task.Category, task.UpdatedAt, task.ID, task.OwnerID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return expectAffected(op, res, "task not found")
}

// DeleteTask удаляет задачу владельца.
func (s *Storage) DeleteTask(ctx context.Context, scope models.Scope, id string) error {
	const op = "storage.DeleteTask"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	var w where
	w.add("id = ?", id)
	w.scope("owner_id", scope)
	res, err := s.DB.ExecContext(ctx, `DELETE FROM tasks`+w.String(), w.args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return expectAffected(op, res, "task not found")
}

// DeleteTasksByOwner удаляет все задачи пользователя.
func (s *Storage) DeleteTasksByOwner(ctx context.Context, ownerID string) (int64, error) {
	const op = "storage.DeleteTasksByOwner"
	if err := checkCtx(ctx, op); err != nil {
		return 0, err
	}

	res, err := s.DB.ExecContext(ctx, `DELETE FROM tasks WHERE owner_id = $1`, ownerID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

// BulkUpdateTasks меняет статус, приоритет или категорию у задач из списка,
// принадлежащих владельцу. Чужие и несуществующие id пропускаются.
func (s *Storage) BulkUpdateTasks(ctx context.Context, ownerID string, upd models.BulkTaskUpdate) (int64, error) {
	const op = "storage.BulkUpdateTasks"
	if err := checkCtx(ctx, op); err != nil {
		return 0, err
	}

	var sets []string
	var args []any
	set := func(column string, value *string) {
		if value != nil {
			args = append(args, *value)
			sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
		}
	}
	set("status", upd.Status)
	set("priority", upd.Priority)
	set("category", upd.Category)
	if len(sets) == 0 {
		return 0, nil
	}
	sets = append(sets, "updated_at = now()")

	args = append(args, ownerID, upd.TaskIDs)
	query := fmt.Sprintf(`UPDATE tasks SET %s WHERE owner_id = $%d AND id = ANY($%d::uuid[])`,
		strings.Join(sets, ", "), len(args)-1, len(args))
	res, err := s.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

// BulkDeleteTasks удаляет задачи владельца из списка.
func (s *Storage) BulkDeleteTasks(ctx context.Context, ownerID string, ids []string) (int64, error) {
	const op = "storage.BulkDeleteTasks"
	if err := checkCtx(ctx, op); err != nil {
		return 0, err
	}

	res, err := s.DB.ExecContext(ctx,
		`DELETE FROM tasks WHERE owner_id = $1 AND id = ANY($2::uuid[])`, ownerID, ids)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

func taskWhere(filter models.TaskFilter) *where {
	w := &where{}
	w.scope("t.owner_id", filter.Scope)
	w.addIf("t.status", filter.Status)
	w.addIf("t.priority", filter.Priority)
	w.addIf("t.category", filter.Category)
	w.search(filter.Search, "t.title")
	return w
}

// ListTasks возвращает страницу задач по фильтру.
func (s *Storage) ListTasks(ctx context.Context, filter models.TaskFilter) (models.ListResult[models.Task], error) {
	const op = "storage.ListTasks"
	result := models.ListResult[models.Task]{Page: filter.Page}
	if err := checkCtx(ctx, op); err != nil {
		return result, err
	}

	w := taskWhere(filter)
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks t`+w.String(), w.args...).
		Scan(&result.Total); err != nil {
		return result, fmt.Errorf("%s: %w", op, err)
	}

	query := fmt.Sprintf(`SELECT %s, u.id, u.username, u.email
		FROM tasks t JOIN users u ON u.id = t.owner_id%s%s LIMIT $%d OFFSET $%d`,
		taskColumns, w.String(),
		orderBy(filter.Sort, taskSort, "t.due_date", "t.created_at DESC"),
		w.next(), w.next()+1)
	rows, err := s.DB.QueryContext(ctx, query, append(w.args, filter.Page.Size, filter.Page.Offset())...)
	if err != nil {
		return result, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result.Items = make([]models.Task, 0, filter.Page.Size)
	for rows.Next() {
		var task models.Task
		var owner models.OwnerRef
		if err = rows.Scan(&task.ID, &task.OwnerID, &task.Title, &task.Description, &task.DueDate,
			&task.Status, &task.Priority, &task.Category, &task.CreatedAt, &task.UpdatedAt,
			&owner.ID, &owner.Username, &owner.Email); err != nil {
			return result, fmt.Errorf("%s: %w", op, err)
		}
		if filter.Scope.IsGlobal() {
			task.Owner = &owner
		}
		result.Items = append(result.Items, task)
	}
	if err = rows.Err(); err != nil {
		return result, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpcomingTasks возвращает до limit задач с ближайшим сроком.
func (s *Storage) UpcomingTasks(ctx context.Context, scope models.Scope, limit int) ([]models.Task, error) {
	const op = "storage.UpcomingTasks"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	var w where
	w.scope("t.owner_id", scope)
	query := fmt.Sprintf(`SELECT %s FROM tasks t%s ORDER BY t.due_date ASC, t.created_at ASC LIMIT $%d`,
		taskColumns, w.String(), w.next())
	rows, err := s.DB.QueryContext(ctx, query, append(w.args, limit)...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]models.Task, 0, limit)
	for rows.Next() {
		var task models.Task
		if err = scanTask(rows, &task); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, task)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

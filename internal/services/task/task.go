// Package services реализует операции над задачами пользователя, включая
// массовое изменение и удаление.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator"
	"github.com/google/uuid"

	"github.com/magabrotheeeer/fintask/internal/cache"
	"github.com/magabrotheeeer/fintask/internal/lib/apperr"
	"github.com/magabrotheeeer/fintask/internal/lib/policy"
	"github.com/magabrotheeeer/fintask/internal/lib/sl"
	"github.com/magabrotheeeer/fintask/internal/models"
)

const resource = "task"

// TaskRepository определяет методы для работы с задачами в хранилище.
type TaskRepository interface {
	CreateTask(ctx context.Context, task *models.Task) error
	GetTask(ctx context.Context, scope models.Scope, id string) (*models.Task, error)
	UpdateTask(ctx context.Context, task *models.Task) error
	DeleteTask(ctx context.Context, scope models.Scope, id string) error
	DeleteTasksByOwner(ctx context.Context, ownerID string) (int64, error)
	ListTasks(ctx context.Context, filter models.TaskFilter) (models.ListResult[models.Task], error)
	BulkUpdateTasks(ctx context.Context, ownerID string, upd models.BulkTaskUpdate) (int64, error)
	BulkDeleteTasks(ctx context.Context, ownerID string, ids []string) (int64, error)
	StatusBreakdown(ctx context.Context, scope models.Scope) ([]models.StatusCount, error)
}

// Cache сбрасывает закэшированные сводки владельца.
type Cache interface {
	InvalidatePrefix(ctx context.Context, prefix string) error
}

// TaskService реализует операции над задачами.
type TaskService struct {
	repo     TaskRepository
	cache    Cache
	log      *slog.Logger
	validate *validator.Validate
	now      func() time.Time
}

// NewTaskService создает новый экземпляр TaskService.
func NewTaskService(repo TaskRepository, cache Cache, log *slog.Logger) *TaskService {
	return &TaskService{
		repo:     repo,
		cache:    cache,
		log:      log,
		validate: models.NewValidator(),
		now:      time.Now,
	}
}

// Create сохраняет задачу. Незаданные статус, приоритет и категория
// получают значения по умолчанию.
func (s *TaskService) Create(ctx context.Context, ownerID string, req models.TaskRequest) (*models.Task, error) {
	const op = "services.task.Create"

	req.Title = strings.TrimSpace(req.Title)
	if err := models.Validate(s.validate, req); err != nil {
		return nil, err
	}
	due, err := models.ParseTime(req.DueDate)
	if err != nil {
		return nil, apperr.Validation("%s", err.Error())
	}

	now := s.now().UTC()
	task := &models.Task{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     due,
		Status:      orDefault(req.Status, models.DefaultTaskStatus),
		Priority:    orDefault(req.Priority, models.DefaultTaskPriority),
		Category:    orDefault(req.Category, models.DefaultTaskCategory),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err = s.repo.CreateTask(ctx, task); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("task created", slog.String("id", task.ID), slog.String("owner", ownerID))
	s.invalidate(ctx, ownerID)
	return task, nil
}

// Get возвращает задачу, только если она принадлежит ownerID.
func (s *TaskService) Get(ctx context.Context, ownerID, id string) (*models.Task, error) {
	const op = "services.task.Get"

	if _, err := uuid.Parse(id); err != nil {
		return nil, apperr.NotFound("%s not found", resource)
	}
	task, err := s.repo.GetTask(ctx, models.GlobalScope(), id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = policy.AuthorizeOwner(task.OwnerID, ownerID, resource); err != nil {
		return nil, err
	}
	return task, nil
}

// Update применяет к задаче непустые поля patch.
func (s *TaskService) Update(ctx context.Context, ownerID, id string, patch models.TaskPatch) (*models.Task, error) {
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, apperr.Validation("title: must not be empty")
		}
		patch.Title = &title
	}
	if err := models.Validate(s.validate, patch); err != nil {
		return nil, err
	}
	task, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.DueDate != nil {
		due, err := models.ParseTime(*patch.DueDate)
		if err != nil {
			return nil, apperr.Validation("%s", err.Error())
		}
		task.DueDate = due
	}
	if patch.Status != nil {
		task.Status = *patch.Status
	}
	if patch.Priority != nil {
		task.Priority = *patch.Priority
	}
	if patch.Category != nil {
		task.Category = *patch.Category
	}
	return s.save(ctx, task)
}

// UpdateStatus меняет только статус задачи.
func (s *TaskService) UpdateStatus(ctx context.Context, ownerID, id string, req models.TaskStatusRequest) (*models.Task, error) {
	if err := models.Validate(s.validate, req); err != nil {
		return nil, err
	}
	task, err := s.Get(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	task.Status = req.Status
	return s.save(ctx, task)
}

func (s *TaskService) save(ctx context.Context, task *models.Task) (*models.Task, error) {
	const op = "services.task.save"

	task.UpdatedAt = s.now().UTC()
	if err := s.repo.UpdateTask(ctx, task); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.invalidate(ctx, task.OwnerID)
	return task, nil
}

// Delete удаляет задачу владельца.
func (s *TaskService) Delete(ctx context.Context, ownerID, id string) error {
	const op = "services.task.Delete"

	if _, err := uuid.Parse(id); err != nil {
		return apperr.NotFound("%s not found", resource)
	}
	if err := s.repo.DeleteTask(ctx, models.OwnerScope(ownerID), id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.invalidate(ctx, ownerID)
	return nil
}

// DeleteAllForOwner удаляет все задачи пользователя без проверки владельца.
func (s *TaskService) DeleteAllForOwner(ctx context.Context, ownerID string) (int64, error) {
	const op = "services.task.DeleteAllForOwner"

	n, err := s.repo.DeleteTasksByOwner(ctx, ownerID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	s.invalidate(ctx, ownerID)
	return n, nil
}

// List возвращает страницу задач по фильтру.
func (s *TaskService) List(ctx context.Context, filter models.TaskFilter) (models.ListResult[models.Task], error) {
	const op = "services.task.List"

	res, err := s.repo.ListTasks(ctx, filter)
	if err != nil {
		return res, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

// BulkUpdate меняет поля у задач владельца из списка и возвращает число
// измененных. Чужие id молча пропускаются.
func (s *TaskService) BulkUpdate(ctx context.Context, ownerID string, upd models.BulkTaskUpdate) (int64, error) {
	const op = "services.task.BulkUpdate"

	if err := models.Validate(s.validate, upd); err != nil {
		return 0, err
	}
	if upd.IsEmpty() {
		return 0, apperr.Validation("nothing to update: set status, priority or category")
	}

	n, err := s.repo.BulkUpdateTasks(ctx, ownerID, upd)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("tasks updated in bulk", slog.String("owner", ownerID), slog.Int64("count", n))
	s.invalidate(ctx, ownerID)
	return n, nil
}

// BulkDelete удаляет задачи владельца из списка и возвращает число удаленных.
func (s *TaskService) BulkDelete(ctx context.Context, ownerID string, req models.BulkTaskDelete) (int64, error) {
	const op = "services.task.BulkDelete"

	if err := models.Validate(s.validate, req); err != nil {
		return 0, err
	}
	n, err := s.repo.BulkDeleteTasks(ctx, ownerID, req.IDs)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("tasks deleted in bulk", slog.String("owner", ownerID), slog.Int64("count", n))
	s.invalidate(ctx, ownerID)
	return n, nil
}

// Summary возвращает количество задач владельца по статусам.
func (s *TaskService) Summary(ctx context.Context, ownerID string) (*models.TaskSummary, error) {
	const op = "services.task.Summary"

	breakdown, err := s.repo.StatusBreakdown(ctx, models.OwnerScope(ownerID))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	summary := &models.TaskSummary{StatusBreakdown: breakdown}
	for _, c := range breakdown {
		summary.TotalTasks += c.Count
		if c.Status == models.StatusCompleted {
			summary.CompletedTasks += c.Count
		}
	}
	summary.PendingTasks = summary.TotalTasks - summary.CompletedTasks
	return summary, nil
}

func (s *TaskService) invalidate(ctx context.Context, ownerID string) {
	if err := s.cache.InvalidatePrefix(ctx, cache.OwnerPrefix(ownerID)); err != nil {
		s.log.Warn("failed to invalidate summary cache", slog.String("owner", ownerID), sl.Err(err))
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// Package services реализует административные операции: глобальную
// статистику, списки по всем пользователям, изменение и каскадное удаление
// пользователей.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator"
	"github.com/google/uuid"

	"github.com/magabrotheeeer/fintask/internal/lib/apperr"
	"github.com/magabrotheeeer/fintask/internal/lib/period"
	"github.com/magabrotheeeer/fintask/internal/lib/sl"
	"github.com/magabrotheeeer/fintask/internal/models"
	"github.com/magabrotheeeer/fintask/internal/rabbitmq"
)

// Параметры аналитики.
const (
	TopSpendersLimit = 10
	RecentUsersDays  = 30
)

// Repository определяет запросы к хранилищу без ограничения владельцем.
type Repository interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
	ListUsers(ctx context.Context, filter models.UserFilter) (models.ListResult[models.User], error)
	UpdateUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, id string) error
	CountUsers(ctx context.Context, since time.Time) (total, recent int, err error)

	ListTransactions(ctx context.Context, filter models.TransactionFilter) (models.ListResult[models.Transaction], error)
	ListTasks(ctx context.Context, filter models.TaskFilter) (models.ListResult[models.Task], error)

	Totals(ctx context.Context, scope models.Scope, window *period.Window) (models.Totals, error)
	TaskStats(ctx context.Context, q models.TaskStatsQuery) (models.TaskStats, error)
	CategoryTotals(ctx context.Context, scope models.Scope, window *period.Window) ([]models.CategoryTotal, error)
	MonthlyExpenses(ctx context.Context, since time.Time) ([]models.MonthTotal, error)
	TopSpenders(ctx context.Context, window period.Window, limit int) ([]models.TopSpender, error)
	RegistrationTrend(ctx context.Context, since time.Time) ([]models.DayCount, error)
	ActiveUsers(ctx context.Context, window period.Window) (int, error)
	UserActivityStats(ctx context.Context) ([]models.UserActivityStat, error)
}

// OwnerPurger удаляет все записи пользователя одного вида.
type OwnerPurger interface {
	DeleteAllForOwner(ctx context.Context, ownerID string) (int64, error)
}

// EventPublisher публикует события аудита.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, message any) error
}

// AdminService реализует операции администратора.
type AdminService struct {
	repo         Repository
	transactions OwnerPurger
	tasks        OwnerPurger
	events       EventPublisher
	log          *slog.Logger
	validate     *validator.Validate
	now          func() time.Time
}

// NewAdminService создает новый экземпляр AdminService.
func NewAdminService(repo Repository, transactions, tasks OwnerPurger, events EventPublisher, log *slog.Logger) *AdminService {
	return &AdminService{
		repo:         repo,
		transactions: transactions,
		tasks:        tasks,
		events:       events,
		log:          log,
		validate:     models.NewValidator(),
		now:          time.Now,
	}
}

// Stats возвращает общие показатели системы за все время.
func (s *AdminService) Stats(ctx context.Context) (*models.AdminStats, error) {
	const op = "services.admin.Stats"

	now := s.now().UTC()
	total, recent, err := s.repo.CountUsers(ctx, now.AddDate(0, 0, -RecentUsersDays))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	totals, err := s.repo.Totals(ctx, models.GlobalScope(), nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	tasks, err := s.repo.TaskStats(ctx, models.TaskStatsQuery{Scope: models.GlobalScope(), Now: now})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	stats := &models.AdminStats{}
	stats.Users.Total = total
	stats.Users.Recent = recent
	stats.Financial.TotalIncome = totals.Income
	stats.Financial.TotalExpenses = totals.Expense
	stats.Financial.NetBalance = totals.Net()
	stats.Tasks.Total = tasks.TotalTasks
	stats.Tasks.Completed = tasks.CompletedTasks
	stats.Tasks.Pending = tasks.PendingTasks
	return stats, nil
}

// Users возвращает страницу пользователей, новые первыми.
func (s *AdminService) Users(ctx context.Context, filter models.UserFilter) (models.ListResult[models.User], error) {
	const op = "services.admin.Users"

	res, err := s.repo.ListUsers(ctx, filter)
	if err != nil {
		return res, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

// Expenses возвращает транзакции всех пользователей с данными владельца.
func (s *AdminService) Expenses(ctx context.Context, filter models.TransactionFilter) (models.ListResult[models.Transaction], error) {
	const op = "services.admin.Expenses"

	filter.Scope = models.GlobalScope()
	res, err := s.repo.ListTransactions(ctx, filter)
	if err != nil {
		return res, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

// Tasks возвращает задачи всех пользователей с данными владельца.
func (s *AdminService) Tasks(ctx context.Context, filter models.TaskFilter) (models.ListResult[models.Task], error) {
	const op = "services.admin.Tasks"

	filter.Scope = models.GlobalScope()
	res, err := s.repo.ListTasks(ctx, filter)
	if err != nil {
		return res, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

// DeleteUser удаляет пользователя вместе с его транзакциями и задачами.
// Удалить собственную учетную запись нельзя.
func (s *AdminService) DeleteUser(ctx context.Context, actorID, id string) error {
	const op = "services.admin.DeleteUser"

	if _, err := uuid.Parse(id); err != nil {
		return apperr.NotFound("user not found")
	}
	if id == actorID {
		return apperr.Validation("cannot delete your own account")
	}
	user, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	txCount, err := s.transactions.DeleteAllForOwner(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	taskCount, err := s.tasks.DeleteAllForOwner(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err = s.repo.DeleteUser(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("user deleted",
		slog.String("id", id),
		slog.String("actor", actorID),
		slog.Int64("transactions", txCount),
		slog.Int64("tasks", taskCount),
	)
	s.publish(ctx, rabbitmq.UserDeleted, user, actorID)
	return nil
}

// UpdateUser меняет имя, email и роль пользователя. Пустые поля сохраняют
// прежние значения, занятый email дает apperr.ErrConflict.
func (s *AdminService) UpdateUser(ctx context.Context, actorID, id string, upd models.UserUpdate) (*models.User, error) {
	const op = "services.admin.UpdateUser"

	upd.Username = strings.TrimSpace(upd.Username)
	upd.Email = strings.ToLower(strings.TrimSpace(upd.Email))
	if err := models.Validate(s.validate, upd); err != nil {
		return nil, err
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperr.NotFound("user not found")
	}

	user, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if upd.Username != "" {
		user.Username = upd.Username
	}
	if upd.Email != "" {
		user.Email = upd.Email
	}
	if upd.Role != "" {
		user.Role = upd.Role
	}
	if err = s.repo.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("user updated", slog.String("id", id), slog.String("actor", actorID))
	s.publish(ctx, rabbitmq.UserUpdated, user, actorID)
	return user, nil
}

func (s *AdminService) publish(ctx context.Context, event string, user *models.User, actorID string) {
	err := s.events.Publish(ctx, event, rabbitmq.UserEvent{
		Event:     event,
		UserID:    user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Role:      user.Role,
		ActorID:   actorID,
		Timestamp: s.now().UTC(),
	})
	if err != nil {
		s.log.Warn("failed to publish user event", slog.String("event", event), sl.Err(err))
	}
}

// ExpenseAnalytics возвращает распределение расходов периода по категориям,
// помесячную динамику с начала года и десять пользователей с наибольшими
// расходами за период.
func (s *AdminService) ExpenseAnalytics(ctx context.Context, p period.Name) (*models.ExpenseAnalytics, error) {
	const op = "services.admin.ExpenseAnalytics"

	now := s.now().UTC()
	window := period.Resolve(p, now)

	categories, err := s.repo.CategoryTotals(ctx, models.GlobalScope(), &window)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	monthly, err := s.repo.MonthlyExpenses(ctx, period.YearStart(now))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	top, err := s.repo.TopSpenders(ctx, window, TopSpendersLimit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &models.ExpenseAnalytics{
		CategoryDistribution: categories,
		MonthlyTrend:         monthly,
		TopUsers:             top,
	}, nil
}

// UserActivity возвращает регистрации по дням, число активных пользователей
// за период и вовлеченность каждого пользователя.
func (s *AdminService) UserActivity(ctx context.Context, p period.Name) (*models.UserActivity, error) {
	const op = "services.admin.UserActivity"

	window := period.Resolve(p, s.now().UTC())

	trend, err := s.repo.RegistrationTrend(ctx, window.Start)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	active, err := s.repo.ActiveUsers(ctx, window)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	stats, err := s.repo.UserActivityStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &models.UserActivity{
		RegistrationTrend: trend,
		ActiveUsers:       active,
		UserStats:         stats,
	}, nil
}

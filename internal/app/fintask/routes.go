// Package fintask собирает HTTP-приложение: хранилище, кэш, публикацию
// событий, сервисы и маршруты.
package fintask

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	adminexpenses "github.com/magabrotheeeer/fintask/internal/http/handlers/admin/expenses"
	"github.com/magabrotheeeer/fintask/internal/http/handlers/admin/expenseanalytics"
	"github.com/magabrotheeeer/fintask/internal/http/handlers/admin/removeuser"
	adminstats "github.com/magabrotheeeer/fintask/internal/http/handlers/admin/stats"
	admintasks "github.com/magabrotheeeer/fintask/internal/http/handlers/admin/tasks"
	"github.com/magabrotheeeer/fintask/internal/http/handlers/admin/updateuser"
	"github.com/magabrotheeeer/fintask/internal/http/handlers/admin/useractivity"
	adminusers "github.com/magabrotheeeer/fintask/internal/http/handlers/admin/users"
	"github.com/magabrotheeeer/fintask/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/fintask/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/fintask/internal/http/handlers/dashboard/expensechart"
	"github.com/magabrotheeeer/fintask/internal/http/handlers/dashboard/financialstats"
	"github.com/magabrotheeeer/fintask/internal/http/handlers/dashboard/overview"
	"github.com/magabrotheeeer/fintask/internal/http/handlers/dashboard/recent"
	"github.com/magabrotheeeer/fintask/internal/http/handlers/dashboard/taskprogress"
	"github.com/magabrotheeeer/fintask/internal/http/handlers/dashboard/taskstats"
	expensecreate "github.com/magabrotheeeer/fintask/internal/http/handlers/expense/create"
	expenselist "github.com/magabrotheeeer/fintask/internal/http/handlers/expense/list"
	expenseread "github.com/magabrotheeeer/fintask/internal/http/handlers/expense/read"
	expenseremove "github.com/magabrotheeeer/fintask/internal/http/handlers/expense/remove"
	expensesummary "github.com/magabrotheeeer/fintask/internal/http/handlers/expense/summary"
	expenseupdate "github.com/magabrotheeeer/fintask/internal/http/handlers/expense/update"
	"github.com/magabrotheeeer/fintask/internal/http/handlers/health"
	"github.com/magabrotheeeer/fintask/internal/http/handlers/task/bulkdelete"
	"github.com/magabrotheeeer/fintask/internal/http/handlers/task/bulkupdate"
	taskcreate "github.com/magabrotheeeer/fintask/internal/http/handlers/task/create"
	tasklist "github.com/magabrotheeeer/fintask/internal/http/handlers/task/list"
	taskread "github.com/magabrotheeeer/fintask/internal/http/handlers/task/read"
	taskremove "github.com/magabrotheeeer/fintask/internal/http/handlers/task/remove"
	taskstatus "github.com/magabrotheeeer/fintask/internal/http/handlers/task/status"
	tasksummary "github.com/magabrotheeeer/fintask/internal/http/handlers/task/summary"
	taskupdate "github.com/magabrotheeeer/fintask/internal/http/handlers/task/update"
	"github.com/magabrotheeeer/fintask/internal/http/middlewarectx"
)

// AuthService регистрация, вход и проверка токенов.
type AuthService interface {
	register.Service
	login.Service
	middlewarectx.Authenticator
}

// ExpenseService операции над транзакциями владельца.
type ExpenseService interface {
	expensecreate.Service
	expenselist.Service
	expenseread.Service
	expenseupdate.Service
	expenseremove.Service
}

// TaskService операции над задачами владельца.
type TaskService interface {
	taskcreate.Service
	tasklist.Service
	taskread.Service
	taskupdate.Service
	taskremove.Service
	taskstatus.Service
	bulkupdate.Service
	bulkdelete.Service
	tasksummary.Service
}

// DashboardService сводки и статистика владельца.
type DashboardService interface {
	overview.Service
	taskstats.Service
	recent.Service
	expensechart.Service
	taskprogress.Service
}

// AdminService глобальные списки, управление пользователями и аналитика.
type AdminService interface {
	adminstats.Service
	adminusers.Service
	adminexpenses.Service
	admintasks.Service
	removeuser.Service
	updateuser.Service
	expenseanalytics.Service
	useractivity.Service
}

// Deps зависимости маршрутов.
type Deps struct {
	Auth        AuthService
	Expenses    ExpenseService
	Tasks       TaskService
	Dashboard   DashboardService
	Admin       AdminService
	DB          health.Pinger
	AuthLimiter *middlewarectx.RateLimiter
	Metrics     *middlewarectx.Metrics
	MetricsHTTP http.Handler
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, d Deps) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middleware.Recoverer,
	)
	if d.Metrics != nil {
		r.Use(d.Metrics.Middleware)
	}

	r.Route("/api", func(r chi.Router) {
		// Открытые конечные точки
		r.Group(func(r chi.Router) {
			if d.AuthLimiter != nil {
				r.Use(d.AuthLimiter.Middleware(logger))
			}
			r.Post("/auth/register", register.New(logger, d.Auth).ServeHTTP)
			r.Post("/auth/login", login.New(logger, d.Auth).ServeHTTP)
		})

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(d.Auth, logger))

			r.Get("/expenses", expenselist.New(logger, d.Expenses).ServeHTTP)
			r.Post("/expenses", expensecreate.New(logger, d.Expenses).ServeHTTP)
			r.Get("/expenses/summary", expensesummary.New(logger, d.Dashboard).ServeHTTP)
			r.Get("/expenses/{id}", expenseread.New(logger, d.Expenses).ServeHTTP)
			r.Put("/expenses/{id}", expenseupdate.New(logger, d.Expenses).ServeHTTP)
			r.Delete("/expenses/{id}", expenseremove.New(logger, d.Expenses).ServeHTTP)

			r.Get("/task", tasklist.New(logger, d.Tasks).ServeHTTP)
			r.Post("/task", taskcreate.New(logger, d.Tasks).ServeHTTP)
			r.Get("/task/summary", tasksummary.New(logger, d.Tasks).ServeHTTP)
			r.Patch("/task/bulk-update", bulkupdate.New(logger, d.Tasks).ServeHTTP)
			r.Post("/task/bulk-delete", bulkdelete.New(logger, d.Tasks).ServeHTTP)
			r.Get("/task/{id}", taskread.New(logger, d.Tasks).ServeHTTP)
			r.Put("/task/{id}", taskupdate.New(logger, d.Tasks).ServeHTTP)
			r.Delete("/task/{id}", taskremove.New(logger, d.Tasks).ServeHTTP)
			r.Patch("/task/{id}/status", taskstatus.New(logger, d.Tasks).ServeHTTP)

			r.Get("/dashboard/overview", overview.New(logger, d.Dashboard).ServeHTTP)
			r.Get("/dashboard/financial-stats", financialstats.New(logger, d.Dashboard).ServeHTTP)
			r.Get("/dashboard/task-stats", taskstats.New(logger, d.Dashboard).ServeHTTP)
			r.Get("/dashboard/recent-activities", recent.New(logger, d.Dashboard).ServeHTTP)
			r.Get("/dashboard/expense-chart", expensechart.New(logger, d.Dashboard).ServeHTTP)
			r.Get("/dashboard/task-progress", taskprogress.New(logger, d.Dashboard).ServeHTTP)

			// Только для администраторов
			r.Route("/admin", func(r chi.Router) {
				r.Use(middlewarectx.RequireAdmin(logger))
				r.Get("/stats", adminstats.New(logger, d.Admin).ServeHTTP)
				r.Get("/users", adminusers.New(logger, d.Admin).ServeHTTP)
				r.Delete("/users/{id}", removeuser.New(logger, d.Admin).ServeHTTP)
				r.Put("/users/{id}", updateuser.New(logger, d.Admin).ServeHTTP)
				r.Get("/expenses", adminexpenses.New(logger, d.Admin).ServeHTTP)
				r.Get("/tasks", admintasks.New(logger, d.Admin).ServeHTTP)
				r.Get("/analytics/expenses", expenseanalytics.New(logger, d.Admin).ServeHTTP)
				r.Get("/analytics/user-activity", useractivity.New(logger, d.Admin).ServeHTTP)
			})
		})
	})

	r.Get("/health", health.New(logger, d.DB).ServeHTTP)
	if d.MetricsHTTP != nil {
		r.Handle("/metrics", d.MetricsHTTP)
	}
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}

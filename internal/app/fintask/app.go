package fintask

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/fintask/internal/cache"
	"github.com/magabrotheeeer/fintask/internal/config"
	"github.com/magabrotheeeer/fintask/internal/http/middlewarectx"
	"github.com/magabrotheeeer/fintask/internal/lib/jwt"
	"github.com/magabrotheeeer/fintask/internal/lib/sl"
	"github.com/magabrotheeeer/fintask/internal/migrations"
	"github.com/magabrotheeeer/fintask/internal/rabbitmq"
	adminservice "github.com/magabrotheeeer/fintask/internal/services/admin"
	authservice "github.com/magabrotheeeer/fintask/internal/services/auth"
	dashboardservice "github.com/magabrotheeeer/fintask/internal/services/dashboard"
	expenseservice "github.com/magabrotheeeer/fintask/internal/services/expense"
	taskservice "github.com/magabrotheeeer/fintask/internal/services/task"
	"github.com/magabrotheeeer/fintask/internal/storage/repository"
)

const (
	shutdownTimeout = 15 * time.Second
	amqpRetries     = 5
	amqpRetryDelay  = 2 * time.Second
)

// Publisher публикует события аудита.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, message any) error
}

// App HTTP сервер со всеми зависимостями.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  *cache.Cache
	amqp   *amqp.Connection
}

// New подключается к хранилищам, применяет миграции и собирает маршруты.
// Redis и RabbitMQ необязательны: при пустом адресе используются Noop
// реализации.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		_ = db.Close()
		return nil, err
	}

	app := &App{logger: logger, db: db}

	var store cache.Store = cache.Noop{}
	if cfg.AddressRedis != "" {
		app.cache, err = cache.InitServer(ctx, cfg.RedisConnection)
		if err != nil {
			app.close()
			return nil, err
		}
		store = app.cache
	} else {
		logger.Warn("redis address is empty, summary caching disabled")
	}

	var events Publisher = rabbitmq.Noop{}
	if cfg.RabbitMQ.URL != "" {
		app.amqp, err = rabbitmq.Connect(cfg.RabbitMQ.URL, amqpRetries, amqpRetryDelay)
		if err != nil {
			app.close()
			return nil, err
		}
		ch, err := rabbitmq.SetupChannel(app.amqp, cfg.Exchange)
		if err != nil {
			app.close()
			return nil, err
		}
		events = rabbitmq.NewPublisher(ch, cfg.Exchange)
	} else {
		logger.Warn("rabbitmq url is empty, audit events disabled")
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	authService := authservice.NewAuthService(db, jwtMaker, events, logger)
	expenseService := expenseservice.NewExpenseService(db, store, logger)
	taskService := taskservice.NewTaskService(db, store, logger)
	dashboardService := dashboardservice.NewDashboardService(db, store, cfg.SummaryTTL, logger)
	adminService := adminservice.NewAdminService(db, expenseService, taskService, events, logger)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, Deps{
		Auth:        authService,
		Expenses:    expenseService,
		Tasks:       taskService,
		Dashboard:   dashboardService,
		Admin:       adminService,
		DB:          db,
		AuthLimiter: middlewarectx.NewRateLimiter(cfg.RPS, cfg.Burst),
		Metrics:     middlewarectx.NewMetrics(reg),
		MetricsHTTP: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	})

	app.server = &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return app, nil
}

// Run запускает сервер и останавливает его при отмене ctx.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.close()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.close()
		if err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

func (a *App) close() {
	if a.amqp != nil {
		if err := a.amqp.Close(); err != nil {
			a.logger.Error("failed to close rabbitmq connection", sl.Err(err))
		}
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Error("failed to close redis client", sl.Err(err))
		}
	}
	if err := a.db.Close(); err != nil {
		a.logger.Error("failed to close database", sl.Err(err))
	}
}

// Package recent реализует HTTP-обработчик ленты последних транзакций и
// ближайших задач.
package recent

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/fintask/internal/http/middlewarectx"
	"github.com/magabrotheeeer/fintask/internal/http/request"
	"github.com/magabrotheeeer/fintask/internal/http/response"
	"github.com/magabrotheeeer/fintask/internal/lib/sl"
	"github.com/magabrotheeeer/fintask/internal/models"
	services "github.com/magabrotheeeer/fintask/internal/services/dashboard"
)

// Handler обрабатывает запросы ленты.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Последние события
// @Description Последние по дате транзакции и ближайшие по сроку задачи.
// @Tags Dashboard
// @Security BearerAuth
// @Produce  json
// @Param limit query int false "Размер каждого списка" default(6)
// @Success 200 {object} response.Response{data=models.RecentActivity}
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /dashboard/recent-activities [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.dashboard.recent"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	user, ok := middlewarectx.UserFrom(r.Context())
	if !ok {
		log.Error("user not found in context")
		response.Fail(w, r, http.StatusUnauthorized, "unauthorized")
		return
	}

	limit := request.Int(r, "limit", services.DefaultRecentLimit)
	activity, err := h.service.RecentActivity(r.Context(), user.ID, limit)
	if err != nil {
		log.Error("failed to load recent activity", sl.Err(err))
		response.FailWithError(w, r, err)
		return
	}
	if activity.Expenses == nil {
		activity.Expenses = []models.TransactionActivity{}
	}
	if activity.Tasks == nil {
		activity.Tasks = []models.TaskActivity{}
	}

	response.OK(w, r, http.StatusOK, activity)
}

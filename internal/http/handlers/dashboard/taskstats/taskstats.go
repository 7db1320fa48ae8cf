// Package taskstats реализует HTTP-обработчик статистики задач,
// созданных с начала периода.
package taskstats

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/fintask/internal/http/middlewarectx"
	"github.com/magabrotheeeer/fintask/internal/http/request"
	"github.com/magabrotheeeer/fintask/internal/http/response"
	"github.com/magabrotheeeer/fintask/internal/lib/sl"
	"github.com/magabrotheeeer/fintask/internal/models"
)

// Handler обрабатывает запросы статистики задач.
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

// Result - статистика задач и период, за который она посчитана.
type Result struct {
	models.TaskStats
	Period string `json:"period"`
}

// ServeHTTP godoc
// @Summary Статистика задач
// @Tags Dashboard
// @Security BearerAuth
// @Produce  json
// @Param period query string false "week, month, quarter или year" default(month)
// @Success 200 {object} response.Response{data=Result}
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /dashboard/task-stats [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.dashboard.taskstats"

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

	p := request.Period(r)
	stats, err := h.service.TaskStats(r.Context(), user.ID, p)
	if err != nil {
		log.Error("failed to count task stats", sl.Err(err))
		response.FailWithError(w, r, err)
		return
	}

	response.OK(w, r, http.StatusOK, Result{TaskStats: stats, Period: string(p)})
}

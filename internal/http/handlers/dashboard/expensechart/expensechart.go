// Package expensechart реализует HTTP-обработчик данных диаграммы расходов
// по категориям.
package expensechart

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

// Handler обрабатывает запросы диаграммы.
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
// @Summary Диаграмма расходов
// @Tags Dashboard
// @Security BearerAuth
// @Produce  json
// @Param period query string false "week, month, quarter или year" default(month)
// @Success 200 {object} response.Response{data=models.ExpenseChart}
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /dashboard/expense-chart [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.dashboard.expensechart"

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

	chart, err := h.service.ExpenseChart(r.Context(), user.ID, request.Period(r))
	if err != nil {
		log.Error("failed to build expense chart", sl.Err(err))
		response.FailWithError(w, r, err)
		return
	}
	if chart.Categories == nil {
		chart.Categories = []models.ChartPoint{}
	}

	response.OK(w, r, http.StatusOK, chart)
}

// Package expenseanalytics реализует HTTP-обработчик глобальной аналитики
// расходов: категории за период, помесячная динамика с начала года и
// пользователи с наибольшими расходами.
package expenseanalytics

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/fintask/internal/http/request"
	"github.com/magabrotheeeer/fintask/internal/http/response"
	"github.com/magabrotheeeer/fintask/internal/lib/sl"
	"github.com/magabrotheeeer/fintask/internal/models"
)

// Handler обрабатывает запросы аналитики расходов.
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
// @Summary Аналитика расходов
// @Tags Admin
// @Security BearerAuth
// @Produce  json
// @Param period query string false "week, month, quarter или year" default(month)
// @Success 200 {object} response.Response{data=models.ExpenseAnalytics}
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Требуется роль администратора"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /admin/analytics/expenses [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.expenseanalytics"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	a, err := h.service.ExpenseAnalytics(r.Context(), request.Period(r))
	if err != nil {
		log.Error("failed to build expense analytics", sl.Err(err))
		response.FailWithError(w, r, err)
		return
	}
	if a.CategoryDistribution == nil {
		a.CategoryDistribution = []models.CategoryTotal{}
	}
	if a.MonthlyTrend == nil {
		a.MonthlyTrend = []models.MonthTotal{}
	}
	if a.TopUsers == nil {
		a.TopUsers = []models.TopSpender{}
	}

	response.OK(w, r, http.StatusOK, a)
}

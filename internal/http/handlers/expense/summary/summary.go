// Package summary реализует HTTP-обработчик финансовой сводки за период:
// суммы, изменения относительно предыдущего периода и разбивку расходов
// по категориям.
package summary

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/fintask/internal/http/middlewarectx"
	"github.com/magabrotheeeer/fintask/internal/http/request"
	"github.com/magabrotheeeer/fintask/internal/http/response"
	"github.com/magabrotheeeer/fintask/internal/lib/sl"
	"github.com/magabrotheeeer/fintask/internal/models"
)

// Handler обрабатывает запросы финансовой сводки.
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

// Result - финансовая часть сводки.
type Result struct {
	Summary           models.FinancialSummary `json:"summary"`
	CategoryBreakdown []models.CategoryTotal  `json:"categoryBreakdown"`
	Period            string                  `json:"period"`
	StartDate         time.Time               `json:"startDate"`
	EndDate           time.Time               `json:"endDate"`
}

// ServeHTTP godoc
// @Summary Финансовая сводка
// @Description Суммы доходов и расходов за период, изменение к предыдущему периоду той же длины и расходы по категориям.
// @Tags Expenses
// @Security BearerAuth
// @Produce  json
// @Param period query string false "week, month, quarter или year" default(month)
// @Success 200 {object} response.Response{data=Result}
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /expenses/summary [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.expense.summary"

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
	s, err := h.service.Summarize(r.Context(), models.OwnerScope(user.ID), p)
	if err != nil {
		log.Error("failed to build summary", slog.String("period", string(p)), sl.Err(err))
		response.FailWithError(w, r, err)
		return
	}

	breakdown := s.CategoryBreakdown
	if breakdown == nil {
		breakdown = []models.CategoryTotal{}
	}
	response.OK(w, r, http.StatusOK, Result{
		Summary:           s.Financial,
		CategoryBreakdown: breakdown,
		Period:            s.Period,
		StartDate:         s.StartDate,
		EndDate:           s.EndDate,
	})
}

// Package overview реализует HTTP-обработчик главной страницы дашборда:
// финансовые показатели за период и статистику по всем задачам.
package overview

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

// Handler обрабатывает запросы обзора.
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

// Result - данные обзора.
type Result struct {
	FinancialStats models.FinancialSummary `json:"financialStats"`
	TaskStats      models.TaskStats        `json:"taskStats"`
}

// ServeHTTP godoc
// @Summary Обзор дашборда
// @Tags Dashboard
// @Security BearerAuth
// @Produce  json
// @Param period query string false "week, month, quarter или year" default(month)
// @Success 200 {object} response.Response{data=Result}
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /dashboard/overview [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.dashboard.overview"

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

	s, err := h.service.Summarize(r.Context(), models.OwnerScope(user.ID), request.Period(r))
	if err != nil {
		log.Error("failed to build overview", sl.Err(err))
		response.FailWithError(w, r, err)
		return
	}

	response.OK(w, r, http.StatusOK, Result{FinancialStats: s.Financial, TaskStats: s.Tasks})
}

// Package financialstats реализует HTTP-обработчик финансовых показателей
// за период.
package financialstats

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

// Handler обрабатывает запросы финансовых показателей.
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

// Result - суммы за период.
type Result struct {
	TotalIncome  float64 `json:"totalIncome"`
	TotalExpense float64 `json:"totalExpense"`
	NetBalance   float64 `json:"netBalance"`
	Period       string  `json:"period"`
}

// ServeHTTP godoc
// @Summary Финансовые показатели
// @Tags Dashboard
// @Security BearerAuth
// @Produce  json
// @Param period query string false "week, month, quarter или year" default(month)
// @Success 200 {object} response.Response{data=Result}
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /dashboard/financial-stats [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.dashboard.financialstats"

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
		log.Error("failed to build financial stats", sl.Err(err))
		response.FailWithError(w, r, err)
		return
	}

	response.OK(w, r, http.StatusOK, Result{
		TotalIncome:  s.Financial.TotalIncome,
		TotalExpense: s.Financial.TotalExpense,
		NetBalance:   s.Financial.NetBalance,
		Period:       string(p),
	})
}

// Package useractivity реализует HTTP-обработчик аналитики активности
// пользователей.
package useractivity

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/fintask/internal/http/request"
	"github.com/magabrotheeeer/fintask/internal/http/response"
	"github.com/magabrotheeeer/fintask/internal/lib/sl"
	"github.com/magabrotheeeer/fintask/internal/models"
)

// Handler обрабатывает запросы активности пользователей.
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
// @Summary Активность пользователей
// @Description Регистрации по дням с начала периода, число активных пользователей и статистика по каждому.
// @Tags Admin
// @Security BearerAuth
// @Produce  json
// @Param period query string false "week, month, quarter или year" default(month)
// @Success 200 {object} response.Response{data=models.UserActivity}
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Требуется роль администратора"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /admin/analytics/user-activity [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.useractivity"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	a, err := h.service.UserActivity(r.Context(), request.Period(r))
	if err != nil {
		log.Error("failed to build user activity", sl.Err(err))
		response.FailWithError(w, r, err)
		return
	}
	if a.RegistrationTrend == nil {
		a.RegistrationTrend = []models.DayCount{}
	}
	if a.UserStats == nil {
		a.UserStats = []models.UserActivityStat{}
	}

	response.OK(w, r, http.StatusOK, a)
}

// Package stats реализует HTTP-обработчик общих показателей системы для
// администратора.
package stats

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/fintask/internal/http/response"
	"github.com/magabrotheeeer/fintask/internal/lib/sl"
)

// Handler обрабатывает запросы общих показателей.
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
// @Summary Общие показатели
// @Description Пользователи (всего и за последние 30 дней), суммы за все время и задачи.
// @Tags Admin
// @Security BearerAuth
// @Produce  json
// @Success 200 {object} response.Response{data=models.AdminStats}
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Требуется роль администратора"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /admin/stats [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.stats"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	st, err := h.service.Stats(r.Context())
	if err != nil {
		log.Error("failed to count stats", sl.Err(err))
		response.FailWithError(w, r, err)
		return
	}

	response.OK(w, r, http.StatusOK, st)
}

// Package summary реализует HTTP-обработчик сводки задач пользователя.
package summary

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/fintask/internal/http/middlewarectx"
	"github.com/magabrotheeeer/fintask/internal/http/response"
	"github.com/magabrotheeeer/fintask/internal/lib/sl"
	"github.com/magabrotheeeer/fintask/internal/models"
)

// Handler обрабатывает запросы сводки задач.
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
// @Summary Сводка задач
// @Description Общее число задач, завершенные, незавершенные и разбивка по статусам.
// @Tags Tasks
// @Security BearerAuth
// @Produce  json
// @Success 200 {object} response.Response{data=models.TaskSummary}
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /task/summary [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.task.summary"

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

	s, err := h.service.Summary(r.Context(), user.ID)
	if err != nil {
		log.Error("failed to build task summary", sl.Err(err))
		response.FailWithError(w, r, err)
		return
	}
	if s.StatusBreakdown == nil {
		s.StatusBreakdown = []models.StatusCount{}
	}

	response.OK(w, r, http.StatusOK, s)
}

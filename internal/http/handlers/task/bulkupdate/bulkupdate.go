// Package bulkupdate реализует HTTP-обработчик массового изменения задач.
//
// Изменяются только задачи текущего пользователя, чужие идентификаторы
// из списка пропускаются.
package bulkupdate

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

// Handler обрабатывает запросы массового изменения.
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

// Result - число измененных задач.
type Result struct {
	ModifiedCount int64 `json:"modifiedCount"`
}

// ServeHTTP godoc
// @Summary Массовое изменение задач
// @Description Устанавливает статус, приоритет или категорию у задач из списка.
// @Tags Tasks
// @Security BearerAuth
// @Accept  json
// @Produce  json
// @Param request body models.BulkTaskUpdate true "Идентификаторы и новые значения"
// @Success 200 {object} response.Response{data=Result}
// @Failure 400 {object} response.ErrorResponse "Пустой список или нечего менять"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /task/bulk-update [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.task.bulkupdate"

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

	var upd models.BulkTaskUpdate
	if err := request.DecodeJSON(r, &upd); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		response.FailWithError(w, r, err)
		return
	}

	n, err := h.service.BulkUpdate(r.Context(), user.ID, upd)
	if err != nil {
		log.Error("failed to update tasks", sl.Err(err))
		response.FailWithError(w, r, err)
		return
	}

	response.OK(w, r, http.StatusOK, Result{ModifiedCount: n})
}

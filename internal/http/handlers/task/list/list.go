// Package list реализует HTTP-обработчик списка задач пользователя.
package list

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

// Handler обрабатывает запросы списка задач.
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

// Page - страница задач.
type Page struct {
	Tasks       []models.Task `json:"tasks"`
	TotalPages  int           `json:"totalPages"`
	CurrentPage int           `json:"currentPage"`
	TotalTasks  int           `json:"totalTasks"`
}

// NewPage собирает ответ из результата выборки.
func NewPage(res models.ListResult[models.Task]) Page {
	items := res.Items
	if items == nil {
		items = []models.Task{}
	}
	return Page{
		Tasks:       items,
		TotalPages:  res.TotalPages(),
		CurrentPage: res.Page.Number,
		TotalTasks:  res.Total,
	}
}

// ServeHTTP godoc
// @Summary Список задач
// @Tags Tasks
// @Security BearerAuth
// @Produce  json
// @Param status query string false "pending, in-progress или completed"
// @Param priority query string false "low, medium или high"
// @Param category query string false "Категория"
// @Param search query string false "Подстрока в названии или описании"
// @Param page query int false "Номер страницы" default(1)
// @Param limit query int false "Размер страницы" default(10)
// @Param sortBy query string false "Поле сортировки" default(dueDate)
// @Param sortOrder query string false "asc или desc" default(asc)
// @Success 200 {object} response.Response{data=Page}
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /task [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.task.list"

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

	res, err := h.service.List(r.Context(), request.TaskFilter(r, models.OwnerScope(user.ID)))
	if err != nil {
		log.Error("failed to list tasks", sl.Err(err))
		response.FailWithError(w, r, err)
		return
	}

	response.OK(w, r, http.StatusOK, NewPage(res))
}

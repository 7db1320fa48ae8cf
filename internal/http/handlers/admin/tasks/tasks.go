// Package tasks реализует HTTP-обработчик списка задач всех пользователей.
package tasks

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/fintask/internal/http/request"
	"github.com/magabrotheeeer/fintask/internal/http/response"
	"github.com/magabrotheeeer/fintask/internal/lib/sl"
	"github.com/magabrotheeeer/fintask/internal/models"
)

// Handler обрабатывает запросы глобального списка задач.
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
	Total       int           `json:"total"`
}

// ServeHTTP godoc
// @Summary Задачи всех пользователей
// @Tags Admin
// @Security BearerAuth
// @Produce  json
// @Param status query string false "Статус"
// @Param priority query string false "Приоритет"
// @Param category query string false "Категория"
// @Param page query int false "Номер страницы" default(1)
// @Param limit query int false "Размер страницы" default(10)
// @Success 200 {object} response.Response{data=Page}
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Требуется роль администратора"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /admin/tasks [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.tasks"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	res, err := h.service.Tasks(r.Context(), request.TaskFilter(r, models.GlobalScope()))
	if err != nil {
		log.Error("failed to list tasks", sl.Err(err))
		response.FailWithError(w, r, err)
		return
	}

	items := res.Items
	if items == nil {
		items = []models.Task{}
	}
	response.OK(w, r, http.StatusOK, Page{
		Tasks:       items,
		TotalPages:  res.TotalPages(),
		CurrentPage: res.Page.Number,
		Total:       res.Total,
	})
}

// Package create реализует HTTP-обработчик создания задачи.
//
// Незаданные статус, приоритет и категория получают значения по умолчанию
// pending, medium и Personal.
package create

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/fintask/internal/http/middlewarectx"
	"github.com/magabrotheeeer/fintask/internal/http/request"
	"github.com/magabrotheeeer/fintask/internal/http/response"
	"github.com/magabrotheeeer/fintask/internal/lib/sl"
	"github.com/magabrotheeeer/fintask/internal/models"
)

// Handler обрабатывает запросы на создание задачи.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: models.NewValidator(),
	}
}

// ServeHTTP godoc
// @Summary Создать задачу
// @Tags Tasks
// @Security BearerAuth
// @Accept  json
// @Produce  json
// @Param request body models.TaskRequest true "Данные задачи"
// @Success 201 {object} response.Response{data=models.Task}
// @Failure 400 {object} response.ErrorResponse "Некорректные данные"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /task [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.task.create"

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

	var req models.TaskRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		response.FailWithError(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		log.Error("invalid request", sl.Err(err))
		response.Invalid(w, r, err)
		return
	}

	task, err := h.service.Create(r.Context(), user.ID, req)
	if err != nil {
		log.Error("failed to create task", sl.Err(err))
		response.FailWithError(w, r, err)
		return
	}

	log.Info("task created", slog.String("id", task.ID))
	response.OK(w, r, http.StatusCreated, task)
}

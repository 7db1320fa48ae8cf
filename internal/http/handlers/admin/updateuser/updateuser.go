// Package updateuser реализует HTTP-обработчик изменения имени, почты и
// роли пользователя администратором.
package updateuser

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/fintask/internal/http/middlewarectx"
	"github.com/magabrotheeeer/fintask/internal/http/request"
	"github.com/magabrotheeeer/fintask/internal/http/response"
	"github.com/magabrotheeeer/fintask/internal/lib/sl"
	"github.com/magabrotheeeer/fintask/internal/models"
)

// Handler обрабатывает запросы на изменение пользователя.
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

// Result - измененный пользователь.
type Result struct {
	User models.PublicUser `json:"user"`
}

// ServeHTTP godoc
// @Summary Изменить пользователя
// @Description Пустые поля сохраняют прежние значения.
// @Tags Admin
// @Security BearerAuth
// @Accept  json
// @Produce  json
// @Param id path string true "ID пользователя"
// @Param request body models.UserUpdate true "Новые значения"
// @Success 200 {object} response.Response{data=Result}
// @Failure 400 {object} response.ErrorResponse "Некорректные данные"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Требуется роль администратора"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 409 {object} response.ErrorResponse "Почта уже занята"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /admin/users/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.updateuser"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	actor, ok := middlewarectx.UserFrom(r.Context())
	if !ok {
		log.Error("user not found in context")
		response.Fail(w, r, http.StatusUnauthorized, "unauthorized")
		return
	}

	var upd models.UserUpdate
	if err := request.DecodeJSON(r, &upd); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		response.FailWithError(w, r, err)
		return
	}
	if err := h.validate.Struct(upd); err != nil {
		log.Error("invalid request", sl.Err(err))
		response.Invalid(w, r, err)
		return
	}

	id := chi.URLParam(r, "id")
	user, err := h.service.UpdateUser(r.Context(), actor.ID, id, upd)
	if err != nil {
		log.Error("failed to update user", slog.String("id", id), sl.Err(err))
		response.FailWithError(w, r, err)
		return
	}

	log.Info("user updated", slog.String("id", user.ID), slog.String("actor", actor.ID))
	response.OK(w, r, http.StatusOK, Result{User: user.Public()})
}

// Package removeuser реализует HTTP-обработчик удаления пользователя
// администратором. Транзакции и задачи пользователя удаляются вместе с ним.
package removeuser

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/fintask/internal/http/middlewarectx"
	"github.com/magabrotheeeer/fintask/internal/http/response"
	"github.com/magabrotheeeer/fintask/internal/lib/sl"
)

// Handler обрабатывает запросы на удаление пользователя.
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
// @Summary Удалить пользователя
// @Description Удаляет пользователя, его транзакции и задачи. Свою учетную запись удалить нельзя.
// @Tags Admin
// @Security BearerAuth
// @Produce  json
// @Param id path string true "ID пользователя"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.ErrorResponse "Попытка удалить себя"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Требуется роль администратора"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /admin/users/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.removeuser"

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

	id := chi.URLParam(r, "id")
	if err := h.service.DeleteUser(r.Context(), actor.ID, id); err != nil {
		log.Error("failed to delete user", slog.String("id", id), sl.Err(err))
		response.FailWithError(w, r, err)
		return
	}

	log.Info("user deleted", slog.String("id", id), slog.String("actor", actor.ID))
	response.OK(w, r, http.StatusOK, map[string]string{"message": "user deleted"})
}

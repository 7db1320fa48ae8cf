// Package update реализует HTTP-обработчик изменения транзакции.
//
// Изменяются только переданные поля. Идентификатор и владелец записи
// не меняются никогда.
package update

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

// Handler обрабатывает запросы на изменение транзакции.
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
// @Summary Изменить транзакцию
// @Description Изменяет переданные поля транзакции текущего пользователя.
// @Tags Expenses
// @Security BearerAuth
// @Accept  json
// @Produce  json
// @Param id path string true "ID транзакции"
// @Param request body models.TransactionPatch true "Изменяемые поля"
// @Success 200 {object} response.Response{data=models.Transaction}
// @Failure 400 {object} response.ErrorResponse "Некорректные данные"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Транзакция не найдена"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /expenses/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.expense.update"

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

	var patch models.TransactionPatch
	if err := request.DecodeJSON(r, &patch); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		response.FailWithError(w, r, err)
		return
	}
	if err := h.validate.Struct(patch); err != nil {
		log.Error("invalid request", sl.Err(err))
		response.Invalid(w, r, err)
		return
	}

	id := chi.URLParam(r, "id")
	tx, err := h.service.Update(r.Context(), user.ID, id, patch)
	if err != nil {
		log.Error("failed to update transaction", slog.String("id", id), sl.Err(err))
		response.FailWithError(w, r, err)
		return
	}

	log.Info("transaction updated", slog.String("id", tx.ID))
	response.OK(w, r, http.StatusOK, tx)
}

// Package create реализует HTTP-обработчик для создания транзакций (доходов и расходов).
//
// Handler принимает JSON с данными транзакции, валидирует его, берет владельца
// из контекста и возвращает созданную запись.
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

// Handler управляет HTTP-запросами на создание транзакций.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики транзакций
	validate *validator.Validate // Валидатор структуры входящих данных
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: models.NewValidator(),
	}
}

// ServeHTTP godoc
// @Summary Создать транзакцию
// @Description Создает доход или расход текущего пользователя.
// @Tags Expenses
// @Security BearerAuth
// @Accept  json
// @Produce  json
// @Param request body models.TransactionRequest true "Данные транзакции"
// @Success 201 {object} response.Response{data=models.Transaction} "Транзакция создана"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /expenses [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.expense.create"
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

	var req models.TransactionRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		response.FailWithError(w, r, err)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		response.Invalid(w, r, err)
		return
	}

	tx, err := h.service.Create(r.Context(), user.ID, req)
	if err != nil {
		log.Error("failed to create transaction", sl.Err(err))
		response.FailWithError(w, r, err)
		return
	}

	log.Info("transaction created", slog.String("id", tx.ID))
	response.OK(w, r, http.StatusCreated, tx)
}

// Package expenses реализует HTTP-обработчик списка транзакций всех
// пользователей с данными владельцев.
package expenses

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/fintask/internal/http/request"
	"github.com/magabrotheeeer/fintask/internal/http/response"
	"github.com/magabrotheeeer/fintask/internal/lib/sl"
	"github.com/magabrotheeeer/fintask/internal/models"
)

// Handler обрабатывает запросы глобального списка транзакций.
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

// Page - страница транзакций.
type Page struct {
	Expenses    []models.Transaction `json:"expenses"`
	TotalPages  int                  `json:"totalPages"`
	CurrentPage int                  `json:"currentPage"`
	Total       int                  `json:"total"`
}

// ServeHTTP godoc
// @Summary Транзакции всех пользователей
// @Tags Admin
// @Security BearerAuth
// @Produce  json
// @Param type query string false "income или expense"
// @Param category query string false "Категория"
// @Param startDate query string false "Начало периода, YYYY-MM-DD"
// @Param endDate query string false "Конец периода, YYYY-MM-DD"
// @Param page query int false "Номер страницы" default(1)
// @Param limit query int false "Размер страницы" default(10)
// @Success 200 {object} response.Response{data=Page}
// @Failure 400 {object} response.ErrorResponse "Некорректная дата"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Требуется роль администратора"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /admin/expenses [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.expenses"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	filter, err := request.TransactionFilter(r, models.GlobalScope())
	if err != nil {
		log.Error("invalid filter", sl.Err(err))
		response.FailWithError(w, r, err)
		return
	}

	res, err := h.service.Expenses(r.Context(), filter)
	if err != nil {
		log.Error("failed to list transactions", sl.Err(err))
		response.FailWithError(w, r, err)
		return
	}

	items := res.Items
	if items == nil {
		items = []models.Transaction{}
	}
	response.OK(w, r, http.StatusOK, Page{
		Expenses:    items,
		TotalPages:  res.TotalPages(),
		CurrentPage: res.Page.Number,
		Total:       res.Total,
	})
}

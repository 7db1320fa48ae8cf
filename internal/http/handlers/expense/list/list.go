// Package list реализует HTTP-обработчик списка транзакций пользователя
// с фильтрами, сортировкой и пагинацией.
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

// Handler обрабатывает запросы списка транзакций.
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
	Expenses      []models.Transaction `json:"expenses"`
	TotalPages    int                  `json:"totalPages"`
	CurrentPage   int                  `json:"currentPage"`
	TotalExpenses int                  `json:"totalExpenses"`
}

// NewPage собирает ответ из результата выборки.
func NewPage(res models.ListResult[models.Transaction]) Page {
	items := res.Items
	if items == nil {
		items = []models.Transaction{}
	}
	return Page{
		Expenses:      items,
		TotalPages:    res.TotalPages(),
		CurrentPage:   res.Page.Number,
		TotalExpenses: res.Total,
	}
}

// ServeHTTP godoc
// @Summary Список транзакций
// @Description Возвращает страницу транзакций текущего пользователя. Пустые фильтры не применяются.
// @Tags Expenses
// @Security BearerAuth
// @Produce  json
// @Param type query string false "income или expense"
// @Param category query string false "Категория"
// @Param paymentMethod query string false "Способ оплаты"
// @Param startDate query string false "Начало периода, YYYY-MM-DD"
// @Param endDate query string false "Конец периода, YYYY-MM-DD"
// @Param search query string false "Подстрока в названии"
// @Param page query int false "Номер страницы" default(1)
// @Param limit query int false "Размер страницы" default(10)
// @Param sortBy query string false "Поле сортировки" default(date)
// @Param sortOrder query string false "asc или desc" default(desc)
// @Success 200 {object} response.Response{data=Page}
// @Failure 400 {object} response.ErrorResponse "Некорректная дата"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /expenses [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.expense.list"

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

	filter, err := request.TransactionFilter(r, models.OwnerScope(user.ID))
	if err != nil {
		log.Error("invalid filter", sl.Err(err))
		response.FailWithError(w, r, err)
		return
	}

	res, err := h.service.List(r.Context(), filter)
	if err != nil {
		log.Error("failed to list transactions", sl.Err(err))
		response.FailWithError(w, r, err)
		return
	}

	log.Info("list transactions", slog.Int("count", len(res.Items)), slog.Int("total", res.Total))
	response.OK(w, r, http.StatusOK, NewPage(res))
}

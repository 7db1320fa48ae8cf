// Package users реализует HTTP-обработчик списка пользователей для
// администратора. Хэши паролей в ответ не попадают.
package users

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/fintask/internal/http/request"
	"github.com/magabrotheeeer/fintask/internal/http/response"
	"github.com/magabrotheeeer/fintask/internal/lib/sl"
	"github.com/magabrotheeeer/fintask/internal/models"
)

// Handler обрабатывает запросы списка пользователей.
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

// Page - страница пользователей.
type Page struct {
	Users       []models.PublicUser `json:"users"`
	TotalPages  int                 `json:"totalPages"`
	CurrentPage int                 `json:"currentPage"`
	Total       int                 `json:"total"`
}

// ServeHTTP godoc
// @Summary Список пользователей
// @Description Новые пользователи первыми. search ищет по имени и почте без учета регистра.
// @Tags Admin
// @Security BearerAuth
// @Produce  json
// @Param search query string false "Подстрока имени или почты"
// @Param page query int false "Номер страницы" default(1)
// @Param limit query int false "Размер страницы" default(10)
// @Success 200 {object} response.Response{data=Page}
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Требуется роль администратора"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /admin/users [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.users"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	res, err := h.service.Users(r.Context(), request.UserFilter(r))
	if err != nil {
		log.Error("failed to list users", sl.Err(err))
		response.FailWithError(w, r, err)
		return
	}

	page := Page{
		Users:       make([]models.PublicUser, 0, len(res.Items)),
		TotalPages:  res.TotalPages(),
		CurrentPage: res.Page.Number,
		Total:       res.Total,
	}
	for i := range res.Items {
		page.Users = append(page.Users, res.Items[i].Public())
	}
	response.OK(w, r, http.StatusOK, page)
}

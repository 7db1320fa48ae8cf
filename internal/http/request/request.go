// Package request разбирает тела и query-параметры HTTP запросов в
// структуры фильтров и запросов сервисов.
package request

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/magabrotheeeer/fintask/internal/lib/apperr"
	"github.com/magabrotheeeer/fintask/internal/lib/period"
	"github.com/magabrotheeeer/fintask/internal/models"
)

// MaxBodyBytes ограничивает размер тела запроса.
const MaxBodyBytes = 1 << 20

// DecodeJSON читает тело запроса в v. Неизвестные поля и лишние данные
// после объекта считаются ошибкой.
func DecodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return apperr.Wrap(apperr.ErrValidation, err, "request body is empty")
		}
		return apperr.Wrap(apperr.ErrValidation, err, "invalid request body")
	}
	if dec.More() {
		return apperr.Validation("invalid request body")
	}
	return nil
}

// Page возвращает параметры page и limit.
func Page(r *http.Request) models.Page {
	q := r.URL.Query()
	return models.NewPage(q.Get("page"), q.Get("limit"))
}

// Period возвращает параметр period, по умолчанию месяц.
func Period(r *http.Request) period.Name {
	return period.Parse(r.URL.Query().Get("period"))
}

// Int возвращает целый параметр name или def, если он не задан или
// некорректен.
func Int(r *http.Request, name string, def int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return def
	}
	return v
}

// TransactionFilter собирает фильтр списка транзакций. Даты startDate и
// endDate можно задавать по отдельности, обе границы включаются.
func TransactionFilter(r *http.Request, scope models.Scope) (models.TransactionFilter, error) {
	q := r.URL.Query()
	filter := models.TransactionFilter{
		Scope:         scope,
		Kind:          strings.TrimSpace(q.Get("type")),
		Category:      strings.TrimSpace(q.Get("category")),
		PaymentMethod: strings.TrimSpace(q.Get("paymentMethod")),
		Search:        strings.TrimSpace(q.Get("search")),
		Sort:          models.NewSort(q.Get("sortBy"), q.Get("sortOrder"), "date", true),
		Page:          models.NewPage(q.Get("page"), q.Get("limit")),
	}

	if s := q.Get("startDate"); s != "" {
		from, err := models.ParseDay(s)
		if err != nil {
			return filter, apperr.Validation("startDate: %s", err.Error())
		}
		filter.From = &from
	}
	if s := q.Get("endDate"); s != "" {
		to, err := models.ParseDay(s)
		if err != nil {
			return filter, apperr.Validation("endDate: %s", err.Error())
		}
		filter.To = &to
	}
	return filter, nil
}

// TaskFilter собирает фильтр списка задач.
func TaskFilter(r *http.Request, scope models.Scope) models.TaskFilter {
	q := r.URL.Query()
	return models.TaskFilter{
		Scope:    scope,
		Status:   strings.TrimSpace(q.Get("status")),
		Priority: strings.TrimSpace(q.Get("priority")),
		Category: strings.TrimSpace(q.Get("category")),
		Search:   strings.TrimSpace(q.Get("search")),
		Sort:     models.NewSort(q.Get("sortBy"), q.Get("sortOrder"), "dueDate", false),
		Page:     models.NewPage(q.Get("page"), q.Get("limit")),
	}
}

// UserFilter собирает фильтр списка пользователей.
func UserFilter(r *http.Request) models.UserFilter {
	q := r.URL.Query()
	return models.UserFilter{
		Search: strings.TrimSpace(q.Get("search")),
		Page:   models.NewPage(q.Get("page"), q.Get("limit")),
	}
}

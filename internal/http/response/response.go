// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON‑ответов HTTP‑обработчиков: успешных ответов, ошибок
// и сообщений валидации.
package response

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/fintask/internal/lib/apperr"
	"github.com/magabrotheeeer/fintask/internal/models"
)

// Response описывает стандартную структуру JSON‑ответа сервера.
// Поле Status - статус запроса ("OK" или "Error").
// Поле Message - текст ошибки (опционально, при неуспехе).
// Поле Data - данные ответа (опционально, при успехе).
type Response struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// ErrorResponse - структура ошибки для Swagger-документации.
// Используется в аннотациях @Failure как возвращаемый тип ошибки.
type ErrorResponse struct {
	Status  string `json:"status" example:"Error"`
	Message string `json:"message" example:"invalid request body"`
}

const (
	// StatusOK - значение статуса для успешного ответа.
	StatusOK = "OK"
	// StatusError - значение статуса для ответа с ошибкой.
	StatusError = "Error"
)

// InternalMessage отдается клиенту вместо текста нетипизированных ошибок.
const InternalMessage = "internal server error"

// StatusOKWithData возвращает успешный Response с переданными данными.
func StatusOKWithData(data any) Response {
	return Response{
		Status: StatusOK,
		Data:   data,
	}
}

// Error возвращает ErrorResponse с переданным сообщением.
func Error(msg string) ErrorResponse {
	return ErrorResponse{
		Status:  StatusError,
		Message: msg,
	}
}

// ValidationError формирует ErrorResponse на основе ошибок валидации.
func ValidationError(errs validator.ValidationErrors) ErrorResponse {
	return Error(models.ValidationMessage(errs))
}

// FromError переводит ошибку сервиса в HTTP статус и тело ответа.
// Текст нетипизированных ошибок клиенту не передается.
func FromError(err error) (int, ErrorResponse) {
	msg, ok := apperr.Message(err)
	if !ok {
		return http.StatusInternalServerError, Error(InternalMessage)
	}

	switch {
	case errors.Is(err, apperr.ErrValidation):
		return http.StatusBadRequest, Error(msg)
	case errors.Is(err, apperr.ErrUnauthenticated):
		return http.StatusUnauthorized, Error(msg)
	case errors.Is(err, apperr.ErrForbidden):
		return http.StatusForbidden, Error(msg)
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound, Error(msg)
	case errors.Is(err, apperr.ErrConflict):
		return http.StatusConflict, Error(msg)
	default:
		return http.StatusInternalServerError, Error(InternalMessage)
	}
}

// Fail пишет ответ с ошибкой и статусом status.
func Fail(w http.ResponseWriter, r *http.Request, status int, msg string) {
	render.Status(r, status)
	render.JSON(w, r, Error(msg))
}

// FailWithError пишет ответ, соответствующий ошибке сервиса.
func FailWithError(w http.ResponseWriter, r *http.Request, err error) {
	status, body := FromError(err)
	render.Status(r, status)
	render.JSON(w, r, body)
}

// OK пишет успешный ответ со статусом status.
func OK(w http.ResponseWriter, r *http.Request, status int, data any) {
	render.Status(r, status)
	render.JSON(w, r, StatusOKWithData(data))
}

// Invalid пишет 400 с перечнем нарушений валидации.
func Invalid(w http.ResponseWriter, r *http.Request, err error) {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ValidationError(errs))
		return
	}
	Fail(w, r, http.StatusBadRequest, "invalid request")
}

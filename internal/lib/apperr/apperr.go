// Package apperr описывает типизированные ошибки приложения.
//
// Сервисы и хранилище возвращают ошибки, которые через errors.Is сводятся
// к одному из видов: валидация, аутентификация, авторизация, конфликт,
// отсутствие записи. Транспортный слой переводит вид в HTTP статус,
// а Message - безопасный текст для клиента.
package apperr

import (
	"errors"
	"fmt"
)

// Виды ошибок.
var (
	ErrValidation      = errors.New("validation error")
	ErrUnauthenticated = errors.New("authentication error")
	ErrForbidden       = errors.New("authorization error")
	ErrConflict        = errors.New("conflict")
	ErrNotFound        = errors.New("not found")
)

// Error - ошибка с видом и сообщением для клиента.
type Error struct {
	Kind    error
	Message string
	Err     error // исходная причина, в ответ не попадает
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Is позволяет сравнивать ошибку как с видом, так и с причиной.
func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Validation создаёт ошибку валидации входных данных.
func Validation(format string, args ...any) error {
	return newError(ErrValidation, format, args...)
}

// Unauthenticated создаёт ошибку аутентификации.
func Unauthenticated(format string, args ...any) error {
	return newError(ErrUnauthenticated, format, args...)
}

// Forbidden создаёт ошибку недостаточных прав.
func Forbidden(format string, args ...any) error {
	return newError(ErrForbidden, format, args...)
}

// Conflict создаёт ошибку нарушения уникальности.
func Conflict(format string, args ...any) error {
	return newError(ErrConflict, format, args...)
}

// NotFound создаёт ошибку отсутствующей записи.
func NotFound(format string, args ...any) error {
	return newError(ErrNotFound, format, args...)
}

// Wrap добавляет к ошибке вид и сообщение, сохраняя причину.
func Wrap(kind, err error, message string) error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Message возвращает сообщение для клиента, если ошибка типизирована.
func Message(err error) (string, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message, true
	}
	return "", false
}

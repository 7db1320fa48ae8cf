package models

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/fintask/internal/lib/apperr"
)

// DateLayout - формат календарной даты в запросах.
const DateLayout = "2006-01-02"

// NewValidator создаёт валидатор с правилами для перечислений предметной
// области. Имена полей в ошибках берутся из json-тегов.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	mustRegister(v, "tx_category", TransactionCategories)
	mustRegister(v, "payment_method", PaymentMethods)
	mustRegister(v, "task_category", TaskCategories)
	return v
}

func mustRegister(v *validator.Validate, tag string, allowed []string) {
	err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return Contains(allowed, fl.Field().String())
	})
	if err != nil {
		panic(fmt.Sprintf("models: register validation %s: %v", tag, err))
	}
}

// Validate проверяет структуру и возвращает apperr.ErrValidation с
// перечнем нарушений.
func Validate(v *validator.Validate, s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if errors.As(err, &errs) {
		return apperr.Wrap(apperr.ErrValidation, err, ValidationMessage(errs))
	}
	return apperr.Wrap(apperr.ErrValidation, err, "invalid request")
}

// ValidationMessage формирует человекочитаемый текст нарушений через запятую.
func ValidationMessage(errs validator.ValidationErrors) string {
	msgs := make([]string, 0, len(errs))
	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "email":
			msgs = append(msgs, fmt.Sprintf("field %s must be a valid email", err.Field()))
		case "uuid":
			msgs = append(msgs, fmt.Sprintf("field %s can contain only uuid", err.Field()))
		case "min", "max":
			msgs = append(msgs, fmt.Sprintf("field %s must have %s length %s", err.Field(), err.ActualTag(), err.Param()))
		case "gte":
			msgs = append(msgs, fmt.Sprintf("field %s must be at least %s", err.Field(), err.Param()))
		case "lt":
			msgs = append(msgs, fmt.Sprintf("field %s must be less than %s", err.Field(), err.Param()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("field %s must be one of: %s", err.Field(), err.Param()))
		case "tx_category", "payment_method", "task_category":
			msgs = append(msgs, fmt.Sprintf("field %s has unknown value %q", err.Field(), err.Value()))
		default:
			msgs = append(msgs, fmt.Sprintf("field %s is not valid", err.Field()))
		}
	}
	return strings.Join(msgs, ", ")
}

// ParseDay разбирает дату транзакции и приводит её к полуночи UTC того же
// календарного дня.
func ParseDay(s string) (time.Time, error) {
	t, err := parseDateOrTime(s)
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
}

// ParseTime разбирает срок задачи. Календарная дата даёт полночь UTC,
// RFC3339 сохраняет время.
func ParseTime(s string) (time.Time, error) {
	t, err := parseDateOrTime(s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

func parseDateOrTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q must be in format %s or RFC3339", s, DateLayout)
	}
	return t, nil
}

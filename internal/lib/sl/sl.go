// Package sl содержит вспомогательные функции для работы с логгером slog:
// построение логгера по окружению и единообразные атрибуты ошибок.
package sl

import (
	"io"
	"log/slog"
)

// Окружения, от которых зависит уровень логирования.
const (
	EnvLocal = "local"
	EnvTest  = "test"
	EnvProd  = "prod"
)

// New создаёт текстовый логгер. Для prod включается уровень Info,
// для остальных окружений - Debug.
func New(env string, w io.Writer) *slog.Logger {
	level := slog.LevelDebug
	if env == EnvProd {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Err возвращает slog.Attr с ключом "error" и значением текста ошибки.
//
// Пример:
//
//	log.Error("failed to do something", sl.Err(err))
func Err(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}

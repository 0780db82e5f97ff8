package logging

import (
	"log/slog"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
)

var Logg *slog.Logger

// NewLogger собирает логгер: format "text" — цветной вывод в терминал,
// "json" — структурированный вывод через ядро zap.
func NewLogger(level, format string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	if format == "json" {
		zl := zap.Must(zap.NewProduction())
		return slog.New(zapslog.NewHandler(zl.Core()))
	}

	opts := &slog.HandlerOptions{Level: lvl}
	return slog.New(NewColorHandler(os.Stdout, opts))
}

func init() {
	// Значение по умолчанию, пока main не настроит логгер по конфигу.
	Logg = NewLogger("info", "text")
}

package desktop

import (
	"log/slog"
	"os"

	"github.com/wailsapp/wails/v2/pkg/logger"
)

// logAdapter routes the window runtime's log output into slog.
type logAdapter struct {
	logger *slog.Logger
}

var _ logger.Logger = (*logAdapter)(nil)

func newLogAdapter(l *slog.Logger) *logAdapter {
	return &logAdapter{logger: l.With("component", "wails")}
}

func (l *logAdapter) Print(message string)   { l.logger.Info(message) }
func (l *logAdapter) Trace(message string)   { l.logger.Debug(message, "trace", true) }
func (l *logAdapter) Debug(message string)   { l.logger.Debug(message) }
func (l *logAdapter) Info(message string)    { l.logger.Info(message) }
func (l *logAdapter) Warning(message string) { l.logger.Warn(message) }
func (l *logAdapter) Error(message string)   { l.logger.Error(message) }

// Fatal keeps the logger.Logger contract: the process exits.
func (l *logAdapter) Fatal(message string) {
	l.logger.Error(message, "fatal", true)
	os.Exit(1)
}

// wailsLevel maps a configured level name onto the runtime's levels.
func wailsLevel(level string) logger.LogLevel {
	switch level {
	case "debug":
		return logger.DEBUG
	case "warn":
		return logger.WARNING
	case "error":
		return logger.ERROR
	default:
		return logger.INFO
	}
}

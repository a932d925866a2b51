package util

import (
	"log/slog"
	"os"
)

type Logger struct {
	slogger *slog.Logger
}

func NewLogger(level slog.Level, output *os.File) *Logger {
	handler := slog.NewJSONHandler(output, &slog.HandlerOptions{Level: level})
	return &Logger{
		slogger: slog.New(handler),
	}
}

func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		slogger: l.slogger.With("component", component),
	}
}

func (l *Logger) Debug(msg string, fields map[string]any) {
	l.slogger.Debug(msg, mapToAttrs(fields)...)
}

func (l *Logger) Info(msg string, fields map[string]any) {
	l.slogger.Info(msg, mapToAttrs(fields)...)
}

func (l *Logger) Warn(msg string, fields map[string]any) {
	l.slogger.Warn(msg, mapToAttrs(fields)...)
}

func (l *Logger) Error(msg string, fields map[string]any) {
	l.slogger.Error(msg, mapToAttrs(fields)...)
}

func (l *Logger) LogError(msg string, err error, fields map[string]any) {
	if err == nil {
		return
	}

	if fields == nil {
		fields = make(map[string]any)
	}
	fields["error"] = err.Error()
	l.Error(msg, fields)
}

func mapToAttrs(fields map[string]any) []any {
	if len(fields) == 0 {
		return nil
	}

	attrs := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		attrs = append(attrs, k, v)
	}
	return attrs
}

var DefaultLogger = NewLogger(slog.LevelInfo, os.Stderr)

func SetDefaultLogger(level slog.Level, output *os.File) {
	DefaultLogger = NewLogger(level, output)
}

func InitDefaultLogger() {
	DefaultLogger = NewLogger(slog.LevelInfo, os.Stderr)
}

func Debug(msg string, fields map[string]any) {
	DefaultLogger.Debug(msg, fields)
}

func Info(msg string, fields map[string]any) {
	DefaultLogger.Info(msg, fields)
}

func Warn(msg string, fields map[string]any) {
	DefaultLogger.Warn(msg, fields)
}

func Error(msg string, fields map[string]any) {
	DefaultLogger.Error(msg, fields)
}

func LogError(msg string, err error, fields map[string]any) {
	DefaultLogger.LogError(msg, err, fields)
}

func ParseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

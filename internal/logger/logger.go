// Package logger provides the structured JSON logger used by every service
// component. It is a thin wrapper around zerolog keeping the action/fields
// call shape used across the codebase.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

type Logger struct {
	zl zerolog.Logger
}

// New returns a logger tagged with the component name.
func New(service string) *Logger {
	return NewWithOutput(service, os.Stdout, levelFromEnv())
}

// NewWithOutput is used by tests to capture output.
func NewWithOutput(service string, out io.Writer, level zerolog.Level) *Logger {
	zl := zerolog.New(out).Level(level).With().
		Timestamp().
		Str("service", service).
		Logger()
	return &Logger{zl: zl}
}

func levelFromEnv() zerolog.Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func init() {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.TimestampFieldName = "timestamp"
}

func (l *Logger) emit(ev *zerolog.Event, action string, fields map[string]any) {
	ev = ev.Str("action", action)
	for k, v := range fields {
		ev = ev.Interface(k, v)
	}
	ev.Msg(action)
}

func (l *Logger) Info(action string, fields map[string]any) {
	l.emit(l.zl.Info(), action, fields)
}

func (l *Logger) Debug(action string, fields map[string]any) {
	l.emit(l.zl.Debug(), action, fields)
}

func (l *Logger) Warn(action string, fields map[string]any) {
	l.emit(l.zl.Warn(), action, fields)
}

func (l *Logger) Error(action string, err error, fields map[string]any) {
	ev := l.zl.Error()
	if err != nil {
		ev = ev.Err(err)
	}
	l.emit(ev, action, fields)
}

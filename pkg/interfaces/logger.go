package interfaces

import "context"

// Logger defines the leveled logging contract used across the pipeline.
// It mirrors the interface exposed by github.com/goliatone/go-logger so the
// gologger provider can be plugged in without further adapters.
type Logger interface {
	Trace(msg string, args ...any)
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Fatal(msg string, args ...any)
	WithFields(fields map[string]any) Logger
	WithContext(ctx context.Context) Logger
}

// LoggerProvider exposes named loggers. Implementations can return the same
// instance for every name or scope loggers per module.
type LoggerProvider interface {
	GetLogger(name string) Logger
}

// FieldsLogger is the narrow view of Logger used by helpers that only attach
// persistent structured fields.
type FieldsLogger interface {
	WithFields(fields map[string]any) Logger
}

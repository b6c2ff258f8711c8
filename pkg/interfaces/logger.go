package interfaces

import "context"

// Logger is the leveled logging contract used across the module. It mirrors
// the surface exposed by github.com/goliatone/go-logger so hosts already on
// that stack can plug their loggers in without adapters.
type Logger interface {
	Trace(msg string, args ...any)
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Fatal(msg string, args ...any)
	WithContext(ctx context.Context) Logger
}

// LoggerProvider hands out named loggers. Implementations may return the same
// instance for every name or scope children per namespace.
type LoggerProvider interface {
	GetLogger(name string) Logger
}

// FieldsLogger is an optional extension for attaching persistent structured
// fields. Providers supporting it return a new logger that applies the fields
// to every entry.
type FieldsLogger interface {
	WithFields(fields map[string]any) Logger
}

package log

import (
	"context"
	"log/slog"
	"os"
)

// DefaultContextProvider returns the default context used by context-unaware
// logging functions.
//
//nolint:gochecknoglobals
var DefaultContextProvider = context.TODO

// defaultLog is the logger behind the package-level logging functions. Until
// [Config] is called it stays conservative: warnings and above, rendered with
// the minimal basic preset on stderr. Builtin presets always resolve, so
// construction cannot fail.
//
//nolint:gochecknoglobals
var defaultLog = func() Logger {
	logger, err := Make(os.Stderr, WithTemplate("basic"), WithLevel(LevelWarning))
	if err != nil {
		panic("internal error: builtin basic template unavailable")
	}

	return logger
}()

// Config updates the default logger with the given options.
func Config(opts ...Option) error {
	logger, err := defaultLog.Wrap(opts...)
	if err != nil {
		return err
	}

	defaultLog = logger

	return nil
}

// DebugContext logs a message at Debug level using the default logger with
// the provided context.
func DebugContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	defaultLog.DebugContext(ctx, msg, attrs...)
}

// Debug logs a message at Debug level using the default logger.
func Debug(msg string, attrs ...slog.Attr) {
	DebugContext(DefaultContextProvider(), msg, attrs...)
}

// InfoContext logs a message at Info level using the default logger with the
// provided context.
func InfoContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	defaultLog.InfoContext(ctx, msg, attrs...)
}

// Info logs a message at Info level using the default logger.
func Info(msg string, attrs ...slog.Attr) {
	InfoContext(DefaultContextProvider(), msg, attrs...)
}

// WarningContext logs a message at Warning level using the default logger
// with the provided context.
func WarningContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	defaultLog.WarningContext(ctx, msg, attrs...)
}

// Warning logs a message at Warning level using the default logger.
func Warning(msg string, attrs ...slog.Attr) {
	WarningContext(DefaultContextProvider(), msg, attrs...)
}

// ErrorContext logs a message at Error level using the default logger with
// the provided context.
func ErrorContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	defaultLog.ErrorContext(ctx, msg, attrs...)
}

// Error logs a message at Error level using the default logger.
func Error(msg string, attrs ...slog.Attr) {
	ErrorContext(DefaultContextProvider(), msg, attrs...)
}

// CriticalContext logs a message at Critical level using the default logger
// with the provided context.
func CriticalContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	defaultLog.CriticalContext(ctx, msg, attrs...)
}

// Critical logs a message at Critical level using the default logger.
func Critical(msg string, attrs ...slog.Attr) {
	CriticalContext(DefaultContextProvider(), msg, attrs...)
}

// With returns a new [Logger] that includes the given attributes in each log
// message using the default logger.
func With(attrs ...slog.Attr) Logger {
	return defaultLog.With(attrs...)
}

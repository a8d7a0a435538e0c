package log

import (
	"context"
	"io"
	"log/slog"
	"runtime"
	"time"
)

// Logger provides a concurrency-safe, template-formatted logging interface.
type Logger struct {
	*slog.Logger
	config
}

// Make creates a new [Logger] that writes to the specified writer.
// The default configuration is the [DefaultTemplate] builtin, [DefaultLevel],
// timestamps disabled, and caller info disabled.
//
// Optional configuration can be applied using functional options like
// [WithTemplate], [WithLevel], [WithTimeLayout], and [WithCaller]. Template
// resolution happens here, so an unknown template name or a broken template
// directory fails construction rather than rendering.
func Make(w io.Writer, opts ...Option) (Logger, error) {
	// Nothing else references cfg yet, so no locking is needed here. The
	// functional options lock its mutex themselves.
	cfg := makeConfig(w, opts...)

	set, err := cfg.resolve()
	if err != nil {
		return Logger{}, err
	}

	cfg.set = set

	return Logger{
		config: cfg,
		Logger: slog.New(cfg.handler()),
	}, nil
}

// Wrap returns a new [Logger] that wraps the current logger with the provided
// configuration options.
// The existing configuration is used as the base, and any provided options
// will override specific values. Attributes bound with [Logger.With] do not
// carry over; the new logger is rebuilt from configuration alone.
func (l Logger) Wrap(opts ...Option) (Logger, error) {
	// clone copies l.config under its own fresh mutex, so only the copy
	// itself needs the read lock. The options then mutate a config nothing
	// else references.
	unlock := l.rlock()
	cfg := l.clone(opts...)

	unlock()

	set, err := cfg.resolve()
	if err != nil {
		return Logger{}, err
	}

	cfg.set = set

	return Logger{
		config: cfg,
		Logger: slog.New(cfg.handler()),
	}, nil
}

// With returns a new [Logger] that includes the given attributes in each log
// message.
func (l Logger) With(attrs ...slog.Attr) Logger {
	if l.Logger == nil {
		return l
	}

	unlock := l.rlock()
	cfg := l.clone()

	unlock()

	return Logger{
		config: cfg,
		Logger: slog.New(l.Handler().WithAttrs(attrs)),
	}
}

// WithGroup returns a new [Logger] whose subsequent attributes are
// qualified by the given group name, so a template addresses them as
// "group.key" fields.
func (l Logger) WithGroup(name string) Logger {
	if l.Logger == nil {
		return l
	}

	unlock := l.rlock()
	cfg := l.clone()

	unlock()

	return Logger{
		config: cfg,
		Logger: slog.New(l.Handler().WithGroup(name)),
	}
}

// Level returns the current minimum log level.
func (l Logger) Level() Level {
	if l.Logger == nil {
		return DefaultLevel
	}

	defer l.rlock()()

	return l.level
}

// Template returns the name of the template set formatting this logger's
// output.
func (l Logger) Template() string {
	if l.Logger == nil {
		return DefaultTemplate
	}

	defer l.rlock()()

	if l.set != nil {
		return l.set.Name()
	}

	return l.template
}

// rlock takes the configuration read lock and returns its release function.
// Loggers assembled without [Make] have no mutex; those proceed unlocked.
func (l Logger) rlock() func() {
	if l.mutex == nil {
		return func() {}
	}

	l.mutex.RLock()

	return l.mutex.RUnlock
}

// DebugContext logs a message at Debug level with the provided context.
func (l Logger) DebugContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.emit(ctx, LevelDebug, msg, attrs...)
}

// Debug logs a message at Debug level.
func (l Logger) Debug(msg string, attrs ...slog.Attr) {
	l.DebugContext(DefaultContextProvider(), msg, attrs...)
}

// InfoContext logs a message at Info level with the provided context.
func (l Logger) InfoContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.emit(ctx, LevelInfo, msg, attrs...)
}

// Info logs a message at Info level.
func (l Logger) Info(msg string, attrs ...slog.Attr) {
	l.InfoContext(DefaultContextProvider(), msg, attrs...)
}

// WarningContext logs a message at Warning level with the provided context.
func (l Logger) WarningContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.emit(ctx, LevelWarning, msg, attrs...)
}

// Warning logs a message at Warning level.
func (l Logger) Warning(msg string, attrs ...slog.Attr) {
	l.WarningContext(DefaultContextProvider(), msg, attrs...)
}

// ErrorContext logs a message at Error level with the provided context.
func (l Logger) ErrorContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.emit(ctx, LevelError, msg, attrs...)
}

// Error logs a message at Error level.
func (l Logger) Error(msg string, attrs ...slog.Attr) {
	l.ErrorContext(DefaultContextProvider(), msg, attrs...)
}

// CriticalContext logs a message at Critical level with the provided context.
func (l Logger) CriticalContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.emit(ctx, LevelCritical, msg, attrs...)
}

// Critical logs a message at Critical level.
func (l Logger) Critical(msg string, attrs ...slog.Attr) {
	l.CriticalContext(DefaultContextProvider(), msg, attrs...)
}

// emit writes a log message at the specified level with the provided context.
// Zero value loggers silently discard the message.
func (l Logger) emit(ctx context.Context, level Level, msg string, attrs ...slog.Attr) {
	if l.Logger == nil {
		return
	}

	defer l.rlock()()

	if !l.Enabled(ctx, level.Level()) {
		return
	}

	// The record's PC must point at the user's call site, four frames up:
	// runtime.Callers, emit, the *Context method, and the leveled wrapper.
	var pcs [1]uintptr

	runtime.Callers(4, pcs[:])

	r := slog.NewRecord(time.Now(), level.Level(), msg, pcs[0])
	r.AddAttrs(attrs...)

	_ = l.Handler().Handle(ctx, r)
}

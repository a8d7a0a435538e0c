package log

import (
	"io"
	"iter"
	"strings"
	"sync"
	"time"

	"github.com/ardnew/linelog/tmpl"
)

// Level represents the severity of a log message.
type Level = tmpl.Level

// Levels recognized by the logger, in ascending severity.
const (
	LevelDebug    = tmpl.LevelDebug
	LevelInfo     = tmpl.LevelInfo
	LevelWarning  = tmpl.LevelWarning
	LevelError    = tmpl.LevelError
	LevelCritical = tmpl.LevelCritical
)

// DefaultLevel is the default log level.
const DefaultLevel = tmpl.DefaultLevel

// Levels returns an iterator over all defined log levels.
func Levels() iter.Seq[Level] {
	return tmpl.Levels()
}

// ParseLevel parses a string representation of a log level.
// Valid level strings are "DEBUG", "INFO", "WARNING", "ERROR", and
// "CRITICAL", optionally followed by a "+" or "-" and an integer offset.
// See [slog.Level.UnmarshalText] for details.
func ParseLevel(s string) Level {
	return tmpl.ParseLevel(s)
}

// DefaultTemplate is the name of the builtin template used when no other
// template is configured.
const DefaultTemplate = "default"

// FormatTime defines a function that formats a time.Time value as a string.
type FormatTime func(time.Time) string

// DefaultTimeLayout is the default used when no valid time layout is provided.
// Timestamps are disabled by default; templates that render a time field must
// opt in with [WithTimeLayout].
const DefaultTimeLayout = "none"

// DefaultCaller is the default setting for including caller information
// in log output.
const DefaultCaller = false

// config holds the configuration options for a Logger.
type config struct {
	mutex      *sync.RWMutex
	output     io.Writer
	set        *tmpl.Set
	formatTime FormatTime
	template   string
	name       string
	level      Level
	caller     bool
}

// makeConfig creates a new config with defaults applied, overridden by any
// provided options.
func makeConfig(w io.Writer, opts ...Option) config {
	c := config{mutex: &sync.RWMutex{}}

	return apply(apply(c, WithDefaults(w)), opts...)
}

// clone creates a copy of the config with a separate mutex and applies any
// provided options.
func (c config) clone(opts ...Option) config {
	c.mutex = &sync.RWMutex{}

	return apply(c, opts...)
}

// resolve returns the template set selected by the configuration. A set
// installed with [WithSet] wins; otherwise the configured template name or
// directory path is resolved through the template registry.
func (c config) resolve() (*tmpl.Set, error) {
	if c.set != nil {
		return c.set, nil
	}

	return tmpl.Resolve(c.template)
}

// handler creates a slog.Handler based on the current configuration.
// The configuration's template set must be resolved before calling.
func (c config) handler() *templateHandler {
	return newTemplateHandler(c)
}

// locked wraps a field mutation in the config's mutex so that options can be
// applied to a shared configuration without tearing.
func locked(mutate func(*config)) Option {
	return func(c config) config {
		if c.mutex == nil {
			c.mutex = &sync.RWMutex{}
		} else {
			c.mutex.Lock()
			defer c.mutex.Unlock()
		}

		mutate(&c)

		return c
	}
}

// WithDefaults returns a functional option that sets the default
// configuration: [DefaultTemplate], [DefaultLevel], [DefaultTimeLayout],
// and caller info disabled.
func WithDefaults(w io.Writer) Option {
	if w == nil {
		w = io.Discard
	}

	return locked(func(c *config) {
		c.output = w
		c.set = nil
		c.formatTime = makeFormatTimeFunc(DefaultTimeLayout)
		c.template = DefaultTemplate
		c.name = ""
		c.level = DefaultLevel
		c.caller = DefaultCaller
	})
}

// WithOutput returns a functional option that sets the output [io.Writer]
// for log lines.
// If a nil writer is provided, [io.Discard] is used instead.
func WithOutput(w io.Writer) Option {
	if w == nil {
		w = io.Discard
	}

	return locked(func(c *config) { c.output = w })
}

// WithLevel returns a functional option that sets the minimum log level.
// Messages below this level are discarded.
func WithLevel(level Level) Option {
	return locked(func(c *config) { c.level = level })
}

// WithName returns a functional option that sets the logger name, rendered
// by templates that declare a "logger" field.
func WithName(name string) Option {
	return locked(func(c *config) { c.name = name })
}

// WithTemplate returns a functional option that selects the template set by
// name or directory path. Resolution happens when the logger is built, so
// [Make] and [Logger.Wrap] report an unknown name or a broken template
// directory as an error.
func WithTemplate(nameOrPath string) Option {
	return locked(func(c *config) {
		c.template = nameOrPath
		c.set = nil
	})
}

// WithSet returns a functional option that installs an already compiled
// template set, bypassing registry resolution.
func WithSet(set *tmpl.Set) Option {
	return locked(func(c *config) { c.set = set })
}

// WithTimeLayout returns a functional option that sets the layout used to
// format the "time" field offered to templates.
//
// The layout string can be one of the named layouts from the [time] package
// (for example, "RFC3339" or "RFC3339Nano"). Otherwise, it is passed verbatim
// to [time.Time.Format] and must follow the standard specification.
//
// If an empty string or "none" is provided, the "time" field is left unset
// and conditional template groups guarding on it render nothing.
func WithTimeLayout(layout string) Option {
	format := makeFormatTimeFunc(layout)

	return locked(func(c *config) { c.formatTime = format })
}

// WithCaller returns a functional option that controls whether the "caller"
// field is offered to templates.
func WithCaller(enable bool) Option {
	return locked(func(c *config) { c.caller = enable })
}

// makeFormatTimeFunc builds the formatter for the configured layout. Named
// layouts are matched case-insensitively, ignoring punctuation; anything
// unrecognized is passed verbatim to [time.Time.Format].
func makeFormatTimeFunc(layout string) FormatTime {
	if std, ok := namedLayout(layout); ok {
		layout = std
	}

	if layout == "" {
		return func(time.Time) string { return "" }
	}

	return func(t time.Time) string { return t.Format(layout) }
}

// namedLayout resolves aliases for the layout constants in package [time].
// The empty result with ok set reports a disabled timestamp.
func namedLayout(name string) (string, bool) {
	var key strings.Builder

	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			key.WriteRune(r)
		}
	}

	switch key.String() {
	case "", "none":
		return "", true
	case "rfc3339":
		return time.RFC3339, true
	case "rfc3339nano":
		return time.RFC3339Nano, true
	case "ansic":
		return time.ANSIC, true
	case "unixdate":
		return time.UnixDate, true
	case "rubydate":
		return time.RubyDate, true
	case "rfc822":
		return time.RFC822, true
	case "rfc822z":
		return time.RFC822Z, true
	case "rfc850":
		return time.RFC850, true
	case "kitchen":
		return time.Kitchen, true
	case "stamp":
		return time.Stamp, true
	case "stampmilli", "milli", "millis", "ms":
		return time.StampMilli, true
	case "stampmicro", "micro", "micros", "us":
		return time.StampMicro, true
	case "stampnano", "nano", "nanos", "ns":
		return time.StampNano, true
	}

	return "", false
}

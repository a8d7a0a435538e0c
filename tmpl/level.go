package tmpl

//go:generate go tool stringer --linecomment --type Level --output level_string.go

import (
	"iter"
	"log/slog"
	"strings"
)

// Level represents the severity of a log record.
type Level slog.Level

const levelCriticalMask = 12

const (
	LevelDebug    Level = Level(slog.LevelDebug)   // DEBUG
	LevelInfo     Level = Level(slog.LevelInfo)    // INFO
	LevelWarning  Level = Level(slog.LevelWarn)    // WARNING
	LevelError    Level = Level(slog.LevelError)   // ERROR
	LevelCritical Level = Level(levelCriticalMask) // CRITICAL
)

// DefaultLevel is the default log level.
const DefaultLevel = LevelInfo

// Level returns the receiver as a [slog.Level], implementing [slog.Leveler].
func (i Level) Level() slog.Level {
	return slog.Level(i)
}

// Levels returns an iterator over all defined log levels in ascending
// severity.
func Levels() iter.Seq[Level] {
	return func(yield func(Level) bool) {
		for _, level := range []Level{
			LevelDebug,
			LevelInfo,
			LevelWarning,
			LevelError,
			LevelCritical,
		} {
			if !yield(level) {
				return
			}
		}
	}
}

// ParseLevel parses a string representation of a log level.
// Valid level strings are "DEBUG", "INFO", "WARNING", "ERROR", and
// "CRITICAL", optionally followed by a "+" or "-" and an integer offset.
// See [slog.Level.UnmarshalText] for details.
func ParseLevel(s string) Level {
	// Check for "warning" and "critical" explicitly since
	// slog.Level.UnmarshalText doesn't recognize them
	if strings.EqualFold(s, "warning") {
		return LevelWarning
	}

	if strings.EqualFold(s, "critical") {
		return LevelCritical
	}

	l := new(slog.Level)

	err := l.UnmarshalText([]byte(s))
	if err != nil {
		return DefaultLevel
	}

	return Level(*l)
}

package tmpl

import (
	"log/slog"
	"slices"
	"testing"
)

func TestLevelString(t *testing.T) {
	tests := []struct {
		name  string
		level Level
		want  string
	}{
		{name: "debug", level: LevelDebug, want: "DEBUG"},
		{name: "info", level: LevelInfo, want: "INFO"},
		{name: "warning", level: LevelWarning, want: "WARNING"},
		{name: "error", level: LevelError, want: "ERROR"},
		{name: "critical", level: LevelCritical, want: "CRITICAL"},
		{name: "unnamed value", level: Level(2), want: "Level(2)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.level.String(); got != tt.want {
				t.Errorf("Level(%d).String() = %q, want %q", int(tt.level), got, tt.want)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Level
	}{
		{name: "debug lower", input: "debug", want: LevelDebug},
		{name: "debug upper", input: "DEBUG", want: LevelDebug},
		{name: "info", input: "info", want: LevelInfo},
		{name: "warning", input: "warning", want: LevelWarning},
		{name: "warning upper", input: "WARNING", want: LevelWarning},
		{name: "warn alias", input: "warn", want: LevelWarning},
		{name: "error", input: "error", want: LevelError},
		{name: "critical", input: "critical", want: LevelCritical},
		{name: "critical upper", input: "CRITICAL", want: LevelCritical},
		{name: "offset reaches critical", input: "ERROR+4", want: LevelCritical},
		{name: "unknown falls back to default", input: "loud", want: DefaultLevel},
		{name: "empty falls back to default", input: "", want: DefaultLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestLevels(t *testing.T) {
	var got []Level
	for level := range Levels() {
		got = append(got, level)
	}

	want := []Level{LevelDebug, LevelInfo, LevelWarning, LevelError, LevelCritical}
	if !slices.Equal(got, want) {
		t.Errorf("Levels() = %v, want %v", got, want)
	}

	if !slices.IsSorted(got) {
		t.Error("Expected levels in ascending severity")
	}
}

func TestLevelLeveler(t *testing.T) {
	// Level satisfies slog.Leveler so handlers can gate on it directly.
	var leveler slog.Leveler = LevelWarning
	if leveler.Level() != slog.LevelWarn {
		t.Errorf("LevelWarning.Level() = %v, want %v", leveler.Level(), slog.LevelWarn)
	}
}

package tmpl

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeTemplates populates a fresh temporary directory with template files.
func writeTemplates(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()

	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("WriteFile(%q) unexpected error: %v", name, err)
		}
	}

	return dir
}

func render(t *testing.T, set *Set, level Level, fields map[string]any) string {
	t.Helper()

	got, err := set.Render(Record{Level: level, Fields: fields})
	if err != nil {
		t.Fatalf("Render(%s) unexpected error: %v", level, err)
	}

	return got
}

func TestLoadDir(t *testing.T) {
	t.Run("base covers every level", func(t *testing.T) {
		dir := writeTemplates(t, map[string]string{
			"base.tpl": "{message: width=8, fill=.}\n",
		})

		set, err := LoadDir(dir)
		if err != nil {
			t.Fatalf("LoadDir() unexpected error: %v", err)
		}

		if set.Name() != filepath.Base(dir) {
			t.Errorf("Name() = %q, want %q", set.Name(), filepath.Base(dir))
		}

		fields := map[string]any{"message": "hi"}

		for level := range Levels() {
			if got := render(t, set, level, fields); got != "hi......" {
				t.Errorf("Render(%s) = %q, want %q", level, got, "hi......")
			}
		}
	})

	t.Run("override applies only to its level", func(t *testing.T) {
		dir := writeTemplates(t, map[string]string{
			"base.tpl":  "{status: width=4}",
			"error.tpl": "{status: width=4, color=red}",
		})

		set, err := LoadDir(dir)
		if err != nil {
			t.Fatalf("LoadDir() unexpected error: %v", err)
		}

		fields := map[string]any{"status": "ok"}

		if got := render(t, set, LevelError, fields); got != "\x1b[31mok  \x1b[0m" {
			t.Errorf("Render(ERROR) = %q, want styled field", got)
		}

		if got := render(t, set, LevelInfo, fields); got != "ok  " {
			t.Errorf("Render(INFO) = %q, want unstyled base rendering", got)
		}
	})

	t.Run("override replaces the whole attribute set", func(t *testing.T) {
		dir := writeTemplates(t, map[string]string{
			"base.tpl": "{status: width=6, fill=.}",
			"info.tpl": "{status: color=blue}",
		})

		set, err := LoadDir(dir)
		if err != nil {
			t.Fatalf("LoadDir() unexpected error: %v", err)
		}

		fields := map[string]any{"status": "ok"}

		// The override declares no width, so the base padding disappears.
		if got := render(t, set, LevelInfo, fields); got != "\x1b[34mok\x1b[0m" {
			t.Errorf("Render(INFO) = %q, want replacement attributes only", got)
		}

		if got := render(t, set, LevelDebug, fields); got != "ok...." {
			t.Errorf("Render(DEBUG) = %q, want base attributes", got)
		}
	})

	t.Run("override reaches fields inside conditionals", func(t *testing.T) {
		dir := writeTemplates(t, map[string]string{
			"base.tpl": "{if reason}{reason: width=4}{end}",
			"info.tpl": "{reason: color=red}",
		})

		set, err := LoadDir(dir)
		if err != nil {
			t.Fatalf("LoadDir() unexpected error: %v", err)
		}

		fields := map[string]any{"reason": "x"}

		if got := render(t, set, LevelInfo, fields); got != "\x1b[31mx\x1b[0m" {
			t.Errorf("Render(INFO) = %q, want overridden conditional field", got)
		}
	})

	t.Run("override naming unknown field is ignored", func(t *testing.T) {
		dir := writeTemplates(t, map[string]string{
			"base.tpl":  "{message}",
			"debug.tpl": "{nonexistent: width=9}",
		})

		set, err := LoadDir(dir)
		if err != nil {
			t.Fatalf("LoadDir() unexpected error: %v", err)
		}

		fields := map[string]any{"message": "hi"}

		if got := render(t, set, LevelDebug, fields); got != "hi" {
			t.Errorf("Render(DEBUG) = %q, want base rendering", got)
		}
	})

	t.Run("override may span blank lines", func(t *testing.T) {
		dir := writeTemplates(t, map[string]string{
			"base.tpl":     "{message: width=6} {status}",
			"critical.tpl": "{status: color=red}\n\n{message: style=bold}\n",
		})

		set, err := LoadDir(dir)
		if err != nil {
			t.Fatalf("LoadDir() unexpected error: %v", err)
		}

		fields := map[string]any{"message": "hi", "status": "!"}

		want := "\x1b[1mhi\x1b[0m \x1b[31m!\x1b[0m"
		if got := render(t, set, LevelCritical, fields); got != want {
			t.Errorf("Render(CRITICAL) = %q, want %q", got, want)
		}
	})

	t.Run("trailing newlines are trimmed", func(t *testing.T) {
		dir := writeTemplates(t, map[string]string{
			"base.tpl": "{message}\n\n",
		})

		set, err := LoadDir(dir)
		if err != nil {
			t.Fatalf("LoadDir() unexpected error: %v", err)
		}

		if got := render(t, set, LevelInfo, map[string]any{"message": "hi"}); got != "hi" {
			t.Errorf("Render(INFO) = %q, want %q", got, "hi")
		}
	})
}

func TestLoadDirErrors(t *testing.T) {
	tests := []struct {
		name    string
		files   map[string]string
		wantMsg string
	}{
		{
			name:    "missing base",
			files:   map[string]string{"info.tpl": "{message}"},
			wantMsg: "has no base.tpl",
		},
		{
			name: "syntax error in base",
			files: map[string]string{
				"base.tpl": "{if reason}{message}",
			},
			wantMsg: "base.tpl",
		},
		{
			name: "override with literal text",
			files: map[string]string{
				"base.tpl":    "{message} {status}",
				"warning.tpl": "WARN {status: width=3}",
			},
			wantMsg: "only field declarations",
		},
		{
			name: "override with conditional",
			files: map[string]string{
				"base.tpl":  "{message}",
				"error.tpl": "{if reason}{reason}{end}",
			},
			wantMsg: "only field declarations",
		},
		{
			name: "syntax error in override",
			files: map[string]string{
				"base.tpl":  "{message}",
				"debug.tpl": "{message: width=nope}",
			},
			wantMsg: "debug.tpl",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeTemplates(t, tt.files)

			_, err := LoadDir(dir)
			if err == nil {
				t.Fatal("LoadDir() expected error, got nil")
			}

			if !errors.Is(err, ErrSyntax) {
				t.Errorf("LoadDir() error does not wrap ErrSyntax: %v", err)
			}

			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("LoadDir() error = %q, want substring %q", err, tt.wantMsg)
			}
		})
	}
}

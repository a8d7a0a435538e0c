package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestCheckDefaultNames tests validating every available template set.
func TestCheckDefaultNames(t *testing.T) {
	var buf bytes.Buffer

	check := &Check{output: &buf}

	if err := check.Run(context.Background()); err != nil {
		t.Fatalf("Check.Run() unexpected error = %v", err)
	}

	output := buf.String()

	for _, name := range []string{"basic", "default", "none", "precommit"} {
		if !strings.Contains(output, name+": ok") {
			t.Errorf("Check.Run() output = %q, want %q", output, name+": ok")
		}
	}

	if strings.Contains(output, "FAIL") {
		t.Errorf("Check.Run() output = %q, builtin sets should validate", output)
	}
}

// TestCheckCustomDirectory tests validating a template directory by path.
func TestCheckCustomDirectory(t *testing.T) {
	dir := writeTemplateDir(t, map[string]string{
		"base.tpl": "{message: width=40} [{status: color=green}]",
	})

	var buf bytes.Buffer

	check := &Check{
		Name:   []string{dir},
		output: &buf,
	}

	if err := check.Run(context.Background()); err != nil {
		t.Fatalf("Check.Run() unexpected error = %v", err)
	}

	if !strings.Contains(buf.String(), dir+": ok") {
		t.Errorf("Check.Run() output = %q, want %q", buf.String(), dir+": ok")
	}
}

// TestCheckFindings tests the findings reported for failing template sets.
func TestCheckFindings(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		contains []string
	}{
		{
			name:   "unknown color",
			source: "{message: color=chartreuse}",
			contains: []string{
				"invalid template",
				`unknown color: "chartreuse"`,
			},
		},
		{
			name:   "unknown style",
			source: "{message: style=shimmer}",
			contains: []string{
				"invalid template",
				`unknown style: "shimmer"`,
			},
		},
		{
			name:   "syntax error",
			source: "{message",
			contains: []string{
				"parse error",
				"syntax error",
				"^",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeTemplateDir(t, map[string]string{
				"base.tpl": tt.source,
			})

			var buf bytes.Buffer

			check := &Check{
				Name:   []string{dir},
				output: &buf,
			}

			err := check.Run(context.Background())
			if err == nil {
				t.Fatal("Check.Run() expected error, got nil")
			}

			if !strings.Contains(err.Error(), "template validation failed") {
				t.Errorf("Check.Run() error = %q, want validation failure", err)
			}

			output := buf.String()

			if !strings.Contains(output, dir+": FAIL") {
				t.Errorf("Check.Run() output = %q, want %q", output, dir+": FAIL")
			}

			for _, expected := range tt.contains {
				if !strings.Contains(output, expected) {
					t.Errorf("Check.Run() output = %q, want to contain %q", output, expected)
				}
			}

			// Findings print indented beneath the status line.
			if !strings.Contains(output, "\n  ") {
				t.Errorf("Check.Run() output = %q, want indented findings", output)
			}
		})
	}
}

// TestCheckUnknownName tests that unresolvable names fail with a finding.
func TestCheckUnknownName(t *testing.T) {
	var buf bytes.Buffer

	check := &Check{
		Name:   []string{"no-such-template"},
		output: &buf,
	}

	err := check.Run(context.Background())
	if err == nil {
		t.Fatal("Check.Run() expected error, got nil")
	}

	output := buf.String()

	if !strings.Contains(output, "no-such-template: FAIL") {
		t.Errorf("Check.Run() output = %q, want FAIL line", output)
	}

	if !strings.Contains(output, "template not found") {
		t.Errorf("Check.Run() output = %q, want not found finding", output)
	}
}

// TestCheckMixedResults tests that passing sets still print when others
// fail.
func TestCheckMixedResults(t *testing.T) {
	good := writeTemplateDir(t, map[string]string{
		"base.tpl": "{message}",
	})

	bad := filepath.Join(t.TempDir(), "broken")
	if err := os.MkdirAll(bad, 0o755); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(filepath.Join(bad, "base.tpl"), []byte("{message: color=vantablack}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer

	check := &Check{
		Name:   []string{good, bad},
		output: &buf,
	}

	err := check.Run(context.Background())
	if err == nil {
		t.Fatal("Check.Run() expected error, got nil")
	}

	output := buf.String()

	if !strings.Contains(output, good+": ok") {
		t.Errorf("Check.Run() output = %q, want passing set reported", output)
	}

	if !strings.Contains(output, bad+": FAIL") {
		t.Errorf("Check.Run() output = %q, want failing set reported", output)
	}
}

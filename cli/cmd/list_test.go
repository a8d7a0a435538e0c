package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

// TestListAllSections tests that a bare list prints every section.
func TestListAllSections(t *testing.T) {
	var buf bytes.Buffer

	list := &List{output: &buf}

	if err := list.Run(context.Background()); err != nil {
		t.Fatalf("List.Run() unexpected error = %v", err)
	}

	output := buf.String()

	for _, header := range []string{"Templates", "Levels", "Colors", "Styles"} {
		if !strings.Contains(output, header) {
			t.Errorf("List.Run() output missing %q section: %q", header, output)
		}
	}

	// Section entries are indented beneath their headers.
	for _, entry := range []string{"  default", "  DEBUG", "  CRITICAL"} {
		if !strings.Contains(output, entry) {
			t.Errorf("List.Run() output missing entry %q: %q", entry, output)
		}
	}

	// Color and style names print wrapped in their own escape sequences.
	if !strings.Contains(output, "\x1b[31mred\x1b[0m") {
		t.Errorf("List.Run() output missing rendered color entry: %q", output)
	}

	if !strings.Contains(output, "\x1b[1mbold\x1b[0m") {
		t.Errorf("List.Run() output missing rendered style entry: %q", output)
	}

	// Sections are separated by blank lines.
	if !strings.Contains(output, "\n\n") {
		t.Errorf("List.Run() output missing section separators: %q", output)
	}
}

// TestListSingleSection tests that one section flag suppresses the others.
func TestListSingleSection(t *testing.T) {
	var buf bytes.Buffer

	list := &List{Levels: true, output: &buf}

	if err := list.Run(context.Background()); err != nil {
		t.Fatalf("List.Run() unexpected error = %v", err)
	}

	output := buf.String()

	for _, level := range []string{"DEBUG", "INFO", "WARNING", "ERROR", "CRITICAL"} {
		if !strings.Contains(output, "  "+level) {
			t.Errorf("List.Run() output missing level %q: %q", level, output)
		}
	}

	for _, header := range []string{"Templates", "Colors", "Styles"} {
		if strings.Contains(output, header) {
			t.Errorf("List.Run() output should not contain %q section: %q", header, output)
		}
	}

	// A single section prints without separators.
	if strings.Contains(output, "\n\n") {
		t.Errorf("List.Run() output has stray blank line: %q", output)
	}
}

// TestListTemplatesSorted tests that template names print in sorted order.
func TestListTemplatesSorted(t *testing.T) {
	var buf bytes.Buffer

	list := &List{Templates: true, output: &buf}

	if err := list.Run(context.Background()); err != nil {
		t.Fatalf("List.Run() unexpected error = %v", err)
	}

	output := buf.String()

	last := -1

	for _, name := range []string{"basic", "default", "none", "precommit"} {
		idx := strings.Index(output, "  "+name)
		if idx < 0 {
			t.Fatalf("List.Run() output missing template %q: %q", name, output)
		}

		if idx < last {
			t.Errorf("List.Run() template %q out of order: %q", name, output)
		}

		last = idx
	}
}

// TestListMultipleSections tests combining section flags.
func TestListMultipleSections(t *testing.T) {
	var buf bytes.Buffer

	list := &List{Colors: true, Styles: true, output: &buf}

	if err := list.Run(context.Background()); err != nil {
		t.Fatalf("List.Run() unexpected error = %v", err)
	}

	output := buf.String()

	if !strings.Contains(output, "Colors") || !strings.Contains(output, "Styles") {
		t.Errorf("List.Run() output missing requested sections: %q", output)
	}

	if strings.Contains(output, "Templates") || strings.Contains(output, "Levels") {
		t.Errorf("List.Run() output has unrequested sections: %q", output)
	}

	if strings.Index(output, "Colors") > strings.Index(output, "Styles") {
		t.Errorf("List.Run() sections out of order: %q", output)
	}
}

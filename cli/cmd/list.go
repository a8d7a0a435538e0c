package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/linelog/style"
	"github.com/ardnew/linelog/tmpl"
)

// headerStyle renders the section headers of the list command.
//
//nolint:gochecknoglobals
var headerStyle = lipgloss.NewStyle().Bold(true)

// List prints the registered template sets, record levels, and the defined
// color and style names. Color and style entries are printed rendered in
// their own escape sequence. Without section flags all sections print.
type List struct {
	Templates bool `help:"List registered template sets"`
	Levels    bool `help:"List record levels"`
	Colors    bool `help:"List color names"`
	Styles    bool `help:"List style names"`

	output io.Writer
}

// Run executes the list command.
func (l *List) Run(ctx context.Context) (err error) {
	_, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	out := l.output
	if out == nil {
		out = os.Stdout
	}

	all := !l.Templates && !l.Levels && !l.Colors && !l.Styles

	sections := []struct {
		enabled bool
		print   func(io.Writer)
	}{
		{all || l.Templates, printTemplates},
		{all || l.Levels, printLevels},
		{all || l.Colors, printColors},
		{all || l.Styles, printStyles},
	}

	first := true

	for _, s := range sections {
		if !s.enabled {
			continue
		}

		if !first {
			fmt.Fprintln(out)
		}

		first = false

		s.print(out)
	}

	return nil
}

func printTemplates(out io.Writer) {
	fmt.Fprintln(out, headerStyle.Render("Templates"))

	for name := range tmpl.Names() {
		fmt.Fprintf(out, "  %s\n", name)
	}
}

func printLevels(out io.Writer) {
	fmt.Fprintln(out, headerStyle.Render("Levels"))

	for level := range tmpl.Levels() {
		fmt.Fprintf(out, "  %s\n", level)
	}
}

func printColors(out io.Writer) {
	fmt.Fprintln(out, headerStyle.Render("Colors"))

	for name := range style.Colors() {
		code, _ := style.Color(name)
		fmt.Fprintf(out, "  %s%s%s\n", code, name, style.Reset)
	}
}

func printStyles(out io.Writer) {
	fmt.Fprintln(out, headerStyle.Render("Styles"))

	for name := range style.Styles() {
		code, _ := style.Style(name)
		fmt.Fprintf(out, "  %s%s%s\n", code, name, style.Reset)
	}
}

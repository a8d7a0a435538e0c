package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ardnew/linelog/pkg"
	"github.com/ardnew/linelog/tmpl"
)

// Render formats records through a compiled template set.
//
// The record message comes from positional arguments. Without arguments,
// each line of the configured source files (or stdin) becomes the message
// of its own record, which makes the command usable as a pipeline filter.
type Render struct {
	Message []string `arg:"" help:"Record message text" name:"message" optional:""`

	Level     string            `default:"info"    enum:"debug,info,warning,error,critical" help:"Record level (${enum})"                  short:"l"`
	Template  string            `default:"default"                                          help:"Template set name or directory path"     short:"t"`
	Reason    string            `                                                           help:"Record reason field"                     short:"r"`
	Status    string            `                                                           help:"Record status field"`
	Field     map[string]string `                                                           help:"Additional record fields as key=value"   short:"F"`
	AllLevels bool              `                                                           help:"Render the record once at every level"   short:"a"`

	output io.Writer
}

// Run executes the render command.
func (r *Render) Run(ctx context.Context) (err error) {
	_, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	set, err := tmpl.Resolve(r.Template)
	if err != nil {
		return err
	}

	out := r.output
	if out == nil {
		out = os.Stdout
	}

	if len(r.Message) > 0 {
		return r.render(out, set, strings.Join(r.Message, " "))
	}

	if sources := sourceFilesFrom(ctx); sources != nil && !sources.IsZero() {
		return r.renderLines(out, set, sources, pkg.ErrReadInput)
	}

	return r.renderLines(out, set, os.Stdin, pkg.ErrReadStdin)
}

// renderLines renders one record per line of input.
func (r *Render) renderLines(
	out io.Writer, set *tmpl.Set, in io.Reader, readErr pkg.Error,
) error {
	scanner := bufio.NewScanner(in)

	for scanner.Scan() {
		if err := r.render(out, set, scanner.Text()); err != nil {
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		return readErr.Wrap(err)
	}

	return nil
}

// render writes the formatted record, once at the selected level or once
// per level with --all-levels.
func (r *Render) render(out io.Writer, set *tmpl.Set, message string) error {
	rec := r.record(message)

	if !r.AllLevels {
		return writeLine(out, set, rec)
	}

	for level := range tmpl.Levels() {
		rec.Level = level

		if err := writeLine(out, set, rec); err != nil {
			return err
		}
	}

	return nil
}

func writeLine(out io.Writer, set *tmpl.Set, rec tmpl.Record) error {
	line, err := set.Render(rec)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(out, line)

	return err
}

// record builds the record fields from flags and the message text.
// The message argument and the --reason and --status flags shadow
// same-named --field entries.
func (r *Render) record(message string) tmpl.Record {
	fields := make(map[string]any, len(r.Field)+3)

	for key, val := range r.Field {
		fields[key] = val
	}

	if message != "" {
		fields["message"] = message
	}

	if r.Reason != "" {
		fields["reason"] = r.Reason
	}

	if r.Status != "" {
		fields["status"] = r.Status
	}

	return tmpl.Record{Fields: fields, Level: tmpl.ParseLevel(r.Level)}
}

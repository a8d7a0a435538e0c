package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/ardnew/linelog/tmpl"
)

// Fmt dumps a compiled template set in the chosen format.
type Fmt struct {
	Native Native `cmd:"" default:"withargs" help:"Format in native template syntax (default)."`
	JSON   JSON   `cmd:""                    help:"Format as JSON."`
	YAML   YAML   `cmd:""                    help:"Format as YAML."`
}

// Native prints each level's plan in canonical template syntax, one line
// per level.
type Native struct {
	Name string `arg:"" default:"default" help:"Template set name or directory path" name:"name"`

	output io.Writer
}

// Run executes the fmt command.
func (n *Native) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	set, err := tmpl.Resolve(n.Name)
	if err != nil {
		return err
	}

	out := n.output
	if out == nil {
		out = os.Stdout
	}

	return set.Format(ctx, out)
}

// JSON prints a compiled template set as JSON.
type JSON struct {
	Indent int `default:"2" help:"Indent width for JSON output (0 for compact)" short:"i"`

	Name string `arg:"" default:"default" help:"Template set name or directory path" name:"name"`

	output io.Writer
}

// Run executes the json command.
func (j *JSON) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	set, err := tmpl.Resolve(j.Name)
	if err != nil {
		return err
	}

	out := j.output
	if out == nil {
		out = os.Stdout
	}

	err = set.FormatJSON(ctx, out, j.Indent)
	if err != nil {
		return ErrJSONMarshal.
			With(slog.String("template", j.Name)).
			Wrap(err)
	}

	return nil
}

// YAML prints a compiled template set as YAML.
type YAML struct {
	Indent int `default:"2" help:"Indent width for YAML output (0 for flow style)" short:"i"`

	Name string `arg:"" default:"default" help:"Template set name or directory path" name:"name"`

	output io.Writer
}

// Run executes the yaml command.
func (y *YAML) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	set, err := tmpl.Resolve(y.Name)
	if err != nil {
		return err
	}

	out := y.output
	if out == nil {
		out = os.Stdout
	}

	err = set.FormatYAML(ctx, out, y.Indent)
	if err != nil {
		return ErrYAMLMarshal.
			With(slog.String("template", y.Name)).
			Wrap(err)
	}

	return nil
}

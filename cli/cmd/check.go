package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/ardnew/linelog/log"
	"github.com/ardnew/linelog/pkg"
	"github.com/ardnew/linelog/tmpl"
)

// Check validates template sets without rendering anything.
//
// Each set is compiled and checked for per-level coverage and for unknown
// color and style names. One status line per set is printed, with findings
// indented beneath failing sets. The command fails if any set fails.
type Check struct {
	Name []string `arg:"" help:"Template set names or directory paths (default: all built-ins)" name:"name" optional:""`

	output io.Writer
}

// Run executes the check command.
func (c *Check) Run(ctx context.Context) (err error) {
	_, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	names := c.Name
	if len(names) == 0 {
		names = slices.Collect(tmpl.Names())
	}

	out := c.output
	if out == nil {
		out = os.Stdout
	}

	var failed pkg.Error

	for _, name := range names {
		findings := checkSet(name)
		if findings == nil {
			fmt.Fprintf(out, "%s: ok\n", name)

			continue
		}

		fmt.Fprintf(out, "%s: FAIL\n", name)

		for line := range strings.SplitSeq(findings.Error(), "\n") {
			fmt.Fprintf(out, "  %s\n", line)
		}

		failed = failed.Wrap(fmt.Errorf("%s: %w", name, findings))
	}

	if len(failed) > 0 {
		return ErrCheckFailed.
			With(slog.Int("checked", len(names))).
			With(slog.Int("failed", len(failed))).
			Wrap(failed)
	}

	log.DebugContext(ctx, "templates validated", slog.Int("checked", len(names)))

	return nil
}

// checkSet compiles one template set and validates level coverage and
// color/style references.
func checkSet(name string) error {
	set, err := tmpl.Resolve(name)

	switch {
	case errors.Is(err, tmpl.ErrSyntax):
		return pkg.ErrParse.Wrap(err)

	case err != nil:
		return err
	}

	if err := set.Validate(); err != nil {
		return pkg.ErrInvalidTemplate.Wrap(err)
	}

	return nil
}

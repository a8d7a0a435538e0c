package cmd

import (
	"context"

	"github.com/ardnew/linelog/cli/cmd/repl"
	"github.com/ardnew/linelog/tmpl"
)

// Repl starts the interactive template playground.
type Repl struct {
	Template string `default:"default" help:"Template set to load at startup"                 short:"t"`
	Level    string `default:"info"    help:"Record level to preview (${enum})"               short:"l" enum:"debug,info,warning,error,critical"`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ktx := kongContextFrom(ctx)

	cacheDir, ok := ktx.Model.Vars()[CacheIdentifier]
	if !ok {
		panic("internal error: cache namespace undefined")
	}

	return repl.Run(ctx, r.Template, tmpl.ParseLevel(r.Level), cacheDir)
}

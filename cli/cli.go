package cli

import (
	"context"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/linelog/cli/cmd"
	"github.com/ardnew/linelog/pkg"
)

// CLI is the top-level command-line interface for linelog.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Source  []string         `help:"Input source file(s) or '-' for stdin" name:"source" short:"s"`
	Version kong.VersionFlag `help:"Print version and exit"`

	Init  cmd.Init  `cmd:"" help:"Initialize configuration or template files"`
	Fmt   cmd.Fmt   `cmd:"" help:"Format compiled template sets"`
	Check cmd.Check `cmd:"" help:"Validate template sets"`
	List  cmd.List  `cmd:"" help:"List templates, levels, colors, and styles"`
	Repl  cmd.Repl  `cmd:"" help:"Interactive template editor"`

	Render cmd.Render `cmd:"" default:"withargs" help:"Render log records"`
}

// Run executes the linelog CLI with the given context and arguments.
// Kong calls exit with the appropriate code when it terminates the run
// itself, as it does for --help and --version.
func Run(ctx context.Context, exit func(code int), args ...string) error {
	if err := mkdirAllRequired(); err != nil {
		return err
	}

	var cli CLI

	configFilePath := configPath(baseConfig + ".yaml")

	vars := kong.Vars{
		cmd.ConfigIdentifier: configFilePath,
		cmd.CacheIdentifier:  cacheDir(),
		"version":            pkg.Name + " " + strings.TrimSpace(pkg.Version),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Scan for logger flags before parsing so logging is configured early
	// regardless of flag position. TextUnmarshaler on logLevel/logTemplate
	// handles those flags during normal parsing, but the early scan also
	// catches plain flags like --log-caller.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups([]kong.Group{cli.Log.group(), cli.Pprof.group()}),
		kong.BindSingletonProvider(func() context.Context { return ctx }),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			Summary:             true,
			Tree:                true,
			NoExpandSubcommands: true,
		}),
		kong.Configuration(kong.JSON, configPath(baseConfig+".json")),
		kong.Configuration(resolve(baseConfig), configFilePath),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Commands retrieve the kong context and input sources from ctx.
	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithSourceFiles(ctx, cli.Source)

	// The deferred start applies the fully parsed logger configuration,
	// including the flags that have no TextUnmarshaler hook (TimeLayout,
	// Caller).
	defer cli.Log.start(ctx)()

	// Profiling starts only when built with the pprof tag and a mode is
	// configured.
	defer cli.Pprof.start(ctx)()

	return ktx.Run(ctx, &cli)
}

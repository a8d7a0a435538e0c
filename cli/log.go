package cli

import (
	"context"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/linelog/log"
	"github.com/ardnew/linelog/tmpl"
)

// logLevel is a custom type that configures the logger level as a side
// effect of parsing via encoding.TextUnmarshaler.
type logLevel string

// UnmarshalText implements encoding.TextUnmarshaler.
// Kong calls it while parsing --log-level, configuring the logger early
// enough to affect messages emitted during the parse itself.
func (l *logLevel) UnmarshalText(text []byte) error {
	*l = logLevel(text)

	return log.Config(log.WithLevel(log.ParseLevel(string(*l))))
}

// logTemplate is a custom type that configures the logger template as a side
// effect of parsing via encoding.TextUnmarshaler.
type logTemplate string

// UnmarshalText implements encoding.TextUnmarshaler.
// Kong calls it while parsing --log-template. Unknown template names
// surface here as flag parse errors.
func (t *logTemplate) UnmarshalText(text []byte) error {
	*t = logTemplate(text)

	return log.Config(log.WithTemplate(string(*t)))
}

type logConfig struct {
	Level      logLevel    `default:"info"    enum:"debug,info,warning,error,critical" help:"Set log level."`
	Template   logTemplate `default:"default"                                          help:"Set log template (${logTemplates}) or directory path."`
	TimeLayout string      `default:"none"                                             help:"Set timestamp format."`
	Caller     bool        `default:"false"                                            help:"Include caller information." negatable:""`
}

func (*logConfig) vars() kong.Vars {
	return kong.Vars{
		"logTemplates": strings.Join(slices.Collect(tmpl.Names()), ", "),
	}
}

func (*logConfig) group() kong.Group {
	return kong.Group{Key: "log", Title: "Logging options"}
}

// start applies the final logger configuration with all parsed values and
// returns a function that records shutdown.
func (f *logConfig) start(ctx context.Context) (stop func()) {
	err := log.Config(
		log.WithLevel(log.ParseLevel(string(f.Level))),
		log.WithTemplate(string(f.Template)),
		log.WithTimeLayout(f.TimeLayout),
		log.WithCaller(f.Caller),
	)
	if err != nil {
		log.Error("logger configuration", slog.Any("error", err))
	}

	log.DebugContext(ctx, "logger initialized",
		slog.String("level", string(f.Level)),
		slog.String("template", string(f.Template)),
		slog.String("time", f.TimeLayout),
		slog.Bool("caller", f.Caller),
	)

	return func() {
		log.DebugContext(ctx, "logger shutdown")
	}
}

// scan performs an early pass over command-line arguments to apply logger
// configuration before Kong begins parsing, so the logger is configured
// regardless of flag position.
//
// The logLevel and logTemplate types configure the logger through
// encoding.TextUnmarshaler as Kong parses, but plain flags like TimeLayout
// and Caller have no such hook.
func (f *logConfig) scan(args []string) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "--log-") &&
			!strings.HasPrefix(arg, "--no-log-") {
			continue
		}

		name, value, assigned := strings.Cut(arg, "=")

		// Non-boolean flags consume the next argument when no "=" value
		// was given.
		switch name {
		case "--log-level", "--log-template", "--log-time-layout":
			if !assigned && i+1 < len(args) && len(args[i+1]) > 0 &&
				args[i+1][0] != '-' {
				value = args[i+1]
				i++
			}
		}

		switch name {
		case "--log-level":
			_ = f.Level.UnmarshalText([]byte(value))

		case "--log-template":
			_ = f.Template.UnmarshalText([]byte(value))

		case "--log-time-layout":
			f.TimeLayout = value

			_ = log.Config(log.WithTimeLayout(value))

		case "--log-caller", "--no-log-caller":
			enable := name == "--log-caller"

			if assigned {
				v, err := strconv.ParseBool(value)
				if err != nil {
					break
				}

				enable = v == enable
			}

			f.Caller = enable

			_ = log.Config(log.WithCaller(enable))
		}
	}
}

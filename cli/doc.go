// Package cli contains the command line interface for linelog.
//
// # Usage
//
// The default command renders a log record with a template set:
//
//	linelog "Backup completed." --status OK --level info
//
// Subcommands cover the rest of the surface: check validates template
// sets, list prints the known templates, levels, colors, and styles,
// fmt dumps a compiled set in native, JSON, or YAML form, init writes
// configuration and template files, and repl starts an interactive
// template editor.
//
// Records may also be read from files or stdin with --source, and
// --version prints the program version.
//
// # Configuration
//
// Flags may be set in a config file in the user configuration directory,
// resolved through Kong before parsing. Two formats are recognized:
// config.json (flat JSON object) and config.yaml, whose values live under
// a top-level "config" section with underscored flag names:
//
//	config:
//	  log_level: debug
//	  log_template: default
//
// Command-line flags always override config file values. The file is
// generated with current flag values by "linelog init config".
//
// # Logging Options
//
//   - --log-level: Set minimum log level (debug, info, warning, error,
//     critical)
//   - --log-template: Set the diagnostic log template name or directory
//   - --log-time-layout: Set timestamp format (RFC3339, Kitchen, none, ...)
//   - --log-caller: Include caller information in log output
//
// Logger flags are applied in an early argument scan so that diagnostics
// emitted during parsing already use the requested template and level.
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default:
//     ~/.cache/linelog/pprof)
//
// # Examples
//
//	# Render one record at every configured level
//	linelog "Mounting volume." --reason "3 of 4 ready." --all-levels
//
//	# Validate a custom template directory
//	linelog check ./mytemplate
//
//	# Debug logging with CPU profiling
//	linelog --log-level=debug --pprof-mode=cpu check
package cli

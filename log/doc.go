// Package log provides a concurrency-safe logging interface based on
// [log/slog] whose output is formatted by per-level templates.
//
// Each record renders through the template plan configured for its exact
// severity, producing a single aligned, styled line. Templates come from
// the builtin presets, a registered loader, or a template directory; see
// the tmpl package for the template language.
//
// # Basic Usage
//
//	logger, err := log.Make(os.Stderr)
//	if err != nil {
//		return err
//	}
//	logger.Info("Backup completed.", slog.String("status", "OK"))
//
// # Configuration
//
// Configure the logger using functional options:
//
//	logger, err := log.Make(os.Stderr,
//		log.WithTemplate("precommit"),
//		log.WithLevel(log.LevelDebug),
//		log.WithCaller(true))
//
// [Make] resolves the configured template eagerly, so an unknown template
// name or a broken template directory fails construction instead of
// surfacing later on a log call.
//
// # Template Fields
//
// Attributes attached to a record or bound with [Logger.With] become the
// fields a template renders. The handler injects "message" and "level" on
// every record, "logger" when the logger is named with [WithName], "time"
// when a layout is configured with [WithTimeLayout], and "caller" when
// enabled with [WithCaller]. A "template" attribute is consumed rather than
// rendered: it selects a different template set for that record only.
//
//	logger.Info("System check completed.",
//		slog.String("reason", "All systems operational."),
//		slog.String("status", "OK"))
//
// # Supported Levels
//
// The package supports five levels in ascending severity: [LevelDebug],
// [LevelInfo], [LevelWarning], [LevelError], and [LevelCritical]. Messages
// below the configured level are discarded. A message whose level the
// template set does not configure still reaches the output as a bare
// "LEVEL message" line, and the handler reports
// [github.com/ardnew/linelog/tmpl.ErrLevelNotConfigured].
package log

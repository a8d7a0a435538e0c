package log

import (
	"context"
	"io"
	"log/slog"
	"maps"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"

	"github.com/ardnew/linelog/tmpl"
)

// Reserved record keys consumed or injected by the handler.
const (
	// templateKey selects a one-off template set for a single record. The
	// attribute is consumed, never rendered.
	templateKey = "template"

	// messageKey, levelKey, loggerKey, timeKey, and callerKey are injected
	// from the record itself and shadow attributes of the same name.
	messageKey = "message"
	levelKey   = "level"
	loggerKey  = "logger"
	timeKey    = "time"
	callerKey  = "caller"
)

// lineBreaks collapses line breaks in fallback output, mirroring the
// single-line guarantee of template rendering.
//
//nolint:gochecknoglobals
var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// templateHandler is a [slog.Handler] that formats each record through the
// template set configured for its exact level and writes the resulting line
// to a shared output.
type templateHandler struct {
	mutex      *sync.Mutex
	output     io.Writer
	set        *tmpl.Set
	formatTime FormatTime
	fields     map[string]any
	groups     []string
	name       string
	level      Level
	caller     bool
}

// newTemplateHandler builds a handler from a resolved configuration.
func newTemplateHandler(c config) *templateHandler {
	return &templateHandler{
		mutex:      &sync.Mutex{},
		output:     c.output,
		set:        c.set,
		formatTime: c.formatTime,
		name:       c.name,
		level:      c.level,
		caller:     c.caller,
	}
}

// Enabled implements [slog.Handler].
func (h *templateHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// WithAttrs implements [slog.Handler]. Attribute keys are qualified by any
// open groups with "." separators, matching the field names templates see.
func (h *templateHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}

	clone := h.clone()

	for _, a := range attrs {
		addAttr(clone.fields, clone.groups, a)
	}

	return clone
}

// WithGroup implements [slog.Handler].
func (h *templateHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	clone := h.clone()
	clone.groups = append(clone.groups, name)

	return clone
}

// clone copies the handler for derivation. The mutex and output are shared
// so derived handlers still serialize their writes.
func (h *templateHandler) clone() *templateHandler {
	fields := make(map[string]any, len(h.fields)+1)
	maps.Copy(fields, h.fields)

	return &templateHandler{
		mutex:      h.mutex,
		output:     h.output,
		set:        h.set,
		formatTime: h.formatTime,
		fields:     fields,
		groups:     h.groups[:len(h.groups):len(h.groups)],
		name:       h.name,
		level:      h.level,
		caller:     h.caller,
	}
}

// Handle implements [slog.Handler].
//
// The record's attributes become template fields, joined with any bound by
// [templateHandler.WithAttrs]. The handler then injects the reserved fields:
// "message" and "level" always, "logger" when the logger is named, "time"
// when a time layout is configured, and "caller" when caller reporting is
// enabled.
//
// A "template" attribute on the record selects a different template set for
// this record only; if its value does not resolve, the configured set is
// used and the resolution error is returned after the line is written. A
// record whose level has no plan in the set still produces a bare
// "LEVEL message" line, and the error is returned to the caller.
func (h *templateHandler) Handle(_ context.Context, r slog.Record) error {
	fields := make(map[string]any, len(h.fields)+r.NumAttrs()+5)
	maps.Copy(fields, h.fields)

	r.Attrs(func(a slog.Attr) bool {
		addAttr(fields, h.groups, a)

		return true
	})

	set := h.set

	var overrideErr error

	if v, ok := fields[templateKey]; ok {
		delete(fields, templateKey)

		if name, ok := v.(string); ok {
			if override, err := tmpl.Resolve(name); err == nil {
				set = override
			} else {
				overrideErr = err
			}
		}
	}

	level := Level(r.Level)

	fields[messageKey] = r.Message
	fields[levelKey] = level.String()

	if h.name != "" {
		fields[loggerKey] = h.name
	}

	if !r.Time.IsZero() {
		if stamp := h.formatTime(r.Time); stamp != "" {
			fields[timeKey] = stamp
		}
	}

	if h.caller && r.PC != 0 {
		fields[callerKey] = callerLocation(r.PC)
	}

	line, err := set.Render(tmpl.Record{Level: level, Fields: fields})
	if err != nil {
		line = level.String() + " " + lineBreaks.Replace(r.Message)
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()

	if _, werr := io.WriteString(h.output, line+"\n"); werr != nil {
		return werr
	}

	if err != nil {
		return err
	}

	return overrideErr
}

// addAttr stores one attribute in the field map under its group-qualified
// key. Group-valued attributes flatten recursively; inline groups (empty
// key) flatten into the enclosing scope per the [slog.Handler] contract.
func addAttr(fields map[string]any, groups []string, a slog.Attr) {
	a.Value = a.Value.Resolve()

	if a.Value.Kind() == slog.KindGroup {
		sub := a.Value.Group()

		if a.Key != "" {
			groups = append(groups[:len(groups):len(groups)], a.Key)
		}

		for _, g := range sub {
			addAttr(fields, groups, g)
		}

		return
	}

	if a.Equal(slog.Attr{}) {
		return
	}

	key := a.Key
	if len(groups) > 0 {
		key = strings.Join(groups, ".") + "." + key
	}

	fields[key] = a.Value.Any()
}

// callerLocation formats a program counter as "file:line" with the
// directory stripped.
func callerLocation(pc uintptr) string {
	frame, _ := runtime.CallersFrames([]uintptr{pc}).Next()
	if frame.File == "" {
		return ""
	}

	return filepath.Base(frame.File) + ":" + strconv.Itoa(frame.Line)
}

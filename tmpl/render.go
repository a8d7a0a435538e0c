package tmpl

import (
	"errors"
	"fmt"
	"iter"
	"maps"
	"slices"
	"strings"

	"github.com/ardnew/linelog/style"
	"github.com/ardnew/linelog/textwidth"
)

// truncateMark is appended to values cut by a truncate attribute. Its
// single column is counted inside the truncation budget.
const truncateMark = "…"

// Plan is the compiled render program for one level. Plans are immutable
// after compilation and safe for concurrent use: rendering reads them
// without locks and never mutates them.
type Plan struct {
	nodes []Node
}

// Record is one log event presented to a template: a severity level and an
// open field mapping. The message itself travels as the "message" field;
// "reason" and "status" are conventional, but a template may name any field
// a caller supplies.
type Record struct {
	Fields map[string]any
	Level  Level
}

// Set maps levels to their render plans.
type Set struct {
	plans map[Level]*Plan
	name  string
}

// NewSet builds a template set from explicit per-level plans. The map is
// copied; the plans are shared.
func NewSet(name string, plans map[Level]*Plan) *Set {
	cp := make(map[Level]*Plan, len(plans))
	maps.Copy(cp, plans)

	return &Set{plans: cp, name: name}
}

// Name returns the name the set was registered or loaded under.
func (s *Set) Name() string {
	return s.name
}

// Plan returns the render plan configured for the given level.
func (s *Set) Plan(level Level) (*Plan, bool) {
	plan, ok := s.plans[level]

	return plan, ok
}

// Levels returns the configured levels in ascending severity.
func (s *Set) Levels() iter.Seq[Level] {
	return func(yield func(Level) bool) {
		for _, level := range slices.Sorted(maps.Keys(s.plans)) {
			if !yield(level) {
				return
			}
		}
	}
}

// Render formats one record using the plan configured for its exact level.
//
// A level with no plan fails with [ErrLevelNotConfigured]; no other level's
// plan is ever substituted. Rendering itself cannot fail: absent fields
// fall back to their declared defaults and unknown color or style names
// degrade to unstyled output. The result is always a single line with no
// trailing newline, and rendering the same record twice yields identical
// output.
func (s *Set) Render(rec Record) (string, error) {
	plan, ok := s.plans[rec.Level]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrLevelNotConfigured, rec.Level)
	}

	var b strings.Builder

	renderNodes(&b, plan.nodes, rec)

	return b.String(), nil
}

// Validate checks that the set covers the given levels (all five defined
// levels when none are named) and that every color and style name its plans
// reference is defined. Findings are aggregated into the returned error.
func (s *Set) Validate(levels ...Level) error {
	if len(levels) == 0 {
		levels = slices.Collect(Levels())
	}

	var errs []error

	for _, level := range levels {
		if _, ok := s.plans[level]; !ok {
			errs = append(errs, fmt.Errorf("%w: %s", ErrLevelNotConfigured, level))
		}
	}

	for level := range s.Levels() {
		walkNodes(s.plans[level].nodes, func(n Node) {
			if n.Attrs == nil {
				return
			}

			if n.Attrs.Color != "" {
				if _, err := style.Color(n.Attrs.Color); err != nil {
					errs = append(errs, fmt.Errorf("%s: field %q: %w", level, n.Field, err))
				}
			}

			for _, name := range n.Attrs.Styles {
				if _, err := style.Style(name); err != nil {
					errs = append(errs, fmt.Errorf("%s: field %q: %w", level, n.Field, err))
				}
			}
		})
	}

	return errors.Join(errs...)
}

// walkNodes visits every node in depth-first order.
func walkNodes(nodes []Node, visit func(Node)) {
	for _, n := range nodes {
		visit(n)

		if len(n.Nodes) > 0 {
			walkNodes(n.Nodes, visit)
		}
	}
}

// renderNodes appends the rendering of each node in order. No separators
// are inserted between nodes; spacing comes only from the template itself.
func renderNodes(b *strings.Builder, nodes []Node, rec Record) {
	for _, n := range nodes {
		switch n.Kind {
		case KindText:
			b.WriteString(sanitize(n.Text))

		case KindField:
			b.WriteString(renderField(n, rec))

		case KindPad:
			b.WriteString(renderPad(n))

		case KindCond:
			if truthy(rec.Fields[n.Field]) {
				renderNodes(b, n.Nodes, rec)
			}
		}
	}
}

// renderField formats one field value through the fixed pipeline: default
// substitution, truncation, padding, then styling.
func renderField(n Node, rec Record) string {
	attrs := n.Attrs
	if attrs == nil {
		attrs = &Attrs{}
	}

	text := fieldText(rec.Fields[n.Field])
	if text == "" {
		text = attrs.Default
	}

	text = sanitize(text)

	if attrs.Truncate > 0 && textwidth.String(text) > attrs.Truncate {
		text = textwidth.Truncate(text, attrs.Truncate, truncateMark)
	}

	text = pad(text, attrs.Width, attrs.Align, attrs.Fill)

	return stylize(text, attrs.Color, attrs.Styles)
}

// renderPad emits a padding run: the declared number of fill characters,
// or exactly one when no width is declared.
func renderPad(n Node) string {
	fill := "."
	width := 1

	if n.Attrs != nil {
		if n.Attrs.Fill != "" {
			fill = n.Attrs.Fill
		}

		if n.Attrs.Width > 0 {
			width = n.Attrs.Width
		}
	}

	return strings.Repeat(fill, width)
}

// pad aligns text within width columns using the given fill character. The
// pad amount clamps at zero, so a value wider than the field is returned
// unchanged rather than cropped.
func pad(text string, width int, align Align, fill string) string {
	if width <= 0 {
		return text
	}

	gap := width - textwidth.String(text)
	if gap <= 0 {
		return text
	}

	if fill == "" {
		fill = " "
	}

	switch align {
	case AlignRight:
		return strings.Repeat(fill, gap) + text

	case AlignCenter:
		left := gap / 2

		return strings.Repeat(fill, left) + text + strings.Repeat(fill, gap-left)

	default:
		return text + strings.Repeat(fill, gap)
	}
}

// stylize wraps text in its declared color and style escapes. The color
// wraps innermost, styles wrap outside it, and each layer is terminated by
// a reset. An unknown color or style name degrades the whole field to
// unstyled text; the line still renders.
func stylize(text, color string, styles []string) string {
	var colorCode, styleCode string

	if color != "" {
		code, err := style.Color(color)
		if err != nil {
			return text
		}

		colorCode = code
	}

	if len(styles) > 0 {
		code, err := style.Compose(styles...)
		if err != nil {
			return text
		}

		styleCode = code
	}

	if colorCode != "" {
		text = colorCode + text + style.Reset
	}

	if styleCode != "" {
		text = styleCode + text + style.Reset
	}

	return text
}

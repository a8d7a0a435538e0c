package tmpl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
)

// Source returns the canonical source form of the plan. Parsing the result
// produces an equivalent plan, so it doubles as a normalizer: attribute
// order is fixed and default values are omitted.
func (p *Plan) Source() string {
	var b strings.Builder

	writeNodes(&b, p.nodes)

	return b.String()
}

// planDump is the serializable form of one level's plan.
type planDump struct {
	Level  string `json:"level"  yaml:"level"`
	Source string `json:"source" yaml:"source"`
	Nodes  []Node `json:"nodes"  yaml:"nodes"`
}

// setDump is the serializable form of a compiled set.
type setDump struct {
	Name   string     `json:"name"   yaml:"name"`
	Levels []planDump `json:"levels" yaml:"levels"`
}

// dump flattens the set into its serializable form, levels in ascending
// severity.
func (s *Set) dump() setDump {
	d := setDump{Name: s.name}

	for level := range s.Levels() {
		plan := s.plans[level]
		d.Levels = append(d.Levels, planDump{
			Level:  level.String(),
			Source: plan.Source(),
			Nodes:  plan.nodes,
		})
	}

	return d
}

// Format writes each level's plan in canonical template syntax, one line
// per level.
func (s *Set) Format(_ context.Context, w io.Writer) error {
	for level := range s.Levels() {
		_, err := fmt.Fprintf(w, "%s: %s\n", level, s.plans[level].Source())
		if err != nil {
			return err
		}
	}

	return nil
}

// FormatJSON writes the compiled set as JSON to the writer.
func (s *Set) FormatJSON(_ context.Context, w io.Writer, indent int) error {
	var (
		jsonData []byte
		err      error
	)

	if indent > 0 {
		jsonData, err = json.MarshalIndent(s.dump(), "", strings.Repeat(" ", indent))
	} else {
		jsonData, err = json.Marshal(s.dump())
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(jsonData))

	return err
}

// FormatYAML writes the compiled set as YAML to the writer.
func (s *Set) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	yamlData, err := yaml.MarshalContext(ctx, s.dump(), opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(yamlData))

	return err
}

// writeNodes writes nodes in canonical source syntax.
func writeNodes(b *strings.Builder, nodes []Node) {
	for _, n := range nodes {
		switch n.Kind {
		case KindText:
			b.WriteString(escapeText(n.Text))

		case KindField:
			writeDecl(b, n.Field, n.Attrs)

		case KindPad:
			writeDecl(b, "pad", n.Attrs)

		case KindCond:
			b.WriteString("{if ")
			b.WriteString(n.Field)
			b.WriteByte('}')
			writeNodes(b, n.Nodes)
			b.WriteString("{end}")
		}
	}
}

// escapeText doubles braces so literal text survives a reparse.
func escapeText(s string) string {
	s = strings.ReplaceAll(s, "{", "{{")

	return strings.ReplaceAll(s, "}", "}}")
}

// writeDecl writes one field or padding declaration with its non-default
// attributes in canonical order.
func writeDecl(b *strings.Builder, name string, attrs *Attrs) {
	b.WriteByte('{')
	b.WriteString(name)

	var parts []string

	if attrs != nil {
		if attrs.Width > 0 {
			parts = append(parts, "width="+strconv.Itoa(attrs.Width))
		}

		if attrs.Truncate > 0 {
			parts = append(parts, "truncate="+strconv.Itoa(attrs.Truncate))
		}

		if attrs.Align != AlignLeft {
			parts = append(parts, "align="+attrs.Align.String())
		}

		if attrs.Fill != "" {
			parts = append(parts, "fill="+quoteValue(attrs.Fill))
		}

		if attrs.Color != "" {
			parts = append(parts, "color="+quoteValue(attrs.Color))
		}

		if len(attrs.Styles) > 0 {
			parts = append(parts, "style="+quoteValue(strings.Join(attrs.Styles, ",")))
		}

		if attrs.Default != "" {
			parts = append(parts, "default="+quoteValue(attrs.Default))
		}
	}

	if len(parts) > 0 {
		b.WriteString(": ")
		b.WriteString(strings.Join(parts, ", "))
	}

	b.WriteByte('}')
}

// quoteValue quotes an attribute value only when the bare form would not
// survive a reparse. Quoting uses the template escapes, not Go's.
func quoteValue(s string) string {
	if s != "" && !strings.ContainsAny(s, ",}\"\\ \t\r\n") {
		return s
	}

	var b strings.Builder

	b.WriteByte('"')

	for _, r := range s {
		switch r {
		case '\\', '"':
			b.WriteByte('\\')
			b.WriteRune(r)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}

	b.WriteByte('"')

	return b.String()
}

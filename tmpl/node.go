package tmpl

import (
	"fmt"
	"strings"
)

// Kind discriminates the node variants of a compiled plan.
type Kind int

const (
	KindText  Kind = iota // literal text
	KindField             // field reference
	KindPad               // padding run
	KindCond              // conditional group
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindField:
		return "field"
	case KindPad:
		return "pad"
	case KindCond:
		return "cond"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// MarshalText implements [encoding.TextMarshaler] so plan dumps name kinds
// instead of printing ordinals.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Align positions a value within its padded field width.
type Align int

const (
	AlignLeft   Align = iota // pad on the right
	AlignRight               // pad on the left
	AlignCenter              // pad both sides, extra cell on the right
)

// String returns the lower-case name of the alignment.
func (a Align) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignRight:
		return "right"
	case AlignCenter:
		return "center"
	default:
		return fmt.Sprintf("Align(%d)", int(a))
	}
}

// MarshalText implements [encoding.TextMarshaler] so plan dumps name
// alignments instead of printing ordinals.
func (a Align) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// ParseAlign parses an alignment name.
func ParseAlign(s string) (Align, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left":
		return AlignLeft, nil
	case "right":
		return AlignRight, nil
	case "center":
		return AlignCenter, nil
	default:
		return AlignLeft, fmt.Errorf("invalid alignment %q (expected left, right, or center)", s)
	}
}

// Attrs carries the presentation attributes declared on a field or padding
// node. The zero value renders the field verbatim with no width, styling,
// or fallback.
type Attrs struct {
	Styles   []string `json:"style,omitempty"    yaml:"style,omitempty"`
	Color    string   `json:"color,omitempty"    yaml:"color,omitempty"`
	Fill     string   `json:"fill,omitempty"     yaml:"fill,omitempty"`
	Default  string   `json:"default,omitempty"  yaml:"default,omitempty"`
	Width    int      `json:"width,omitempty"    yaml:"width,omitempty"`
	Truncate int      `json:"truncate,omitempty" yaml:"truncate,omitempty"`
	Align    Align    `json:"align,omitempty"    yaml:"align,omitempty"`
}

// Node is a single element of a compiled plan. The active variant is
// discriminated by Kind: literal text, a field reference with attributes, a
// padding run, or a conditional group rendered only when its guard field is
// present. Field names the node's field or, for conditionals, its guard.
type Node struct {
	Attrs *Attrs `json:"attrs,omitempty" yaml:"attrs,omitempty"`
	Nodes []Node `json:"nodes,omitempty" yaml:"nodes,omitempty"`
	Text  string `json:"text,omitempty"  yaml:"text,omitempty"`
	Field string `json:"field,omitempty" yaml:"field,omitempty"`
	Kind  Kind   `json:"kind"            yaml:"kind"`
}

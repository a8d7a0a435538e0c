package repl

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// activeAttrStyle highlights the attribute under the cursor in the hint
// bar.
var activeAttrStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("6")).
	Bold(true)

// attrUsage holds the one-line usage hint shown while the cursor is inside
// an attribute value.
var attrUsage = map[string]string{
	"width":    "width=COLS  pad the value to COLS display columns",
	"truncate": "truncate=COLS  cut the value to COLS columns with …",
	"align":    "align=left|right|center  position within the padded width",
	"fill":     "fill=CHAR  single-column padding character",
	"color":    "color=NAME  symbolic color, plain text when unknown",
	"style":    "style=NAMES  comma-separated styles, plain when unknown",
	"default":  "default=TEXT  substitute for absent field values",
}

// renderAttrHint renders the declaration hint line: the usage of the
// active attribute when the cursor is inside its value, or the accepted
// attribute keys with the one being typed highlighted.
func renderAttrHint(dc declContext) string {
	if !dc.inDecl || !dc.inAttrs {
		return ""
	}

	if dc.inValue {
		usage, ok := attrUsage[dc.attr]
		if !ok {
			return ""
		}

		return hintStyle.Render(usage)
	}

	keys := attrNames
	if dc.isPad {
		keys = padAttrNames
	}

	parts := make([]string, len(keys))

	for i, key := range keys {
		if key == dc.attr {
			parts[i] = activeAttrStyle.Render(key)
		} else {
			parts[i] = hintStyle.Render(key)
		}
	}

	return strings.Join(parts, hintStyle.Render(", "))
}

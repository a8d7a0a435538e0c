// Package textwidth measures the display width of strings in terminal
// columns.
//
// Widths are computed per grapheme cluster, so combining marks, emoji
// modifier sequences, and ZWJ families are measured as single units.
// Any emoji cluster occupies exactly one column, ANSI escape sequences and
// control characters occupy none, and every other cluster is measured with
// its East Asian width. Code points the tables do not recognize degrade to
// a width of one column rather than reporting an error.
package textwidth

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

const (
	zwj  = 0x200D // zero-width joiner
	vs16 = 0xFE0F // variation selector-16, requests emoji presentation
)

// pictographic spans the code point ranges treated as emoji regardless of
// joiners or variation selectors.
//
//nolint:gochecknoglobals
var pictographic = [...][2]rune{
	{0x2600, 0x26FF},   // miscellaneous symbols
	{0x2700, 0x27BF},   // dingbats
	{0x1F1E6, 0x1F1FF}, // regional indicators
	{0x1F300, 0x1F5FF}, // miscellaneous symbols and pictographs
	{0x1F600, 0x1F64F}, // emoticons
	{0x1F680, 0x1F6FF}, // transport and map symbols
	{0x1F900, 0x1F9FF}, // supplemental symbols and pictographs
	{0x1FA70, 0x1FAFF}, // symbols and pictographs extended-A
}

// String returns the display width of s in terminal columns.
//
// ANSI escape sequences embedded in s are stripped before measuring, so a
// styled string measures the same as its unstyled content.
func String(s string) int {
	if s == "" {
		return 0
	}

	var width int

	state := -1
	rest := ansi.Strip(s)

	for len(rest) > 0 {
		var cluster string

		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		width += clusterWidth(cluster)
	}

	return width
}

// Truncate cuts s on a grapheme cluster boundary so that the result with
// tail appended occupies at most width columns. The tail is counted inside
// the width budget. Strings that already fit are returned unmodified.
//
// Truncate operates on unstyled text; apply styling after truncation.
func Truncate(s string, width int, tail string) string {
	if String(s) <= width {
		return s
	}

	budget := width - String(tail)
	if budget <= 0 {
		return tail
	}

	var b strings.Builder

	var used int

	state := -1
	rest := s

	for len(rest) > 0 {
		var cluster string

		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)

		used += clusterWidth(cluster)
		if used > budget {
			break
		}

		b.WriteString(cluster)
	}

	b.WriteString(tail)

	return b.String()
}

// clusterWidth measures a single grapheme cluster.
func clusterWidth(cluster string) int {
	if cluster == "" {
		return 0
	}

	if isEmoji(cluster) {
		return 1
	}

	return runewidth.StringWidth(cluster)
}

// isEmoji reports whether the cluster renders as an emoji: it contains a
// zero-width joiner, requests emoji presentation with VS16, or begins in a
// pictographic block.
func isEmoji(cluster string) bool {
	for _, r := range cluster {
		if r == zwj || r == vs16 {
			return true
		}

		for _, span := range pictographic {
			if r >= span[0] && r <= span[1] {
				return true
			}
		}
	}

	return false
}

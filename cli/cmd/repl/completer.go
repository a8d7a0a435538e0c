package repl

import (
	"maps"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/linelog/style"
)

// ctrlCommands are the available control-mode commands.
var ctrlCommands = []string{
	"help", "list", "show", "set", "unset", "level", "load", "clear", "quit",
}

// attrNames are the attribute keys accepted inside a field declaration.
var attrNames = []string{
	"width", "truncate", "align", "fill", "color", "style", "default",
}

// padAttrNames are the attribute keys accepted inside a padding
// declaration.
var padAttrNames = []string{"fill", "width"}

// alignNames are the accepted values of the align attribute.
var alignNames = []string{"left", "right", "center"}

// isWordBoundary returns true if the rune is a word delimiter for
// completion purposes. This covers template punctuation, quotes, and
// whitespace. Dots and hyphens are intentionally excluded because field
// names may contain both (e.g., http.status or exit-code).
func isWordBoundary(r rune) bool {
	switch r {
	case '{', '}', ':', ',', '=', '"', ' ', '\t':
		return true
	}

	return false
}

// wordBounds returns the current word at the cursor position and its byte
// boundaries within input. Returns an empty word when the cursor sits on a
// boundary (after a comma, before a closing brace, start of line, etc.).
func wordBounds(input string, cursor int) (word string, start, end int) {
	if cursor > len(input) {
		cursor = len(input)
	}

	// Walk backward from cursor to find word start.
	start = cursor

	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	// Walk forward from cursor to find word end.
	end = cursor

	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isWordBoundary(r) {
			break
		}

		end += size
	}

	word = input[start:end]

	return word, start, end
}

// byteOffset converts a rune index reported by the text input into a byte
// offset within s.
func byteOffset(s string, runes int) int {
	for i := range s {
		if runes == 0 {
			return i
		}

		runes--
	}

	return len(s)
}

// openBrace returns the byte offset just past the innermost '{' left open
// before the cursor, or -1 when the cursor sits in literal text. Doubled
// braces are literal and quoted attribute values never open or close a
// declaration.
func openBrace(input string, cursor int) int {
	if cursor > len(input) {
		cursor = len(input)
	}

	open := -1
	quoted := false

	for i := 0; i < cursor; {
		r, size := utf8.DecodeRuneInString(input[i:])

		switch {
		case quoted:
			if r == '"' {
				quoted = false
			}

		case r == '"' && open >= 0:
			quoted = true

		case r == '{':
			if open < 0 && i+1 < cursor && input[i+1] == '{' {
				i += 2

				continue
			}

			open = i + size

		case r == '}':
			open = -1
		}

		i += size
	}

	return open
}

// declContext describes where the cursor sits inside a declaration.
type declContext struct {
	field   string // declared name (empty while still typing it)
	attr    string // attribute key of the current segment
	inDecl  bool   // cursor is inside an open declaration
	inAttrs bool   // cursor is past the ':' separator
	inValue bool   // cursor is past '=' within the current segment
	isPad   bool   // declaration is a padding run
	isCond  bool   // declaration is a conditional guard
}

// declContextAt classifies the cursor position within its innermost open
// declaration.
func declContextAt(input string, cursor int) declContext {
	open := openBrace(input, cursor)
	if open < 0 {
		return declContext{}
	}

	body := input[open:cursor]

	dc := declContext{inDecl: true}

	if rest, ok := strings.CutPrefix(strings.TrimLeft(body, " \t"), "if "); ok {
		// Conditional guards complete like field names.
		dc.isCond = true
		body = rest
	}

	name, attrPart, hasColon := strings.Cut(body, ":")
	dc.field = strings.TrimSpace(name)
	dc.isPad = dc.field == "pad"

	if !hasColon {
		return dc
	}

	dc.inAttrs = true

	if strings.Count(attrPart, `"`)%2 == 1 {
		// Cursor is inside a quoted value. The active attribute is the
		// key of the segment holding the opening quote.
		segment := attrPart[:strings.LastIndex(attrPart, `"`)]
		if idx := strings.LastIndex(segment, ","); idx >= 0 {
			segment = segment[idx+1:]
		}

		key, _, _ := strings.Cut(segment, "=")
		dc.attr = strings.TrimSpace(key)
		dc.inValue = true

		return dc
	}

	// Only the segment after the last comma matters for completion.
	segment := attrPart
	if idx := strings.LastIndex(attrPart, ","); idx >= 0 {
		segment = attrPart[idx+1:]
	}

	key, _, hasEq := strings.Cut(segment, "=")
	dc.attr = strings.TrimSpace(key)
	dc.inValue = hasEq

	return dc
}

// tmplCandidates returns the completion candidates for the cursor context
// in template mode: attribute keys inside a declaration, defined names inside
// an enumerable attribute value, and sample record field names while the
// declared name is still being typed. Text positions have no candidates so
// the hint line stays visible.
func (m model) tmplCandidates(dc declContext) []string {
	switch {
	case !dc.inDecl:
		return nil

	case dc.inValue:
		switch dc.attr {
		case "color":
			return slices.Collect(style.Colors())

		case "style":
			return slices.Collect(style.Styles())

		case "align":
			return alignNames

		default:
			return nil
		}

	case dc.inAttrs:
		if dc.isPad {
			return padAttrNames
		}

		return attrNames

	default:
		return slices.Sorted(maps.Keys(m.fields))
	}
}

// computeMatches calculates the fuzzy match results for the word at the
// cursor. It returns the matches (ranked best-first), the candidate list,
// and the word boundaries. An empty word inside a declaration returns all
// candidates unfiltered so the user can browse what is accepted there.
func (m model) computeMatches() (
	matches fuzzy.Matches,
	candidates []string,
	wordStart, wordEnd int,
) {
	input := m.input.Value()
	cursor := byteOffset(input, m.input.Position())

	word, ws, we := wordBounds(input, cursor)
	wordStart, wordEnd = ws, we

	if m.mode == modeCtrl {
		if word == "" {
			return nil, nil, wordStart, wordEnd
		}

		candidates = ctrlCommands
	} else {
		candidates = m.tmplCandidates(declContextAt(input, cursor))

		if word == "" {
			if len(candidates) == 0 {
				return nil, nil, wordStart, wordEnd
			}

			// Return all candidates as unfiltered matches.
			matches = make(fuzzy.Matches, len(candidates))
			for i, c := range candidates {
				matches[i] = fuzzy.Match{Str: c, Index: i}
			}

			return matches, candidates, wordStart, wordEnd
		}
	}

	if len(candidates) == 0 {
		return nil, nil, wordStart, wordEnd
	}

	matches = fuzzy.Find(word, candidates)

	return matches, candidates, wordStart, wordEnd
}

// renderCandidateBar builds the single-line completion bar, ellipsized to
// fit within the given terminal width. Each candidate is rendered with its
// matched characters highlighted. The selected candidate (when tabbing)
// uses the selected style.
func renderCandidateBar(
	matches fuzzy.Matches,
	suggIdx int,
	tabActive bool,
	width int,
) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	sepWidth := lipgloss.Width(sep)
	ellipsis := hintStyle.Render("...")
	ellipsisWidth := lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range matches {
		selected := tabActive && i == suggIdx
		rendered := renderCandidate(match, selected)
		candidateWidth := lipgloss.Width(rendered)

		entryWidth := candidateWidth
		if i > 0 {
			entryWidth += sepWidth
		}

		// Check if adding this candidate would exceed width.
		if used+entryWidth+ellipsisWidth > width && i > 0 {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += entryWidth

		// If this is the last candidate, no need to reserve ellipsis space.
		if i == len(matches)-1 {
			break
		}
	}

	return b.String()
}

// renderCandidate renders a single candidate with matched characters
// highlighted.
func renderCandidate(match fuzzy.Match, selected bool) string {
	baseStyle := suggestionStyle
	highlightStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("4")).
		Bold(true)

	if selected {
		baseStyle = selectedStyle
		highlightStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4")).
			Bold(true)
	}

	matchSet := make(map[int]bool, len(match.MatchedIndexes))
	for _, idx := range match.MatchedIndexes {
		matchSet[idx] = true
	}

	var b strings.Builder

	for i, r := range match.Str {
		ch := string(r)
		if matchSet[i] {
			b.WriteString(highlightStyle.Render(ch))
		} else {
			b.WriteString(baseStyle.Render(ch))
		}
	}

	return b.String()
}

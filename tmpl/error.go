package tmpl

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrSyntax is the sentinel wrapped by every [SyntaxError]. Errors of this
// class arise when a template is compiled, never while rendering.
var ErrSyntax = errors.New("template syntax error")

// ErrNotFound is returned when a template name has no registered or builtin
// definition.
var ErrNotFound = errors.New("template not found")

// ErrLevelNotConfigured is returned when a render request names a level the
// template set defines no plan for.
var ErrLevelNotConfigured = errors.New("level not configured")

// SyntaxError describes where and why template compilation failed.
type SyntaxError struct {
	Source string // template source being compiled
	Msg    string // description of the failure
	Line   int    // 1-based source line, 0 when unknown
	Col    int    // 1-based source column
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	if e.Line == 0 {
		return "syntax error: " + e.Msg
	}

	if e.Source == "" {
		return fmt.Sprintf("syntax error at line %d, column %d: %s",
			e.Line, e.Col, e.Msg)
	}

	return e.formatWithContext()
}

// Unwrap ties every syntax error to the [ErrSyntax] sentinel.
func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}

// formatWithContext formats the syntax error with source code context.
func (e *SyntaxError) formatWithContext() string {
	lines := strings.Split(e.Source, "\n")

	var buf strings.Builder

	// Write error location and description
	buf.WriteString(fmt.Sprintf("syntax error at line %d, column %d: %s\n",
		e.Line, e.Col, e.Msg))

	// Show the offending line if within bounds
	if e.Line > 0 && e.Line <= len(lines) {
		line := lines[e.Line-1]

		// Print the line with line number
		buf.WriteString(fmt.Sprintf("  %d | %s\n", e.Line, line))

		// Print marker pointing to the column
		// Calculate the width needed for line number display
		lineNumWidth := len(strconv.Itoa(e.Line))
		// +5 accounts for: 2 leading spaces + " | " (3 chars)
		padding := strings.Repeat(" ", lineNumWidth+5)

		// Add spaces to reach the error column
		if e.Col > 0 {
			padding += strings.Repeat(" ", e.Col-1)
		}

		buf.WriteString(padding + "^")
	}

	return buf.String()
}

// syntaxErrorf constructs a [SyntaxError] at the given source position.
func syntaxErrorf(source string, line, col int, format string, args ...any) *SyntaxError {
	return &SyntaxError{
		Source: source,
		Msg:    fmt.Sprintf(format, args...),
		Line:   line,
		Col:    col,
	}
}

// Package style maps symbolic color and style names to ANSI escape
// sequences.
//
// The tables are fixed at compile time and safe for concurrent use. Lookups
// fail with [ErrUnknownColor] or [ErrUnknownStyle] so that callers can
// decide whether to degrade to unstyled output or to report the name.
package style

import (
	"errors"
	"fmt"
	"iter"
	"maps"
	"slices"
	"strings"
)

// Reset terminates any sequence of color and style escapes.
const Reset = "\x1b[0m"

// ErrUnknownColor is returned when a color name is not defined.
var ErrUnknownColor = errors.New("unknown color")

// ErrUnknownStyle is returned when a style name is not defined.
var ErrUnknownStyle = errors.New("unknown style")

// colorCodes maps color names to SGR escape sequences. The orange and pink
// families have no dedicated 4-bit codes and use 256-color escapes.
//
//nolint:gochecknoglobals
var colorCodes = map[string]string{
	"light_red": "\x1b[91m",
	"red":       "\x1b[31m",
	"dark_red":  "\x1b[31;2m",

	"light_green": "\x1b[92m",
	"green":       "\x1b[32m",
	"dark_green":  "\x1b[32;2m",

	"light_yellow": "\x1b[93m",
	"yellow":       "\x1b[33m",
	"dark_yellow":  "\x1b[33;2m",

	"light_orange": "\x1b[38;5;215m",
	"orange":       "\x1b[38;5;208m",
	"dark_orange":  "\x1b[38;5;202m",

	"light_blue": "\x1b[94m",
	"blue":       "\x1b[34m",
	"dark_blue":  "\x1b[34;2m",

	"light_purple": "\x1b[95m",
	"purple":       "\x1b[35m",
	"dark_purple":  "\x1b[35;2m",

	"light_pink": "\x1b[95m",
	"pink":       "\x1b[38;5;205m",
	"dark_pink":  "\x1b[38;5;95m",

	"white": "\x1b[37m",
	"grey":  "\x1b[90m",
	"black": "\x1b[30m",

	"reset": Reset,
}

// styleCodes maps style names to SGR escape sequences. The "default" style
// maps to the empty string so templates can opt out explicitly.
//
//nolint:gochecknoglobals
var styleCodes = map[string]string{
	"bold":       "\x1b[1m",
	"italic":     "\x1b[3m",
	"underlined": "\x1b[4m",
	"blink":      "\x1b[5m",
	"reverse":    "\x1b[7m",
	"hidden":     "\x1b[8m",
	"default":    "",
}

// Color returns the escape sequence for the named color.
func Color(name string) (string, error) {
	code, ok := colorCodes[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownColor, name)
	}

	return code, nil
}

// Style returns the escape sequence for the named style.
func Style(name string) (string, error) {
	code, ok := styleCodes[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStyle, name)
	}

	return code, nil
}

// Compose concatenates the escape sequences for the named styles in the
// order given. The first unknown name fails the entire composition.
func Compose(names ...string) (string, error) {
	var b strings.Builder

	for _, name := range names {
		code, err := Style(name)
		if err != nil {
			return "", err
		}

		b.WriteString(code)
	}

	return b.String(), nil
}

// Split parses a comma-separated list of names into its elements, trimming
// surrounding whitespace and dropping empty entries.
func Split(s string) []string {
	parts := strings.Split(s, ",")
	names := make([]string, 0, len(parts))

	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			names = append(names, part)
		}
	}

	return names
}

// Colors returns a sequence of all defined color names in sorted order.
func Colors() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, name := range slices.Sorted(maps.Keys(colorCodes)) {
			if !yield(name) {
				return
			}
		}
	}
}

// Styles returns a sequence of all defined style names in sorted order.
func Styles() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, name := range slices.Sorted(maps.Keys(styleCodes)) {
			if !yield(name) {
				return
			}
		}
	}
}

package tmpl

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// newlineReplacer collapses line breaks so rendered output stays on a
// single line.
//
//nolint:gochecknoglobals
var newlineReplacer = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// sanitize replaces embedded line breaks with single spaces.
func sanitize(s string) string {
	if !strings.ContainsAny(s, "\r\n") {
		return s
	}

	return newlineReplacer.Replace(s)
}

// fieldText converts a record field value to its rendered text. The
// conversion is an explicit mapping over the value types the logging
// facade produces; anything else falls back to its fmt representation.
func fieldText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case uint64:
		return strconv.FormatUint(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'g', -1, 32)
	case time.Time:
		return t.Format(time.RFC3339)
	case time.Duration:
		return t.String()
	case error:
		return t.Error()
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

// truthy reports whether a guard field counts as present. Nil, empty
// strings, false, numeric zero, and zero times all read as absent, so a
// conditional like "only show reason when one was given" holds for empty
// values as well as missing ones.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	case int:
		return t != 0
	case int64:
		return t != 0
	case uint64:
		return t != 0
	case float64:
		return t != 0
	case float32:
		return t != 0
	case time.Time:
		return !t.IsZero()
	case time.Duration:
		return t != 0
	default:
		return true
	}
}

package summary

import (
	"fmt"
	"strings"
)

// NormalizeLabel normalizes a header cell or requested column label for
// case-insensitive matching: the value is stringified, trimmed and
// lowercased. Nil normalizes to the empty string. Header-row matching and
// column lookup both go through this single function so the two can never
// diverge.
func NormalizeLabel(v Cell) string {
	if v == nil {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		s = fmt.Sprint(v)
	}
	return strings.ToLower(strings.TrimSpace(s))
}

package summary

import (
	"strconv"
	"strings"
)

// symbolStripper removes the tolerated currency symbols and all spaces
// before numeric parsing.
var symbolStripper = strings.NewReplacer("$", "", "€", "", "£", "", " ", "")

// CoerceNumber attempts a best-effort conversion of a cell value to a
// float64. Already-typed numbers pass through; strings are trimmed,
// stripped of currency symbols and spaces, run through the decimal
// separator heuristic and parsed as a float. Nil cells, blank strings and
// everything unparseable report false.
//
// Separator heuristic: when a string carries both ',' and '.', the dot is
// the decimal point and every comma is a thousands separator ("1,234.56" ->
// 1234.56). A comma without a dot is a European decimal comma ("90,00" ->
// 90.00). This makes "1,234" parse as 1.234, not one thousand two hundred
// thirty-four; downstream behavior depends on exactly that interpretation,
// so any change here is a behavior change rather than a bug fix.
func CoerceNumber(v Cell) (float64, bool) {
	switch n := v.(type) {
	case nil:
		return 0, false
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0, false
		}

		s = symbolStripper.Replace(s)

		switch {
		case strings.Contains(s, ",") && strings.Contains(s, "."):
			s = strings.ReplaceAll(s, ",", "")
		case strings.Contains(s, ","):
			s = strings.ReplaceAll(s, ",", ".")
		}

		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

package table

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Cell coercions. Every coercion is best-effort: the second return value is
// false when the cell cannot be interpreted, and predicate evaluation
// treats that as "does not match" rather than an error.

// AsString returns the string form of a cell.
func AsString(v any) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", false
	case string:
		return x, true
	case []byte:
		return string(x), true
	case fmt.Stringer:
		return x.String(), true
	default:
		return fmt.Sprint(x), true
	}
}

// AsNumber coerces a cell to float64. Numeric strings are parsed, and
// "MM:SS" / "MM:SS.t" clock strings (minutes-played columns from box-score
// sources) are converted to fractional minutes.
func AsNumber(v any) (float64, bool) {
	switch x := v.(type) {
	case nil:
		return 0, false
	case int:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case float32:
		return float64(x), true
	case float64:
		return x, true
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0, false
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f, true
		}
		return parseClock(s)
	case []byte:
		return AsNumber(string(x))
	default:
		return 0, false
	}
}

// parseClock parses "MM:SS" or "MM:SS.t" into fractional minutes.
func parseClock(s string) (float64, bool) {
	mm, ss, ok := strings.Cut(s, ":")
	if !ok {
		return 0, false
	}
	minutes, err := strconv.ParseFloat(strings.TrimSpace(mm), 64)
	if err != nil {
		return 0, false
	}
	seconds, err := strconv.ParseFloat(strings.TrimSpace(ss), 64)
	if err != nil || seconds < 0 || seconds >= 60 {
		return 0, false
	}
	return minutes + seconds/60, true
}

// ClockSeconds parses a game-clock string ("9:42", "0:34.5") into remaining
// seconds. Unlike AsNumber it keeps the seconds unit.
func ClockSeconds(v any) (float64, bool) {
	s, ok := AsString(v)
	if !ok {
		return 0, false
	}
	minutes, ok := parseClock(strings.TrimSpace(s))
	if !ok {
		// A bare number is taken as seconds already.
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return minutes * 60, true
}

// timeLayouts are the date formats observed across sources, most
// specific first.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
	"Jan 2, 2006",
}

// AsTime coerces a cell to time.Time. time.Time values pass through with
// their location intact; strings are tried against the known layouts.
func AsTime(v any) (time.Time, bool) {
	switch x := v.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		return x, true
	case string:
		s := strings.TrimSpace(x)
		for _, layout := range timeLayouts {
			if ts, err := time.Parse(layout, s); err == nil {
				return ts, true
			}
		}
		return time.Time{}, false
	case []byte:
		return AsTime(string(x))
	default:
		return time.Time{}, false
	}
}

// CanonicalID normalizes a cell into the canonical string form used for
// identity membership tests. Integral floats (JSON-decoded ids) lose their
// fractional form so 1610612737.0 and "1610612737" compare equal.
func CanonicalID(v any) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", false
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return "", false
		}
		return s, true
	case int:
		return strconv.FormatInt(int64(x), 10), true
	case int32:
		return strconv.FormatInt(int64(x), 10), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case float32:
		return CanonicalID(float64(x))
	case float64:
		if x == math.Trunc(x) && !math.IsInf(x, 0) {
			return strconv.FormatInt(int64(x), 10), true
		}
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case []byte:
		return CanonicalID(string(x))
	default:
		s, ok := AsString(x)
		return s, ok
	}
}

// IsNull reports whether a cell is absent for completeness purposes:
// nil, an empty string, or NaN.
func IsNull(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(x) == ""
	case float64:
		return math.IsNaN(x)
	default:
		return false
	}
}

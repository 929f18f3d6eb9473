package bridge

import (
	"fmt"
	"strconv"
	"strings"
)

// Prepare substitutes placeholders in query the way theme code expects
// from $wpdb->prepare: %d (integer), %f (float), %s (quoted string) and
// %% (literal percent). Strings are quoted with single quotes doubled.
// Missing arguments render as empty values; extras are ignored.
//
// Prepare does not log: only the call that receives the prepared request
// does.
func Prepare(query string, args ...any) string {
	var b strings.Builder
	next := 0
	arg := func() any {
		if next >= len(args) {
			return nil
		}
		v := args[next]
		next++
		return v
	}

	for i := 0; i < len(query); i++ {
		c := query[i]
		if c != '%' || i+1 >= len(query) {
			b.WriteByte(c)
			continue
		}
		switch query[i+1] {
		case '%':
			b.WriteByte('%')
		case 'd':
			b.WriteString(strconv.FormatInt(toInt64(arg()), 10))
		case 'f':
			b.WriteString(strconv.FormatFloat(toFloat64(arg()), 'f', 6, 64))
		case 's':
			v := arg()
			s := ""
			if v != nil {
				s = fmt.Sprint(v)
			}
			b.WriteString("'" + strings.ReplaceAll(s, "'", "''") + "'")
		default:
			b.WriteByte(c)
			continue
		}
		i++
	}
	return b.String()
}

func toInt64(v any) int64 {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int64:
		return n
	case int32:
		return int64(n)
	case float64:
		return int64(n)
	case string:
		i, _ := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		return i
	default:
		return 0
	}
}

func toFloat64(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		f, _ := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f
	default:
		return 0
	}
}

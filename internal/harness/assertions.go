package harness

import (
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/wp4bd/internal/bridge"
	"github.com/roach88/wp4bd/internal/wp"
)

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string            // Assertion type for categorization
	Expected string            // Human-readable expected outcome
	Actual   string            // Human-readable actual outcome
	Log      []bridge.LogEntry // Full log for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Log) > 0 {
		fmt.Fprintf(&buf, "\nQuery log:\n")
		for _, entry := range e.Log {
			fmt.Fprintf(&buf, "  [%d] %s %s\n", entry.Seq, entry.Method, entry.Query)
		}
	}
	return buf.String()
}

// EvaluateAssertions checks every assertion against the query log and
// returns one message per failure.
func EvaluateAssertions(log []bridge.LogEntry, assertions []Assertion) []string {
	var errs []string
	for _, a := range assertions {
		var err error
		switch a.Type {
		case AssertLogCount:
			err = assertLogCount(log, a)
		case AssertLogOrder:
			err = assertLogOrder(log, a)
		case AssertLogContains:
			err = assertLogContains(log, a)
		default:
			err = fmt.Errorf("unknown assertion type: %s", a.Type)
		}
		if err != nil {
			errs = append(errs, err.Error())
		}
	}
	return errs
}

// assertLogCount checks the number of entries, optionally for one method.
func assertLogCount(log []bridge.LogEntry, a Assertion) error {
	count := 0
	for _, entry := range log {
		if a.Method == "" || entry.Method == a.Method {
			count++
		}
	}
	if count == a.Count {
		return nil
	}

	what := "log entries"
	if a.Method != "" {
		what = a.Method + " entries"
	}
	return &AssertionError{
		Type:     AssertLogCount,
		Expected: fmt.Sprintf("%d %s", a.Count, what),
		Actual:   fmt.Sprintf("%d %s", count, what),
		Log:      log,
	}
}

// assertLogOrder checks that methods appear in the given order.
// Methods don't need to be consecutive.
func assertLogOrder(log []bridge.LogEntry, a Assertion) error {
	next := 0
	for _, entry := range log {
		if next < len(a.Methods) && entry.Method == a.Methods[next] {
			next++
		}
	}
	if next == len(a.Methods) {
		return nil
	}
	return &AssertionError{
		Type:     AssertLogOrder,
		Expected: fmt.Sprintf("methods in order: %v", a.Methods),
		Actual:   fmt.Sprintf("missing or out of order: %s", a.Methods[next]),
		Log:      log,
	}
}

// assertLogContains checks for an entry with the method whose query
// contains the given text.
func assertLogContains(log []bridge.LogEntry, a Assertion) error {
	for _, entry := range log {
		if entry.Method == a.Method && strings.Contains(entry.Query, a.Contains) {
			return nil
		}
	}
	return &AssertionError{
		Type:     AssertLogContains,
		Expected: fmt.Sprintf("%s entry containing %q", a.Method, a.Contains),
		Actual:   "not found in log",
		Log:      log,
	}
}

// checkExpect validates a step result against its expect clause.
func checkExpect(index int, step Step, result any) []string {
	e := step.Expect
	if e == nil {
		return nil
	}

	var errs []string
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Sprintf("steps[%d] %s: ", index, step.Call)+fmt.Sprintf(format, args...))
	}

	rows, isList := resultRows(result)

	if e.Null && result != nil {
		fail("expected no result, got %v", result)
	}
	if e.Value != nil && !looseEqual(result, e.Value) {
		fail("value = %v, expected %v", result, e.Value)
	}
	if e.Count != nil {
		if !isList {
			fail("count expected on a %T result", result)
		} else if len(rows) != *e.Count {
			fail("count = %d, expected %d", len(rows), *e.Count)
		}
	}
	if e.IDs != nil {
		ids := make([]int64, 0, len(rows))
		for _, r := range rows {
			if id, ok := rowID(r); ok {
				ids = append(ids, id)
			}
		}
		if !slices.Equal(ids, e.IDs) {
			fail("ids = %v, expected %v", ids, e.IDs)
		}
	}
	if len(e.Fields) > 0 {
		if len(rows) == 0 {
			fail("fields expected but nothing was returned")
		} else {
			for name, want := range e.Fields {
				got, ok := column(rows[0], name)
				if !ok {
					fail("field %s missing", name)
				} else if !looseEqual(got, want) {
					fail("field %s = %v, expected %v", name, got, want)
				}
			}
		}
	}

	if summary, ok := result.(*LoopSummary); ok {
		if e.Flags != nil && !slices.Equal(summary.Flags, e.Flags) {
			fail("flags = %v, expected %v", summary.Flags, e.Flags)
		}
		if e.FoundPosts != nil && summary.FoundPosts != *e.FoundPosts {
			fail("found_posts = %d, expected %d", summary.FoundPosts, *e.FoundPosts)
		}
		if e.MaxNumPages != nil && summary.MaxNumPages != *e.MaxNumPages {
			fail("max_num_pages = %d, expected %d", summary.MaxNumPages, *e.MaxNumPages)
		}
	} else if e.Flags != nil || e.FoundPosts != nil || e.MaxNumPages != nil {
		fail("loop expectations on a non-loop step")
	}
	return errs
}

// resultRows flattens a step result into rows. Single rows count as a
// one-element list.
func resultRows(result any) ([]any, bool) {
	switch r := result.(type) {
	case []any:
		return r, true
	case *LoopSummary:
		rows := make([]any, len(r.posts))
		for i, p := range r.posts {
			rows[i] = p
		}
		return rows, true
	case wp.Object, wp.Row:
		return []any{r}, true
	case nil:
		return nil, true
	default:
		return nil, false
	}
}

// column reads a named attribute from an object, an associative row or a
// get_col value.
func column(row any, name string) (any, bool) {
	switch r := row.(type) {
	case wp.Object:
		return r.Column(name)
	case wp.Row:
		return r.Get(name)
	default:
		return nil, false
	}
}

// rowID returns a row's primary identifier: ID for posts and users,
// term_id for terms, the first value of positional rows, or the value
// itself for get_col results.
func rowID(row any) (int64, bool) {
	for _, name := range []string{"ID", "term_id"} {
		if v, ok := column(row, name); ok {
			return toInt64(v)
		}
	}
	if vals, ok := row.([]any); ok && len(vals) > 0 {
		return toInt64(vals[0])
	}
	return toInt64(row)
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	default:
		return 0, false
	}
}

// looseEqual compares a bridge value with a YAML literal, which decodes
// integers as int and the bridge returns int64.
func looseEqual(got, want any) bool {
	if got == nil || want == nil {
		return got == want
	}
	return fmt.Sprint(got) == fmt.Sprint(want)
}

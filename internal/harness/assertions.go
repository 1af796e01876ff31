package harness

import (
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/roach88/quickdocs/internal/ir"
	"github.com/roach88/quickdocs/internal/nlquery"
)

// checkExpect returns one message per failed expectation.
func checkExpect(e Expect, out nlquery.Outcome) []string {
	var failures []string
	fail := func(format string, args ...any) {
		failures = append(failures, fmt.Sprintf(format, args...))
	}

	if e.Error != "" {
		if !out.Failed() {
			fail("expected failure containing %q, got success: %s", e.Error, out.Explanation)
		} else if !strings.Contains(out.Explanation, e.Error) {
			fail("expected explanation containing %q, got %q", e.Error, out.Explanation)
		}
	} else if out.Failed() {
		fail("unexpected failure: %s", out.Explanation)
	}

	if e.Rule != "" && out.Rule != e.Rule {
		fail("expected rule %q, got %q", e.Rule, out.Rule)
	}

	if e.Rows != nil && len(out.Results) != *e.Rows {
		fail("expected %d rows, got %d", *e.Rows, len(out.Results))
	}

	if e.Args != nil && !argsEqual(e.Args, out.Args) {
		fail("expected args %v, got %v", e.Args, out.Args)
	}

	if e.SQLContains != "" && !strings.Contains(out.SQL, e.SQLContains) {
		fail("expected SQL containing %q, got %q", e.SQLContains, out.SQL)
	}

	if e.SQLNotContains != "" && strings.Contains(out.SQL, e.SQLNotContains) {
		fail("expected SQL not containing %q, got %q", e.SQLNotContains, out.SQL)
	}

	if e.Explanation != "" && out.Explanation != e.Explanation {
		fail("expected explanation %q, got %q", e.Explanation, out.Explanation)
	}

	if e.FirstRow != nil {
		if len(out.Results) == 0 {
			fail("expected first row %v, got no rows", e.FirstRow)
		} else if msg := matchRow(out.Results[0], e.FirstRow); msg != "" {
			fail("first row: %s", msg)
		}
	}

	if e.ContainsRow != nil && !containsRow(out.Results, e.ContainsRow) {
		fail("no row matches %v", e.ContainsRow)
	}

	if e.Column != nil {
		if msg := matchColumn(out.Results, *e.Column); msg != "" {
			fail("column %s: %s", e.Column.Name, msg)
		}
	}

	return failures
}

// matchRow checks that every expected column is present with an equal
// value (subset match). Returns "" on success.
func matchRow(row ir.Row, expected map[string]any) string {
	for col, want := range expected {
		got, ok := row.Get(col)
		if !ok {
			return fmt.Sprintf("column %q missing", col)
		}
		if !valueEquals(want, got) {
			return fmt.Sprintf("column %q: expected %v, got %s", col, want, got)
		}
	}
	return ""
}

func containsRow(rows ir.Result, expected map[string]any) bool {
	for _, row := range rows {
		if matchRow(row, expected) == "" {
			return true
		}
	}
	return false
}

func matchColumn(rows ir.Result, c ColumnExpect) string {
	if len(rows) != len(c.Values) {
		return fmt.Sprintf("expected %d values, got %d rows", len(c.Values), len(rows))
	}
	for i, row := range rows {
		got, ok := row.Get(c.Name)
		if !ok {
			return "missing"
		}
		if !valueEquals(c.Values[i], got) {
			return fmt.Sprintf("row %d: expected %v, got %s", i, c.Values[i], got)
		}
	}
	return ""
}

func argsEqual(want, got []any) bool {
	if len(want) != len(got) {
		return false
	}
	for i := range want {
		if !reflect.DeepEqual(normalizeNumber(want[i]), normalizeNumber(got[i])) {
			return false
		}
	}
	return true
}

// valueEquals compares a YAML-decoded expectation with a store value.
// Integers compare across widths; floats compare exactly.
func valueEquals(want any, got ir.Value) bool {
	return reflect.DeepEqual(normalizeNumber(want), normalizeNumber(ir.Native(got)))
}

// normalizeNumber widens integer types to int64 and integral floats to
// int64, so 3 (YAML int) equals ir.Int(3).
func normalizeNumber(v any) any {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int32:
		return int64(n)
	case uint64:
		if n <= math.MaxInt64 {
			return int64(n)
		}
		return n
	case float64:
		if n == math.Trunc(n) && !math.IsInf(n, 0) && math.Abs(n) < 1<<53 {
			return int64(n)
		}
		return n
	default:
		return v
	}
}

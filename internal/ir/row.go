package ir

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Row is one result row: an ordered mapping from column name to Value.
// Column order is the order the store returned, never re-sorted.
type Row struct {
	columns []string
	values  []Value
}

// NewRow builds a Row from parallel column and value slices.
// Panics if the slices differ in length; that is a programming error.
func NewRow(columns []string, values []Value) Row {
	if len(columns) != len(values) {
		panic(fmt.Sprintf("ir.NewRow: %d columns but %d values", len(columns), len(values)))
	}
	return Row{columns: columns, values: values}
}

// Columns returns the column names in store order.
func (r Row) Columns() []string {
	out := make([]string, len(r.columns))
	copy(out, r.columns)
	return out
}

// Values returns the values in store order.
func (r Row) Values() []Value {
	out := make([]Value, len(r.values))
	copy(out, r.values)
	return out
}

// Len returns the number of columns in the row.
func (r Row) Len() int {
	return len(r.columns)
}

// Get returns the value for a column name. When a result carries duplicate
// column names the first one wins.
func (r Row) Get(column string) (Value, bool) {
	for i, c := range r.columns {
		if c == column {
			return r.values[i], true
		}
	}
	return nil, false
}

// String renders the row as {col: value, ...} in column order.
func (r Row) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, c := range r.columns {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(c)
		sb.WriteString(": ")
		sb.WriteString(r.values[i].String())
	}
	sb.WriteByte('}')
	return sb.String()
}

// MarshalJSON encodes the row as a JSON object preserving column order.
func (r Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range r.columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(c)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(r.values[i])
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", c, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Result is the ordered sequence of rows a query produced, in store order.
// A Result is created per call and never cached.
type Result []Row

// Len returns the number of rows.
func (r Result) Len() int {
	return len(r)
}

// SchemaMap maps table name to its column names in declaration order.
// Built once when a processor is constructed and never refreshed.
type SchemaMap map[string][]string

// Tables returns the table names sorted alphabetically.
func (s SchemaMap) Tables() []string {
	tables := make([]string, 0, len(s))
	for t := range s {
		tables = append(tables, t)
	}
	sort.Strings(tables)
	return tables
}

// HasColumn reports whether table has the named column.
func (s SchemaMap) HasColumn(table, column string) bool {
	for _, c := range s[table] {
		if c == column {
			return true
		}
	}
	return false
}

package nlquery

import "strings"

// Statement is a rendered SQL statement with its bound arguments.
// Placeholders are written as ?; the store rebinds them per driver.
type Statement struct {
	SQL  string
	Args []any
}

// Render produces the statement for a match.
//
// Fixed rules return their SQL unchanged with no arguments. Parameterized
// rules replace the slot with a ? placeholder and bind the cleaned capture
// as the single argument. Captured text never appears in the SQL.
func Render(m Match) Statement {
	if !m.Rule.Parameterized() {
		return Statement{SQL: m.Rule.SQL}
	}

	return Statement{
		SQL:  strings.Replace(m.Rule.Template, ParamSlot, "?", 1),
		Args: []any{cleanParam(m.Capture)},
	}
}

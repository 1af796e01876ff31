// Package nlquery translates a fixed catalog of natural-language questions
// into SQL and runs them against a store.
//
// # Pipeline
//
// ProcessQuery runs every question through the same stages:
//
//	raw text -> Normalize -> Catalog.Match -> Render -> Store.Execute -> Explain
//
// The Catalog is an ordered list of rules. Matching is a first-wins cascade:
// each rule's trigger is searched for (not anchored) in the normalized text,
// and the first rule whose trigger is found is used. Overlapping triggers are
// expected; precedence is purely positional.
//
// # Parameters
//
// Parameterized rules capture exactly one value. The value is bound as a
// query argument, never written into the SQL text:
//
//	WHERE LOWER(c.name) LIKE LOWER('%' || ? || '%')
//
// Captured values are also screened with libinjection. Suspicious values are
// logged and counted but still bound, so matching semantics do not change.
//
// # Failure
//
// ProcessQuery never returns an error. A question that matches no rule, or
// whose statement the store rejects, yields an Outcome with empty SQL, no
// rows and an explanation of the form "Error processing query: <message>".
// The typed cause is kept in Outcome.Err for callers that want to branch on
// it (see IsNoMatch and IsExecutionError).
package nlquery

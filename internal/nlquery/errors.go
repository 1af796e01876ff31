package nlquery

import (
	"errors"
	"fmt"
)

// ErrorKind categorizes query failures.
type ErrorKind string

const (
	// KindNoMatchingPattern indicates no catalog trigger matched the question.
	KindNoMatchingPattern ErrorKind = "NO_MATCHING_PATTERN"

	// KindQueryExecution indicates the store rejected the rendered statement.
	KindQueryExecution ErrorKind = "QUERY_EXECUTION"
)

// Sentinels for errors.Is. A *QueryError matches the sentinel of its Kind.
var (
	ErrNoMatchingPattern = errors.New("no matching pattern")
	ErrQueryExecution    = errors.New("query execution failed")
)

// QueryError is the typed failure behind a fail-soft Outcome.
type QueryError struct {
	// Kind identifies the failure category.
	Kind ErrorKind

	// Raw is the question as the caller passed it.
	Raw string

	// Query is the normalized question.
	Query string

	// SQL is the rendered statement (execution failures only).
	SQL string

	// Err is the store's error (execution failures only).
	Err error
}

// Error implements the error interface.
//
// No-match errors read "Could not understand the query: '<normalized>'".
// Execution errors carry the store's own message unchanged.
func (e *QueryError) Error() string {
	switch e.Kind {
	case KindNoMatchingPattern:
		return fmt.Sprintf("Could not understand the query: '%s'", e.Query)
	case KindQueryExecution:
		if e.Err != nil {
			return e.Err.Error()
		}
		return ErrQueryExecution.Error()
	default:
		return fmt.Sprintf("%s: %s", e.Kind, e.Query)
	}
}

// Unwrap returns the underlying store error, if any.
func (e *QueryError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for e's Kind.
func (e *QueryError) Is(target error) bool {
	switch target {
	case ErrNoMatchingPattern:
		return e.Kind == KindNoMatchingPattern
	case ErrQueryExecution:
		return e.Kind == KindQueryExecution
	}
	return false
}

// IsNoMatch returns true if the error is a no-matching-pattern error.
// Uses errors.As to handle wrapped errors.
func IsNoMatch(err error) bool {
	var qe *QueryError
	if errors.As(err, &qe) {
		return qe.Kind == KindNoMatchingPattern
	}
	return false
}

// IsExecutionError returns true if the store rejected the statement.
// Uses errors.As to handle wrapped errors.
func IsExecutionError(err error) bool {
	var qe *QueryError
	if errors.As(err, &qe) {
		return qe.Kind == KindQueryExecution
	}
	return false
}

func newNoMatchError(normalized string) *QueryError {
	return &QueryError{Kind: KindNoMatchingPattern, Query: normalized}
}

func newExecutionError(raw, normalized, sql string, err error) *QueryError {
	return &QueryError{
		Kind:  KindQueryExecution,
		Raw:   raw,
		Query: normalized,
		SQL:   sql,
		Err:   err,
	}
}

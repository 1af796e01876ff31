package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/roach88/quickdocs/internal/ir"
	"github.com/roach88/quickdocs/internal/nlquery"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Query or scenario failure (no matching pattern, failed expectations, etc.)
	ExitCommandError = 2 // Command error (bad flags, database not found, invalid catalog, etc.)
)

// Error codes reported in JSON output.
const (
	CodeNoMatch        = "E_NO_MATCH"
	CodeQueryExecution = "E_QUERY_EXECUTION"
	CodeTestFailed     = "E_TEST_FAILED"
	CodeInternal       = "E_INTERNAL"
)

// ExitError represents an error with a specific exit code.
// Use this to return errors with meaningful exit codes from CLI commands.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitSuccess for nil and ExitFailure if the error is not an ExitError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// errorCode maps a failed outcome's cause to its JSON error code.
func errorCode(err error) string {
	switch {
	case nlquery.IsNoMatch(err):
		return CodeNoMatch
	case nlquery.IsExecutionError(err):
		return CodeQueryExecution
	default:
		return CodeInternal
	}
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // Separate writer for verbose/diagnostic output (defaults to Writer)
	Verbose   bool
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status    string    `json:"status"`               // "ok" or "error"
	Data      any       `json:"data,omitempty"`       // success payload
	Error     *CLIError `json:"error,omitempty"`      // error details
	RequestID string    `json:"request_id,omitempty"` // optional request correlation
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string `json:"code"`              // "E_NO_MATCH", "E_QUERY_EXECUTION", etc.
	Message string `json:"message"`           // human-readable message
	Details any    `json:"details,omitempty"` // additional context
}

// Success outputs a successful result in the configured format.
func (f *OutputFormatter) Success(data any) error {
	if f.Format == "json" {
		return f.encode(CLIResponse{Status: "ok", Data: data})
	}

	// Human-readable text output
	_, err := fmt.Fprintln(f.Writer, data)
	return err
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string, details any) error {
	if f.Format == "json" {
		return f.encode(CLIResponse{
			Status: "error",
			Error: &CLIError{
				Code:    code,
				Message: message,
				Details: details,
			},
		})
	}

	// Human-readable error
	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	if f.Verbose && details != nil {
		fmt.Fprintf(f.Writer, "Details: %v\n", details)
	}
	return nil
}

func (f *OutputFormatter) encode(resp CLIResponse) error {
	enc := json.NewEncoder(f.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}

// VerboseLog outputs a message only if verbose mode is enabled.
// Uses ErrWriter if set, otherwise falls back to Writer.
// When format is JSON, verbose logs go to ErrWriter to avoid corrupting JSON output.
func (f *OutputFormatter) VerboseLog(format string, args ...any) {
	if !f.Verbose {
		return
	}
	fmt.Fprintf(f.GetErrWriter(), format+"\n", args...)
}

// GetErrWriter returns the appropriate writer for diagnostic output.
// Returns ErrWriter if set, otherwise Writer.
func (f *OutputFormatter) GetErrWriter() io.Writer {
	if f.ErrWriter != nil {
		return f.ErrWriter
	}
	return f.Writer
}

// AnswerData is the JSON payload for an answered question.
type AnswerData struct {
	Question    string    `json:"question"`
	Rule        string    `json:"rule,omitempty"`
	SQL         string    `json:"sql"`
	Args        []any     `json:"args,omitempty"`
	Explanation string    `json:"explanation"`
	Count       int       `json:"count"`
	Results     ir.Result `json:"results"`
}

func newAnswerData(question string, out nlquery.Outcome) AnswerData {
	results := out.Results
	if results == nil {
		results = ir.Result{}
	}
	return AnswerData{
		Question:    question,
		Rule:        out.Rule,
		SQL:         out.SQL,
		Args:        out.Args,
		Explanation: out.Explanation,
		Count:       len(results),
		Results:     results,
	}
}

// writeOutcome prints an outcome the way the interactive loop shows it:
// the SQL, the explanation, then numbered rows or "No results found.".
func writeOutcome(w io.Writer, out nlquery.Outcome) {
	fmt.Fprintf(w, "\nGenerated SQL: %s\n", out.SQL)
	fmt.Fprintf(w, "Explanation: %s\n", out.Explanation)

	if len(out.Results) == 0 {
		fmt.Fprintln(w, "\nNo results found.")
		return
	}

	fmt.Fprintln(w, "\nResults:")
	fmt.Fprintln(w, strings.Repeat("-", 50))
	for i, row := range out.Results {
		fmt.Fprintf(w, "%d. %s\n", i+1, row)
	}
}

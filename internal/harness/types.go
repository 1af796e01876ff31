package harness

import "github.com/roach88/quickdocs/internal/ir"

// StepResult records what one step produced.
type StepResult struct {
	Question    string    `json:"question"`
	Rule        string    `json:"rule,omitempty"`
	SQL         string    `json:"sql"`
	Args        []any     `json:"args,omitempty"`
	Explanation string    `json:"explanation"`
	Rows        int       `json:"rows"`
	Results     ir.Result `json:"-"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Scenario is the scenario name.
	Scenario string `json:"scenario"`

	// Pass is true if every expectation held.
	Pass bool `json:"pass"`

	// Steps holds one entry per step, in order.
	Steps []StepResult `json:"steps"`

	// Errors contains failed expectation messages, prefixed with the step.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult(scenario string) *Result {
	return &Result{
		Scenario: scenario,
		Pass:     true,
		Steps:    []StepResult{},
		Errors:   []string{},
	}
}

// AddError adds a failed expectation and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

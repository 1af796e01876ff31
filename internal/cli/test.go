package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/roach88/quickdocs/internal/harness"
)

// TestOptions holds flags for the test command.
type TestOptions struct {
	*RootOptions
	Update    bool   // regenerate golden files
	Filter    string // scenario filter (glob pattern on the scenario name)
	GoldenDir string // golden file directory (default <scenarios-dir>/golden)
}

// ScenarioResult holds the result of a single scenario execution.
type ScenarioResult struct {
	Name   string   `json:"name"`
	Pass   bool     `json:"pass"`
	Errors []string `json:"errors,omitempty"`
}

// TestResult holds the overall test result.
type TestResult struct {
	Scenarios []ScenarioResult `json:"scenarios"`
	Passed    int              `json:"passed"`
	Failed    int              `json:"failed"`
	Total     int              `json:"total"`
}

// NewTestCommand creates the test command.
func NewTestCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TestOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "test <scenarios-dir>",
		Short: "Run question scenarios",
		Long: `Run YAML question scenarios against a fresh copy of the demo database.

Each scenario asks its questions in order and checks the expectations
attached to each step. When a golden file exists for a scenario the
recorded snapshot must also match.

Exit codes:
  0 - All scenarios passed
  1 - One or more scenarios failed
  2 - Command error (invalid paths, bad scenario files, etc.)

Examples:
  quickdocs test ./scenarios
  quickdocs test ./scenarios --filter "process-*"
  quickdocs test ./scenarios --update
  quickdocs test ./scenarios --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTests(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Update, "update", false, "regenerate golden files")
	cmd.Flags().StringVar(&opts.Filter, "filter", "", "filter scenarios by glob pattern")
	cmd.Flags().StringVar(&opts.GoldenDir, "golden-dir", "", "golden file directory (default <scenarios-dir>/golden)")

	return cmd
}

func runTests(opts *TestOptions, scenariosDir string, cmd *cobra.Command) error {
	if _, err := os.Stat(scenariosDir); errors.Is(err, os.ErrNotExist) {
		return NewExitError(ExitCommandError, fmt.Sprintf("scenarios directory not found: %s", scenariosDir))
	}
	if opts.Filter != "" {
		if _, err := filepath.Match(opts.Filter, ""); err != nil {
			return WrapExitError(ExitCommandError, "invalid filter pattern", err)
		}
	}

	scenarios, err := harness.LoadScenarios(scenariosDir)
	if err != nil && !errors.Is(err, harness.ErrNoScenarios) {
		return WrapExitError(ExitCommandError, "failed to load scenarios", err)
	}
	scenarios = filterScenarios(scenarios, opts.Filter)

	goldenDir := opts.GoldenDir
	if goldenDir == "" {
		goldenDir = filepath.Join(scenariosDir, "golden")
	}

	if len(scenarios) == 0 {
		if opts.Format == "json" {
			return outputTestJSON(cmd, TestResult{Scenarios: []ScenarioResult{}})
		}
		fmt.Fprintln(cmd.OutOrStdout(), "No scenarios found.")
		return nil
	}

	result := TestResult{
		Scenarios: make([]ScenarioResult, 0, len(scenarios)),
		Total:     len(scenarios),
	}

	for _, s := range scenarios {
		sr := runScenario(opts, cmd, s, goldenDir)
		if opts.Format != "json" {
			writeScenarioResult(cmd.OutOrStdout(), sr, opts.Update)
		}
		result.Scenarios = append(result.Scenarios, sr)
		if sr.Pass {
			result.Passed++
		} else {
			result.Failed++
		}
	}

	if opts.Format == "json" {
		return outputTestJSON(cmd, result)
	}
	return outputTestText(cmd, result)
}

// filterScenarios keeps scenarios whose name matches pattern. The pattern
// has already been validated.
func filterScenarios(scenarios []*harness.Scenario, pattern string) []*harness.Scenario {
	if pattern == "" {
		return scenarios
	}
	out := scenarios[:0:0]
	for _, s := range scenarios {
		if ok, _ := filepath.Match(pattern, s.Name); ok {
			out = append(out, s)
		}
	}
	return out
}

// runScenario executes a single scenario and returns the result.
func runScenario(opts *TestOptions, cmd *cobra.Command, s *harness.Scenario, goldenDir string) ScenarioResult {
	failed := func(errs ...string) ScenarioResult {
		return ScenarioResult{Name: s.Name, Pass: false, Errors: errs}
	}

	result, err := harness.Run(commandContext(cmd), s, harness.WithLogger(opts.log()))
	if err != nil {
		return failed(fmt.Sprintf("execution failed: %v", err))
	}

	goldenPath := harness.GoldenPath(goldenDir, s.Name)

	if opts.Update {
		if err := harness.WriteGolden(goldenPath, result); err != nil {
			return failed(fmt.Sprintf("failed to update golden file: %v", err))
		}
		if !result.Pass {
			return failed(result.Errors...)
		}
		return ScenarioResult{Name: s.Name, Pass: true}
	}

	if _, err := os.Stat(goldenPath); err == nil {
		match, err := harness.CompareGolden(goldenPath, result)
		if err != nil {
			return failed(fmt.Sprintf("golden comparison failed: %v", err))
		}
		if !match {
			return failed(append(result.Errors, "snapshot does not match golden file (run with --update to regenerate)")...)
		}
	}

	if !result.Pass {
		return failed(result.Errors...)
	}
	return ScenarioResult{Name: s.Name, Pass: true}
}

func writeScenarioResult(w io.Writer, sr ScenarioResult, updated bool) {
	if !sr.Pass {
		fmt.Fprintf(w, "✗ %s\n", sr.Name)
		for _, e := range sr.Errors {
			fmt.Fprintf(w, "  %s\n", e)
		}
		return
	}
	if updated {
		fmt.Fprintf(w, "✓ %s (golden updated)\n", sr.Name)
		return
	}
	fmt.Fprintf(w, "✓ %s\n", sr.Name)
}

// outputTestJSON outputs the test result as JSON.
func outputTestJSON(cmd *cobra.Command, result TestResult) error {
	response := CLIResponse{
		Status: "ok",
		Data:   result,
	}
	if result.Failed > 0 {
		response.Status = "error"
		response.Error = &CLIError{
			Code:    CodeTestFailed,
			Message: fmt.Sprintf("%d scenario(s) failed", result.Failed),
		}
	}

	f := &OutputFormatter{Format: "json", Writer: cmd.OutOrStdout()}
	if err := f.encode(response); err != nil {
		return err
	}

	if result.Failed > 0 {
		// Test failures = exit code 1
		return NewExitError(ExitFailure, fmt.Sprintf("%d scenario(s) failed", result.Failed))
	}
	return nil
}

// outputTestText outputs the test result as text.
func outputTestText(cmd *cobra.Command, result TestResult) error {
	w := cmd.OutOrStdout()

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Test Summary: %d passed, %d failed, %d total\n", result.Passed, result.Failed, result.Total)

	if result.Failed > 0 {
		// Test failures = exit code 1
		return NewExitError(ExitFailure, fmt.Sprintf("%d scenario(s) failed", result.Failed))
	}

	fmt.Fprintln(w, "✓ All scenarios passed")
	return nil
}

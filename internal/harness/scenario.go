package harness

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Scenario is a named list of questions with expectations.
type Scenario struct {
	// Name uniquely identifies this scenario. Also the golden file name.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Catalog is an optional YAML catalog path, relative to the scenario
	// file. Empty means the built-in catalog.
	Catalog string `yaml:"catalog,omitempty"`

	// Steps are asked in order.
	Steps []Step `yaml:"steps"`
}

// Step asks one question.
type Step struct {
	// Ask is the question exactly as a user would type it.
	Ask string `yaml:"ask"`

	// Expect lists checks on the outcome. Nil means no checks.
	Expect *Expect `yaml:"expect,omitempty"`
}

// Expect specifies checks on a step's outcome. Only set fields are checked.
type Expect struct {
	// Rule is the expected matched rule name.
	Rule string `yaml:"rule,omitempty"`

	// Rows is the expected row count.
	Rows *int `yaml:"rows,omitempty"`

	// Args are the expected bound arguments, in order.
	Args []any `yaml:"args,omitempty"`

	// SQLContains must appear in the generated SQL.
	SQLContains string `yaml:"sql_contains,omitempty"`

	// SQLNotContains must not appear in the generated SQL.
	SQLNotContains string `yaml:"sql_not_contains,omitempty"`

	// Explanation is the exact expected explanation.
	Explanation string `yaml:"explanation,omitempty"`

	// Error must appear in the explanation of a failed outcome.
	// Setting it also asserts that the outcome failed.
	Error string `yaml:"error,omitempty"`

	// FirstRow is a subset match against the first result row.
	FirstRow map[string]any `yaml:"first_row,omitempty"`

	// ContainsRow is a subset match against any result row.
	ContainsRow map[string]any `yaml:"contains_row,omitempty"`

	// Column lists the expected values of one column across all rows, in
	// order.
	Column *ColumnExpect `yaml:"column,omitempty"`
}

// ColumnExpect checks one column's values across all rows.
type ColumnExpect struct {
	Name   string `yaml:"name"`
	Values []any  `yaml:"values"`
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
// A relative Catalog path is resolved against the file's directory.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	s, err := ParseScenario(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if s.Catalog != "" && !filepath.IsAbs(s.Catalog) {
		s.Catalog = filepath.Join(filepath.Dir(path), s.Catalog)
	}
	return s, nil
}

// ParseScenario parses scenario YAML with strict field validation.
func ParseScenario(data []byte) (*Scenario, error) {
	var s Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&s); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &s, nil
}

// ErrNoScenarios is returned by LoadScenarios for a directory without
// scenario files.
var ErrNoScenarios = errors.New("no scenario files found")

// LoadScenarios loads every *.yaml and *.yml file in dir, sorted by path.
func LoadScenarios(dir string) ([]*Scenario, error) {
	var paths []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, err
		}
		paths = append(paths, matches...)
	}
	sort.Strings(paths)

	if len(paths) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoScenarios, dir)
	}

	scenarios := make([]*Scenario, 0, len(paths))
	seen := make(map[string]string, len(paths))
	for _, p := range paths {
		s, err := LoadScenario(p)
		if err != nil {
			return nil, err
		}
		if prev, ok := seen[s.Name]; ok {
			return nil, fmt.Errorf("scenario name %q used by both %s and %s", s.Name, prev, p)
		}
		seen[s.Name] = p
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		if step.Expect == nil {
			continue
		}
		e := step.Expect
		if e.Rows != nil && *e.Rows < 0 {
			return fmt.Errorf("steps[%d].expect: rows must be non-negative", i)
		}
		if e.Error != "" && e.Rows != nil && *e.Rows > 0 {
			return fmt.Errorf("steps[%d].expect: error cannot be combined with a positive row count", i)
		}
		if e.Column != nil && e.Column.Name == "" {
			return fmt.Errorf("steps[%d].expect.column: name is required", i)
		}
	}
	return nil
}

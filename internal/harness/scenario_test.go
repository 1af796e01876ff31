package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScenario(t *testing.T) {
	s, err := ParseScenario([]byte(`
name: sample
description: "sample scenario"
steps:
  - ask: "Show all customers"
    expect:
      rule: all_customers
      rows: 4
      first_row: { name: Sneha Reddy, id: 4 }
  - ask: "anything"
`))
	require.NoError(t, err)

	assert.Equal(t, "sample", s.Name)
	require.Len(t, s.Steps, 2)
	require.NotNil(t, s.Steps[0].Expect)
	assert.Equal(t, 4, *s.Steps[0].Expect.Rows)
	assert.Equal(t, map[string]any{"name": "Sneha Reddy", "id": 4}, s.Steps[0].Expect.FirstRow)
	assert.Nil(t, s.Steps[1].Expect)
}

func TestParseScenario_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"missing name", "description: d\nsteps:\n  - ask: x\n", "name is required"},
		{"missing description", "name: n\nsteps:\n  - ask: x\n", "description is required"},
		{"no steps", "name: n\ndescription: d\nsteps: []\n", "steps list is required"},
		{"unknown field", "name: n\ndescription: d\nstep:\n  - ask: x\n", "failed to parse YAML"},
		{"unknown expect field", "name: n\ndescription: d\nsteps:\n  - ask: x\n    expect: { rowz: 1 }\n", "failed to parse YAML"},
		{"negative rows", "name: n\ndescription: d\nsteps:\n  - ask: x\n    expect: { rows: -1 }\n", "rows must be non-negative"},
		{"error with rows", "name: n\ndescription: d\nsteps:\n  - ask: x\n    expect: { rows: 2, error: boom }\n", "error cannot be combined"},
		{"column without name", "name: n\ndescription: d\nsteps:\n  - ask: x\n    expect: { column: { values: [a] } }\n", "name is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadScenarios(t *testing.T) {
	t.Run("empty dir", func(t *testing.T) {
		_, err := LoadScenarios(t.TempDir())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no scenario files")
	})

	t.Run("duplicate names", func(t *testing.T) {
		dir := t.TempDir()
		content := []byte("name: same\ndescription: d\nsteps:\n  - ask: x\n")
		require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yaml"), content, 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yml"), content, 0o644))

		_, err := LoadScenarios(dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `scenario name "same"`)
	})

	t.Run("sorted", func(t *testing.T) {
		scenarios, err := LoadScenarios(filepath.Join("testdata", "scenarios"))
		require.NoError(t, err)
		names := make([]string, len(scenarios))
		for i, s := range scenarios {
			names[i] = s.Name
		}
		assert.Equal(t, []string{"catalog_basics", "parameter_binding", "process_questions"}, names)
	})
}

func TestLoadScenario_Missing(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

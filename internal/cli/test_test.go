package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/quickdocs/internal/harness"
)

var scenariosDir = filepath.Join("..", "harness", "testdata", "scenarios")

func writeScenario(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name+".yaml"), []byte(body), 0o644))
}

func TestTestCommandMissingArgs(t *testing.T) {
	_, err := executeCommand(t, nil, "test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg")
}

func TestTestCommandNonExistentScenariosDir(t *testing.T) {
	_, err := executeCommand(t, nil, "test", "/nonexistent/scenarios")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "scenarios directory not found")
}

func TestTestCommandEmptyScenariosDir(t *testing.T) {
	out, err := executeCommand(t, nil, "test", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "No scenarios found")
}

func TestTestCommandEmptyScenariosDirJSON(t *testing.T) {
	out, err := executeCommand(t, nil, "test", t.TempDir(), "--format", "json")
	require.NoError(t, err)

	var response CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &response))
	assert.Equal(t, "ok", response.Status)
}

func TestTestCommandRunsScenarios(t *testing.T) {
	out, err := executeCommand(t, nil, "test", scenariosDir, "--golden-dir", t.TempDir())
	require.NoError(t, err, out)

	assert.Contains(t, out, "✓ catalog_basics")
	assert.Contains(t, out, "✓ parameter_binding")
	assert.Contains(t, out, "✓ process_questions")
	assert.Contains(t, out, "Test Summary: 3 passed, 0 failed, 3 total")
	assert.Contains(t, out, "✓ All scenarios passed")
}

func TestTestCommandFilter(t *testing.T) {
	out, err := executeCommand(t, nil, "test", scenariosDir, "--golden-dir", t.TempDir(), "--filter", "catalog_*", "--format", "json")
	require.NoError(t, err, out)

	var resp struct {
		Status string     `json:"status"`
		Data   TestResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, 1, resp.Data.Total)
	assert.Equal(t, "catalog_basics", resp.Data.Scenarios[0].Name)
}

func TestTestCommandInvalidFilter(t *testing.T) {
	_, err := executeCommand(t, nil, "test", scenariosDir, "--filter", "[")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestTestCommandUpdateThenCompare(t *testing.T) {
	goldenDir := t.TempDir()

	out, err := executeCommand(t, nil, "test", scenariosDir, "--golden-dir", goldenDir, "--update")
	require.NoError(t, err, out)
	assert.Contains(t, out, "✓ catalog_basics (golden updated)")
	assert.FileExists(t, harness.GoldenPath(goldenDir, "catalog_basics"))

	out, err = executeCommand(t, nil, "test", scenariosDir, "--golden-dir", goldenDir)
	require.NoError(t, err, out)
	assert.Contains(t, out, "3 passed, 0 failed")
}

func TestTestCommandGoldenMismatch(t *testing.T) {
	goldenDir := t.TempDir()
	require.NoError(t, os.WriteFile(harness.GoldenPath(goldenDir, "catalog_basics"), []byte("{}\n"), 0o644))

	out, err := executeCommand(t, nil, "test", scenariosDir, "--golden-dir", goldenDir, "--filter", "catalog_basics")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ catalog_basics")
	assert.Contains(t, out, "does not match golden file")
}

func TestTestCommandFailingScenario(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "wrong_count", `name: wrong_count
description: expects the wrong number of customers
steps:
  - ask: Show all customers
    expect:
      rows: 99
`)

	buf := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"test", dir, "--format", "json"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, CodeTestFailed, resp.Error.Code)
	assert.Equal(t, "1 scenario(s) failed", resp.Error.Message)
}

func TestTestCommandBadScenarioFile(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "broken", "name: broken\nsteps: [\n")

	_, err := executeCommand(t, nil, "test", dir)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "failed to load scenarios")
}

func TestTestHelpText(t *testing.T) {
	out, err := executeCommand(t, nil, "test", "--help")
	require.NoError(t, err)

	assert.Contains(t, out, "scenarios")
	assert.Contains(t, out, "--update")
	assert.Contains(t, out, "--filter")
	assert.Contains(t, out, "--golden-dir")
	assert.Contains(t, out, "scenarios-dir")
}

func TestFilterScenarios(t *testing.T) {
	scenarios := []*harness.Scenario{{Name: "process-a"}, {Name: "process-b"}, {Name: "customers"}}

	assert.Len(t, filterScenarios(scenarios, ""), 3)

	got := filterScenarios(scenarios, "process-*")
	require.Len(t, got, 2)
	assert.Equal(t, "process-a", got[0].Name)
	assert.Equal(t, "customers", scenarios[2].Name)
}

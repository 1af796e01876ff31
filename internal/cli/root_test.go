package cli

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// executeCommand runs the root command with args and returns everything
// written to stdout and stderr.
func executeCommand(t *testing.T, opts *RootOptions, args ...string) (string, error) {
	t.Helper()
	if opts == nil {
		opts = &RootOptions{}
	}
	cmd := newRootCommand(opts)
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

// initDB creates and seeds a demo database in a temp dir.
func initDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "quickdocs.db")
	_, err := executeCommand(t, nil, "init", "--db", path)
	require.NoError(t, err)
	return path
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "quickdocs", cmd.Use)
	assert.Contains(t, cmd.Long, "plain-English")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"ask", "repl", "init", "schema", "patterns", "test"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	for _, name := range []string{"config", "db", "driver", "timeout", "catalog", "log-level", "log-format"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), "missing flag %s", name)
	}
}

func TestReplCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	replCmd, _, err := cmd.Find([]string{"repl"})
	require.NoError(t, err)

	addrFlag := replCmd.Flags().Lookup("metrics-addr")
	require.NotNil(t, addrFlag)
	assert.Equal(t, "", addrFlag.DefValue)
}

func TestInvalidFormat(t *testing.T) {
	_, err := executeCommand(t, nil, "patterns", "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestFlagsPopulateConfig(t *testing.T) {
	opts := &RootOptions{}
	_, err := executeCommand(t, opts, "patterns", "--db", "other.db", "--timeout", "5s")
	require.NoError(t, err)

	require.NotNil(t, opts.Config)
	assert.Equal(t, "other.db", opts.Config.Store.DSN)
	assert.Equal(t, 5*time.Second, opts.Config.Query.Timeout)
	assert.NotNil(t, opts.Logger)
}

func TestEnvPopulatesConfig(t *testing.T) {
	t.Setenv("QUICKDOCS_STORE_DSN", "from-env.db")

	opts := &RootOptions{}
	_, err := executeCommand(t, opts, "patterns")
	require.NoError(t, err)
	assert.Equal(t, "from-env.db", opts.Config.Store.DSN)

	opts = &RootOptions{}
	_, err = executeCommand(t, opts, "patterns", "--db", "from-flag.db")
	require.NoError(t, err)
	assert.Equal(t, "from-flag.db", opts.Config.Store.DSN)
}

func TestInvalidConfigValue(t *testing.T) {
	_, err := executeCommand(t, nil, "patterns", "--driver", "mysql")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "failed to load configuration")
}

func TestMissingConfigFile(t *testing.T) {
	_, err := executeCommand(t, nil, "patterns", "--config", filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestIsSQLitePath(t *testing.T) {
	assert.True(t, isSQLitePath("quickdocs.db"))
	assert.False(t, isSQLitePath(":memory:"))
	assert.False(t, isSQLitePath("file:test.db?mode=memory"))
}

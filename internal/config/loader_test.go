package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir moves into a fresh temp dir so no stray quickdocs.yaml or .env is
// picked up.
func chdir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t)

	cfg, err := Load(Options{})
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 30*time.Second, cfg.Query.Timeout)
}

func TestLoad_SearchedFile(t *testing.T) {
	dir := chdir(t)
	writeFile(t, filepath.Join(dir, "configs", "quickdocs.yaml"), `
store:
  dsn: data/demo.db
  max_open_conns: 2
query:
  timeout: 5s
logging:
  format: json
`)

	cfg, err := Load(Options{})
	require.NoError(t, err)
	assert.Equal(t, "data/demo.db", cfg.Store.DSN)
	assert.Equal(t, 2, cfg.Store.MaxOpenConns)
	assert.Equal(t, 5*time.Second, cfg.Query.Timeout)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "sqlite3", cfg.Store.Driver)
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	dir := chdir(t)

	_, err := Load(Options{ConfigFile: filepath.Join(dir, "missing.yaml")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := chdir(t)
	path := filepath.Join(dir, "custom.yaml")
	writeFile(t, path, "store:\n  dsn: from-file.db\n")
	t.Setenv("QUICKDOCS_STORE_DSN", "from-env.db")
	t.Setenv("QUICKDOCS_QUERY_TIMEOUT", "250ms")

	cfg, err := Load(Options{ConfigFile: path})
	require.NoError(t, err)
	assert.Equal(t, "from-env.db", cfg.Store.DSN)
	assert.Equal(t, 250*time.Millisecond, cfg.Query.Timeout)
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	chdir(t)
	t.Setenv("QUICKDOCS_STORE_DSN", "from-env.db")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("db", "", "")
	flags.String("driver", "", "")
	require.NoError(t, flags.Parse([]string{"--db", "from-flag.db"}))

	cfg, err := Load(Options{Flags: flags})
	require.NoError(t, err)
	assert.Equal(t, "from-flag.db", cfg.Store.DSN)
	assert.Equal(t, "sqlite3", cfg.Store.Driver, "unset flag must not clobber default")
}

func TestLoad_EnvFile(t *testing.T) {
	dir := chdir(t)
	envPath := filepath.Join(dir, "test.env")
	writeFile(t, envPath, "QUICKDOCS_METRICS_ADDR=127.0.0.1:9464\n")
	t.Cleanup(func() { os.Unsetenv("QUICKDOCS_METRICS_ADDR") })

	cfg, err := Load(Options{EnvFile: envPath})
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9464", cfg.Metrics.Addr)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"unknown driver", "store:\n  driver: mysql\n", "store.driver"},
		{"zero timeout", "query:\n  timeout: 0s\n", "query.timeout"},
		{"bad format", "logging:\n  format: xml\n", "logging.format"},
		{"bad level", "logging:\n  level: loud\n", "logging.level"},
		{"zero pool", "store:\n  max_open_conns: 0\n", "store.max_open_conns"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := chdir(t)
			path := filepath.Join(dir, "quickdocs.yaml")
			writeFile(t, path, tt.yaml)

			_, err := Load(Options{ConfigFile: path})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

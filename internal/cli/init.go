package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/quickdocs/internal/store"
)

// InitOptions holds flags for the init command.
type InitOptions struct {
	*RootOptions
	Force bool // replace an existing database
}

// InitResult is the JSON payload for init.
type InitResult struct {
	Database string   `json:"database"`
	Tables   []string `json:"tables"`
}

// NewInitCommand creates the init command.
func NewInitCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InitOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the demo database",
		Long: `Create the QuickDocs demo database and load the sample customers,
processes and document submissions.

An existing SQLite file is left alone unless --force is given.

Examples:
  quickdocs init
  quickdocs init --db ./demo.db --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(opts, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Force, "force", false, "replace an existing database")

	return cmd
}

func runInit(opts *InitOptions, cmd *cobra.Command) error {
	ctx := commandContext(cmd)
	cfg := opts.settings()

	if cfg.Store.Driver != store.DriverSQLite {
		return NewExitError(ExitCommandError,
			fmt.Sprintf("init only supports the %s driver", store.DriverSQLite))
	}

	dsn := cfg.Store.DSN
	if isSQLitePath(dsn) {
		if _, err := os.Stat(dsn); err == nil {
			if !opts.Force {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("database already exists: %s (use --force to recreate)", dsn))
			}
			if err := removeSQLiteFiles(dsn); err != nil {
				return WrapExitError(ExitCommandError, "failed to remove existing database", err)
			}
		}
	}

	st, err := store.Open(cfg.Store.Driver, dsn, store.WithLogger(opts.log()))
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to create database", err)
	}
	defer st.Close()

	if err := st.Seed(ctx); err != nil {
		return WrapExitError(ExitFailure, "failed to seed database", err)
	}

	schema, err := st.Schema(ctx)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to read schema", err)
	}

	result := InitResult{Database: dsn, Tables: schema.Tables()}
	if opts.Format == "json" {
		return opts.formatter(cmd).Success(result)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "✓ Database initialized: %s\n", dsn)
	fmt.Fprintf(w, "  Tables created: %v\n", result.Tables)
	return nil
}

// removeSQLiteFiles deletes a database file and its WAL side files.
func removeSQLiteFiles(path string) error {
	for _, p := range []string{path, path + "-wal", path + "-shm"} {
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	return nil
}

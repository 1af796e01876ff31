package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roach88/quickdocs/internal/config"
	"github.com/roach88/quickdocs/internal/logger"
	"github.com/roach88/quickdocs/internal/nlquery"
	"github.com/roach88/quickdocs/internal/store"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigFile string

	// Populated by the root PersistentPreRunE.
	Config *config.Config
	Logger *zap.Logger

	// IDGenerator overrides request ID generation (for testing).
	IDGenerator nlquery.IDGenerator
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the quickdocs CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quickdocs",
		Short: "QuickDocs - ask the document database in plain English",
		Long: `Translate plain-English questions about customers, processes and
documents into SQL, run them, and print the results.

Questions are matched against an ordered catalog of patterns; the first
pattern that matches decides the SQL.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return opts.setup(cmd)
		},
	}

	// Global flags
	pf := cmd.PersistentFlags()
	pf.BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	pf.StringVar(&opts.Format, "format", "text", "output format (json|text)")
	pf.StringVar(&opts.ConfigFile, "config", "", "config file (default: ./quickdocs.yaml if present)")
	pf.String("db", config.DefaultDSN, "database path or connection string")
	pf.String("driver", config.DefaultDriver, "database driver (sqlite3|postgres)")
	pf.Duration("timeout", config.DefaultTimeout, "per-query timeout")
	pf.String("catalog", "", "YAML pattern catalog (default: built-in catalog)")
	pf.String("log-level", config.DefaultLogLevel, "log level (debug|info|warn|error)")
	pf.String("log-format", config.DefaultLogFormat, "log format (text|json)")

	// Add subcommands
	cmd.AddCommand(NewAskCommand(opts))
	cmd.AddCommand(NewReplCommand(opts))
	cmd.AddCommand(NewInitCommand(opts))
	cmd.AddCommand(NewSchemaCommand(opts))
	cmd.AddCommand(NewPatternsCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

// setup loads configuration and builds the logger. Flags win over every
// other source, but only when set explicitly.
func (o *RootOptions) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(config.Options{
		ConfigFile: o.ConfigFile,
		Flags:      cmd.Flags(),
	})
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load configuration", err)
	}
	o.Config = cfg

	level := cfg.Logging.Level
	if o.Verbose {
		level = "debug"
	}
	log, err := logger.New(level, cfg.Logging.Format)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to create logger", err)
	}
	o.Logger = log
	return nil
}

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Verbose,
	}
}

func (o *RootOptions) log() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

func (o *RootOptions) settings() *config.Config {
	if o.Config == nil {
		return config.Default()
	}
	return o.Config
}

// openStore connects to the configured database. A SQLite file that does
// not exist yet is an error rather than silently creating an empty one.
func (o *RootOptions) openStore() (*store.Store, error) {
	cfg := o.settings()
	if cfg.Store.Driver == store.DriverSQLite && isSQLitePath(cfg.Store.DSN) {
		if _, err := os.Stat(cfg.Store.DSN); errors.Is(err, os.ErrNotExist) {
			return nil, NewExitError(ExitCommandError,
				fmt.Sprintf("database not found: %s (run 'quickdocs init' first)", cfg.Store.DSN))
		}
	}

	st, err := store.Open(cfg.Store.Driver, cfg.Store.DSN,
		store.WithLogger(o.log()),
		store.WithMaxOpenConns(cfg.Store.MaxOpenConns),
	)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	return st, nil
}

// loadCatalog returns the configured catalog, or the built-in one.
func (o *RootOptions) loadCatalog() (*nlquery.Catalog, error) {
	path := o.settings().Catalog.Path
	if path == "" {
		return nlquery.DefaultCatalog(), nil
	}
	c, err := nlquery.LoadCatalogFile(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load catalog", err)
	}
	return c, nil
}

// newProcessor builds a processor over st using the configured catalog and
// timeout. Extra options are applied last.
func (o *RootOptions) newProcessor(ctx context.Context, st nlquery.Store, extra ...nlquery.Option) (*nlquery.Processor, error) {
	catalog, err := o.loadCatalog()
	if err != nil {
		return nil, err
	}

	popts := []nlquery.Option{
		nlquery.WithCatalog(catalog),
		nlquery.WithTimeout(o.settings().Query.Timeout),
		nlquery.WithLogger(o.log()),
	}
	if o.IDGenerator != nil {
		popts = append(popts, nlquery.WithIDGenerator(o.IDGenerator))
	}
	popts = append(popts, extra...)

	p, err := nlquery.New(ctx, st, popts...)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to create query processor", err)
	}
	return p, nil
}

// isSQLitePath reports whether dsn names a plain file rather than an
// in-memory database or a URI.
func isSQLitePath(dsn string) bool {
	return dsn != ":memory:" && !strings.HasPrefix(dsn, "file:")
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

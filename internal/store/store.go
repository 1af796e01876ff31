package store

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

//go:embed schema.sql
var schemaSQL string

//go:embed sample_data.sql
var sampleDataSQL string

// Supported driver names, as registered with database/sql.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// DefaultMaxOpenConns bounds the pool. Each Execute call holds exactly one
// connection for its duration, so this is also the maximum number of
// concurrent queries.
const DefaultMaxOpenConns = 4

// Store is the relational store the query engine reads from.
// It owns a connection pool; individual calls check out one connection
// each and return it before they finish.
type Store struct {
	db      *sqlx.DB
	dialect dialect
	logger  *zap.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMaxOpenConns caps the connection pool. Values below 1 are ignored.
func WithMaxOpenConns(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.db.SetMaxOpenConns(n)
			s.db.SetMaxIdleConns(n)
		}
	}
}

// Open connects to a store using the given driver and data source.
//
// For sqlite3 the data source is a file path (or file: URI). The connection
// is configured with:
//   - WAL mode so readers never block each other
//   - NORMAL synchronous mode
//   - 5-second busy timeout for lock contention
//   - Foreign key enforcement
//
// The settings are passed through the DSN so every pooled connection gets
// them, not only the first one.
func Open(driver, dsn string, opts ...Option) (*Store, error) {
	d, err := dialectFor(driver)
	if err != nil {
		return nil, err
	}

	connStr := dsn
	if driver == DriverSQLite {
		connStr = sqliteDSN(dsn)
	}

	db, err := sqlx.Open(driver, connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Verify connection works
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := &Store{db: db, dialect: d, logger: zap.NewNop()}
	s.db.SetMaxOpenConns(DefaultMaxOpenConns)
	s.db.SetMaxIdleConns(DefaultMaxOpenConns)
	for _, opt := range opts {
		opt(s)
	}

	s.logger.Info("database opened",
		zap.String("driver", driver),
		zap.String("dsn", RedactDSN(dsn)),
	)

	return s, nil
}

// NewFromDB wraps an existing *sql.DB. The driver name selects the dialect
// used for introspection and placeholder rebinding; unknown names (such as
// "sqlmock") fall back to the sqlite3 dialect with placeholders left as-is.
func NewFromDB(db *sql.DB, driver string, opts ...Option) *Store {
	d, err := dialectFor(driver)
	if err != nil {
		d = sqliteDialect
	}
	s := &Store{db: sqlx.NewDb(db, driver), dialect: d, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Close closes the connection pool.
// Should be called when the store is no longer needed.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// DB returns the underlying sqlx.DB for direct queries.
// Use with caution - prefer using Store methods when available.
func (s *Store) DB() *sqlx.DB {
	return s.db
}

// Driver returns the database/sql driver name.
func (s *Store) Driver() string {
	return s.db.DriverName()
}

// Seed drops and recreates the demo schema and loads the sample data.
// Runs in a single transaction; safe to call repeatedly.
// Only the sqlite3 dialect ships seed scripts.
func (s *Store) Seed(ctx context.Context) error {
	if !s.dialect.seedable {
		return fmt.Errorf("seeding is not supported for driver %q", s.Driver())
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback() // no-op after commit
	}()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, sampleDataSQL); err != nil {
		return fmt.Errorf("failed to load sample data: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed transaction: %w", err)
	}

	s.logger.Info("database seeded")
	return nil
}

// sqliteDSN turns a path into a file: URI carrying the connection pragmas.
func sqliteDSN(path string) string {
	params := "_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000&_foreign_keys=on"
	if !strings.HasPrefix(path, "file:") {
		path = "file:" + path
	}
	if strings.Contains(path, "?") {
		return path + "&" + params
	}
	return path + "?" + params
}

// verifyPragma checks that a pragma is set to the expected value.
// Used for testing.
func (s *Store) verifyPragma(name, expected string) error {
	var value string
	query := fmt.Sprintf("PRAGMA %s", name)
	if err := s.db.QueryRow(query).Scan(&value); err != nil {
		return fmt.Errorf("failed to query %s: %w", name, err)
	}
	if value != expected {
		return fmt.Errorf("%s = %q, expected %q", name, value, expected)
	}
	return nil
}

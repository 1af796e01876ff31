package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/quickdocs/internal/store"
)

// SeededStore opens a SQLite store in a temp dir and loads the demo data.
// The store is closed when the test finishes.
func SeededStore(tb testing.TB, opts ...store.Option) *store.Store {
	tb.Helper()

	st, err := store.Open(store.DriverSQLite, filepath.Join(tb.TempDir(), "quickdocs.db"), opts...)
	require.NoError(tb, err)
	tb.Cleanup(func() { st.Close() })

	require.NoError(tb, st.Seed(context.Background()))
	return st
}

package store

import (
	"context"
	"path/filepath"
	"testing"
)

// createTestStore creates a new file-backed store for testing.
func createTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(DriverSQLite, path, opts...)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createSeededStore creates a test store loaded with the demo data.
func createSeededStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	s := createTestStore(t, opts...)
	if err := s.Seed(context.Background()); err != nil {
		t.Fatalf("Seed() failed: %v", err)
	}
	return s
}

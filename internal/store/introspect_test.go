package store

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchema_SeededTables(t *testing.T) {
	s := createSeededStore(t)

	schema, err := s.Schema(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"customers",
		"document_submissions",
		"document_types",
		"process_assignments",
		"process_document_requirements",
		"processes",
	}, schema.Tables())

	assert.Equal(t, []string{"id", "name", "email", "phone", "registration_date"}, schema["customers"])
	assert.Equal(t, []string{
		"id", "customer_id", "process_id", "status", "completion_percentage", "assignment_date",
	}, schema["process_assignments"])
}

func TestSchema_EmptyDatabase(t *testing.T) {
	s := createTestStore(t)

	schema, err := s.Schema(context.Background())
	require.NoError(t, err)
	assert.Empty(t, schema)
}

func TestSchema_Postgres(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	s := NewFromDB(db, DriverPostgres)

	mock.ExpectQuery(postgresDialect.tablesQuery).
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("customers"))
	mock.ExpectQuery(`SELECT column_name FROM information_schema.columns
WHERE table_schema = current_schema() AND table_name = $1
ORDER BY ordinal_position`).
		WithArgs("customers").
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}).AddRow("id").AddRow("name"))

	schema, err := s.Schema(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name"}, schema["customers"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSchema_ListTablesError(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	s := NewFromDB(db, DriverSQLite)
	mock.ExpectQuery(sqliteDialect.tablesQuery).WillReturnError(assert.AnError)

	_, err = s.Schema(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "list tables")
}

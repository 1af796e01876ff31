package store

import "fmt"

// dialect holds the driver-specific statements the store needs.
// Placeholders are written as ? and rebound by sqlx for the driver.
type dialect struct {
	name         string
	tablesQuery  string
	columnsQuery string
	seedable     bool
}

var sqliteDialect = dialect{
	name: DriverSQLite,
	tablesQuery: `SELECT name FROM sqlite_master
WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
ORDER BY name`,
	columnsQuery: `SELECT name FROM pragma_table_info(?) ORDER BY cid`,
	seedable:     true,
}

var postgresDialect = dialect{
	name: DriverPostgres,
	tablesQuery: `SELECT table_name FROM information_schema.tables
WHERE table_schema = current_schema() AND table_type = 'BASE TABLE'
ORDER BY table_name`,
	columnsQuery: `SELECT column_name FROM information_schema.columns
WHERE table_schema = current_schema() AND table_name = ?
ORDER BY ordinal_position`,
}

func dialectFor(driver string) (dialect, error) {
	switch driver {
	case DriverSQLite:
		return sqliteDialect, nil
	case DriverPostgres:
		return postgresDialect, nil
	default:
		return dialect{}, fmt.Errorf("unsupported driver %q: must be %q or %q", driver, DriverSQLite, DriverPostgres)
	}
}

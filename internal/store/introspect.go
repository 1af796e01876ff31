package store

import (
	"context"
	"fmt"

	"github.com/roach88/quickdocs/internal/ir"
)

// Schema reads the store's table and column layout.
// Tables are discovered first, then each table's columns in declaration
// order. Internal sqlite_ tables are excluded.
func (s *Store) Schema(ctx context.Context) (ir.SchemaMap, error) {
	conn, err := s.db.Connx(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Close()

	var tables []string
	if err := conn.SelectContext(ctx, &tables, s.dialect.tablesQuery); err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}

	schema := make(ir.SchemaMap, len(tables))
	columnsQuery := conn.Rebind(s.dialect.columnsQuery)
	for _, table := range tables {
		var columns []string
		if err := conn.SelectContext(ctx, &columns, columnsQuery, table); err != nil {
			return nil, fmt.Errorf("list columns of %s: %w", table, err)
		}
		schema[table] = columns
	}

	return schema, nil
}

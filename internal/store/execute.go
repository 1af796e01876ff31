package store

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/roach88/quickdocs/internal/ir"
)

// Execute runs a read statement and returns its rows in store order, with
// each value converted to its ir.Value variant.
//
// A connection is checked out of the pool for this call alone and returned
// on every exit path, including scan and iteration failures. No transaction
// is opened; read-only statements are assumed, not enforced.
//
// Statement errors are returned unwrapped so the driver's own diagnostic text
// reaches the caller unchanged.
func (s *Store) Execute(ctx context.Context, query string, args ...any) (ir.Result, error) {
	conn, err := s.db.Connx(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Close()

	s.logger.Debug("executing statement", zap.String("sql", query), zap.Int("args", len(args)))

	rows, err := conn.QueryxContext(ctx, conn.Rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	result := ir.Result{}
	for rows.Next() {
		raw, err := rows.SliceScan()
		if err != nil {
			return nil, err
		}
		values := make([]ir.Value, len(raw))
		for i, v := range raw {
			values[i] = ir.FromDriver(v)
		}
		result = append(result, ir.NewRow(columns, values))
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	s.logger.Debug("statement returned rows", zap.Int("rows", len(result)))
	return result, nil
}

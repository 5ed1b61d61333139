package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

// listByUser runs an owner-scoped, newest-first query and scans each row
// with scan. Both record kinds (executions and snippets) share this shape,
// so the pagination and iteration plumbing lives here once, parameterized by
// record type.
//
// baseQuery must end with its ORDER BY clause; the LIMIT is appended only
// when limit > 0.
func listByUser[T any](
	ctx context.Context,
	conn *sql.DB,
	baseQuery, kind, userID string,
	limit int,
	scan func(*sql.Rows) (T, error),
) ([]T, error) {
	query := baseQuery
	args := []any{userID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing %s for user %s: %w", kind, userID, err)
	}
	defer rows.Close()

	records := []T{}
	for rows.Next() {
		rec, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning %s row: %w", kind, err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating %s: %w", kind, err)
	}

	return records, nil
}

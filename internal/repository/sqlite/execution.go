package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/akarim/code-notebook/internal/model"
	"github.com/akarim/code-notebook/internal/repository"
)

// compile-time check that *DB implements repository.ExecutionRepository
var _ repository.ExecutionRepository = (*DB)(nil)

// CreateExecution inserts a new execution record. The record is modified in
// place: ID and CreatedAt are generated here. There is no corresponding
// update or delete — executions are immutable history.
func (db *DB) CreateExecution(ctx context.Context, exec *model.Execution) error {
	exec.ID = xid.New().String()
	exec.CreatedAt = time.Now()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO executions (id, user_id, code, language, output, error, suggestion, ui_locale, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		exec.ID,
		exec.UserID,
		exec.Code,
		exec.Language,
		exec.Output,
		exec.Error,
		exec.Suggestion,
		string(exec.UILocale),
		exec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating execution: %w", err)
	}

	return nil
}

// ListExecutionsByUser returns the user's executions, newest first. The
// secondary sort on id (xids are time-ordered) keeps the order strict when
// two rows share a created_at.
func (db *DB) ListExecutionsByUser(ctx context.Context, userID string, opts repository.ListOptions) ([]model.Execution, error) {
	return listByUser(ctx, db.conn,
		`SELECT id, user_id, code, language, output, error, suggestion, ui_locale, created_at
		 FROM executions
		 WHERE user_id = ?
		 ORDER BY created_at DESC, id DESC`,
		"executions", userID, opts.Limit,
		func(rows *sql.Rows) (model.Execution, error) {
			var e model.Execution
			var locale string
			err := rows.Scan(
				&e.ID, &e.UserID, &e.Code, &e.Language,
				&e.Output, &e.Error, &e.Suggestion, &locale, &e.CreatedAt,
			)
			e.UILocale = model.Locale(locale)
			return e, err
		},
	)
}

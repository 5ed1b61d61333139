package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/akarim/code-notebook/internal/model"
	"github.com/akarim/code-notebook/internal/repository"
)

// compile-time check that *DB implements repository.SnippetRepository
var _ repository.SnippetRepository = (*DB)(nil)

// CreateSnippet inserts a new snippet. ID and CreatedAt are generated here.
// Tags are stored as a JSON array in a TEXT column; SQLite has no native
// list type and the tags are only ever read back whole.
func (db *DB) CreateSnippet(ctx context.Context, snippet *model.Snippet) error {
	snippet.ID = xid.New().String()
	snippet.CreatedAt = time.Now()

	tags := snippet.Tags
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return fmt.Errorf("sqlite: encoding snippet tags: %w", err)
	}

	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO snippets (id, user_id, title, code, description, tags, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		snippet.ID,
		snippet.UserID,
		snippet.Title,
		snippet.Code,
		snippet.Description,
		string(tagsJSON),
		snippet.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating snippet: %w", err)
	}

	return nil
}

// ListSnippetsByUser returns the user's snippets, newest first, unbounded
// unless a limit is set.
func (db *DB) ListSnippetsByUser(ctx context.Context, userID string, opts repository.ListOptions) ([]model.Snippet, error) {
	return listByUser(ctx, db.conn,
		`SELECT id, user_id, title, code, description, tags, created_at
		 FROM snippets
		 WHERE user_id = ?
		 ORDER BY created_at DESC, id DESC`,
		"snippets", userID, opts.Limit,
		func(rows *sql.Rows) (model.Snippet, error) {
			var s model.Snippet
			var tagsJSON string
			if err := rows.Scan(
				&s.ID, &s.UserID, &s.Title, &s.Code,
				&s.Description, &tagsJSON, &s.CreatedAt,
			); err != nil {
				return s, err
			}
			if err := json.Unmarshal([]byte(tagsJSON), &s.Tags); err != nil {
				return s, fmt.Errorf("decoding tags: %w", err)
			}
			if len(s.Tags) == 0 {
				s.Tags = nil
			}
			return s, nil
		},
	)
}

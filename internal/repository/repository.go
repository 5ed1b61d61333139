// Package repository declares the storage interfaces the services depend on.
// The sqlite subpackage implements them; tests substitute in-memory mocks.
package repository

import (
	"context"

	"github.com/akarim/code-notebook/internal/model"
)

// ListOptions scopes owner-ordered reads. Limit <= 0 means no cap.
// Both record kinds share the same query shape: rows belonging to one owner,
// newest first.
type ListOptions struct {
	Limit int
}

// ExecutionRepository persists execution records. Records are append-only:
// there is deliberately no update or delete.
type ExecutionRepository interface {
	CreateExecution(ctx context.Context, exec *model.Execution) error
	ListExecutionsByUser(ctx context.Context, userID string, opts ListOptions) ([]model.Execution, error)
}

// SnippetRepository persists saved snippets. Same append-only contract as
// ExecutionRepository.
type SnippetRepository interface {
	CreateSnippet(ctx context.Context, snippet *model.Snippet) error
	ListSnippetsByUser(ctx context.Context, userID string, opts ListOptions) ([]model.Snippet, error)
}

// UserRepository persists user accounts for the OAuth flow.
type UserRepository interface {
	Upsert(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
}

// Package model defines the data structures shared across the application.
package model

import "time"

// Snippet is a saved piece of code a user wants to reuse. Like Execution,
// snippets are owner-scoped and append-only: create and list, no update or
// delete.
type Snippet struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Title       string    `json:"title"`
	Code        string    `json:"code"`
	Description string    `json:"description,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

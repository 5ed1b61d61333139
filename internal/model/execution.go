package model

import "time"

// LanguagePython is the only language the notebook nominally targets.
// Every execution record carries it so the schema stays honest if more
// languages are ever added.
const LanguagePython = "python"

// Execution is one simulated run of a piece of code, owned by the user who
// submitted it. Records are append-only: they are never updated or deleted,
// and a user only ever sees their own.
//
// Output and Error are mutually exclusive — the runner produces exactly one
// of them. Suggestion is only ever set alongside Error.
type Execution struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	Code       string    `json:"code"`
	Language   string    `json:"language"`
	Output     string    `json:"output,omitempty"`
	Error      string    `json:"error,omitempty"`
	Suggestion string    `json:"suggestion,omitempty"`
	UILocale   Locale    `json:"uiLocale"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Package service contains the business logic layer: validation, rule
// enforcement, and orchestration between the runner, the suggestion
// generator, and the repositories. Services know nothing about HTTP; the
// handler package translates their domain errors to status codes.
package service

import (
	"context"
	"log/slog"

	"github.com/akarim/code-notebook/internal/apperror"
	"github.com/akarim/code-notebook/internal/model"
	"github.com/akarim/code-notebook/internal/repository"
	"github.com/akarim/code-notebook/internal/runner"
)

// HistoryLimit caps how many past executions a user can read back.
const HistoryLimit = 20

// MaxCodeLength bounds submitted code (~100KB).
const MaxCodeLength = 100000

// Suggester produces a remediation hint for a failed run. It must never
// fail; implementations substitute a fallback string internally.
type Suggester interface {
	Suggest(ctx context.Context, code, errText string, locale model.Locale) string
}

// ExecutionResult is what a submit call returns to the caller. Output and
// Error mirror the runner's outcome; Suggestion is present only for errors.
type ExecutionResult struct {
	Output     string `json:"output,omitempty"`
	Error      string `json:"error,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

// ExecutionService orchestrates the run-suggest-persist pipeline and serves
// execution history.
type ExecutionService struct {
	repo      repository.ExecutionRepository
	suggester Suggester
	logger    *slog.Logger
}

// NewExecutionService creates an ExecutionService. The suggester is injected
// so tests can observe or stub the external completion call.
func NewExecutionService(repo repository.ExecutionRepository, suggester Suggester, logger *slog.Logger) *ExecutionService {
	return &ExecutionService{
		repo:      repo,
		suggester: suggester,
		logger:    logger,
	}
}

// Execute simulates running code for the given user and records the result.
//
// Pipeline: validate → run the stub → on error, fetch a suggestion → persist
// exactly one execution record → return the outcome. The suggestion call
// happens only for failed outcomes and can itself never fail (the generator
// falls back to a fixed localized string).
//
// If persistence fails, the caller sees only a generic "failed to execute
// code" error; the underlying cause is logged here. No record exists in that
// case — the insert is the only write.
func (s *ExecutionService) Execute(ctx context.Context, userID, code string, locale model.Locale) (*ExecutionResult, error) {
	if userID == "" {
		return nil, apperror.Unauthenticated()
	}
	if code == "" {
		return nil, apperror.ValidationFailed("code", "code is required")
	}
	if len(code) > MaxCodeLength {
		return nil, apperror.ValidationFailed("code", "code is too long")
	}
	if !locale.Valid() {
		return nil, apperror.ValidationFailed("locale", "locale must be \"ar\" or \"fr\"")
	}

	outcome := runner.Run(code)

	var suggestion string
	if outcome.Failed() {
		suggestion = s.suggester.Suggest(ctx, code, outcome.Error, locale)
	}

	exec := &model.Execution{
		UserID:     userID,
		Code:       code,
		Language:   model.LanguagePython,
		Output:     outcome.Output,
		Error:      outcome.Error,
		Suggestion: suggestion,
		UILocale:   locale,
	}
	if err := s.repo.CreateExecution(ctx, exec); err != nil {
		s.logger.Error("failed to persist execution",
			slog.String("userID", userID),
			slog.String("error", err.Error()),
		)
		return nil, apperror.Internal("failed to execute code")
	}

	s.logger.Info("code executed",
		slog.String("id", exec.ID),
		slog.String("userID", userID),
		slog.Bool("failed", outcome.Failed()),
	)

	return &ExecutionResult{
		Output:     outcome.Output,
		Error:      outcome.Error,
		Suggestion: suggestion,
	}, nil
}

// History returns the user's most recent executions, newest first, capped at
// HistoryLimit. An empty userID (anonymous caller) yields an empty slice,
// not an error.
func (s *ExecutionService) History(ctx context.Context, userID string) ([]model.Execution, error) {
	if userID == "" {
		return []model.Execution{}, nil
	}

	executions, err := s.repo.ListExecutionsByUser(ctx, userID, repository.ListOptions{Limit: HistoryLimit})
	if err != nil {
		s.logger.Error("failed to list executions",
			slog.String("userID", userID),
			slog.String("error", err.Error()),
		)
		return nil, apperror.Internal("failed to load execution history")
	}

	return executions, nil
}

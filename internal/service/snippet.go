package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/akarim/code-notebook/internal/apperror"
	"github.com/akarim/code-notebook/internal/model"
	"github.com/akarim/code-notebook/internal/repository"
)

const (
	MaxSnippetTitleLength = 100
	MaxTagCount           = 20
	MaxTagLength          = 50
)

// SnippetService handles saving and listing a user's snippets. Validation
// lives here rather than in the UI so every caller gets the same rules.
type SnippetService struct {
	repo   repository.SnippetRepository
	logger *slog.Logger
}

// NewSnippetService creates a SnippetService.
func NewSnippetService(repo repository.SnippetRepository, logger *slog.Logger) *SnippetService {
	return &SnippetService{
		repo:   repo,
		logger: logger,
	}
}

// Save validates and persists a new snippet for the given user. Title and
// code must be non-empty after trimming; tags are optional and kept in the
// order given.
func (s *SnippetService) Save(ctx context.Context, userID, title, code, description string, tags []string) (*model.Snippet, error) {
	if userID == "" {
		return nil, apperror.Unauthenticated()
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperror.ValidationFailed("title", "snippet title is required")
	}
	if len(title) > MaxSnippetTitleLength {
		return nil, apperror.ValidationFailed("title",
			fmt.Sprintf("snippet title must be %d characters or less", MaxSnippetTitleLength))
	}
	if strings.TrimSpace(code) == "" {
		return nil, apperror.ValidationFailed("code", "snippet code is required")
	}
	if len(code) > MaxCodeLength {
		return nil, apperror.ValidationFailed("code",
			fmt.Sprintf("code must be %d characters or less", MaxCodeLength))
	}
	if len(tags) > MaxTagCount {
		return nil, apperror.ValidationFailed("tags",
			fmt.Sprintf("at most %d tags are allowed", MaxTagCount))
	}
	for _, tag := range tags {
		if strings.TrimSpace(tag) == "" {
			return nil, apperror.ValidationFailed("tags", "tags must not be empty")
		}
		if len(tag) > MaxTagLength {
			return nil, apperror.ValidationFailed("tags",
				fmt.Sprintf("tags must be %d characters or less", MaxTagLength))
		}
	}

	snippet := &model.Snippet{
		UserID:      userID,
		Title:       title,
		Code:        code,
		Description: strings.TrimSpace(description),
		Tags:        tags,
	}

	if err := s.repo.CreateSnippet(ctx, snippet); err != nil {
		s.logger.Error("failed to create snippet",
			slog.String("userID", userID),
			slog.String("title", title),
			slog.String("error", err.Error()),
		)
		return nil, apperror.Internal("failed to save snippet")
	}

	s.logger.Info("snippet saved",
		slog.String("id", snippet.ID),
		slog.String("userID", userID),
		slog.String("title", snippet.Title),
	)

	return snippet, nil
}

// List returns all of the user's snippets, newest first. An empty userID
// (anonymous caller) yields an empty slice, not an error.
func (s *SnippetService) List(ctx context.Context, userID string) ([]model.Snippet, error) {
	if userID == "" {
		return []model.Snippet{}, nil
	}

	snippets, err := s.repo.ListSnippetsByUser(ctx, userID, repository.ListOptions{})
	if err != nil {
		s.logger.Error("failed to list snippets",
			slog.String("userID", userID),
			slog.String("error", err.Error()),
		)
		return nil, apperror.Internal("failed to load snippets")
	}

	return snippets, nil
}

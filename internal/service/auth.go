package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/akarim/code-notebook/internal/auth"
	"github.com/akarim/code-notebook/internal/model"
	"github.com/akarim/code-notebook/internal/repository"
)

// AuthService handles account lifecycle for the GitHub OAuth flow: it turns
// a GitHub profile into a local account and a signed session token.
type AuthService struct {
	users     repository.UserRepository
	tokens    *auth.TokenService
	passwords *auth.PasswordService
	logger    *slog.Logger
}

// NewAuthService creates an AuthService.
func NewAuthService(
	users repository.UserRepository,
	tokens *auth.TokenService,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		tokens:    tokens,
		passwords: passwords,
		logger:    logger,
	}
}

// AuthResult is a successful login: the account plus a session token the
// handler sets as a cookie.
type AuthResult struct {
	User  *model.User
	Token string
}

// LoginOrRegisterGitHub upserts the account matching the GitHub profile and
// issues a session token. First login creates the account; later logins
// refresh the profile fields (login, email, avatar) so renames on GitHub
// propagate here.
func (s *AuthService) LoginOrRegisterGitHub(ctx context.Context, gh *auth.GitHubUser) (*AuthResult, error) {
	user := &model.User{
		GitHubID:  gh.ID,
		Login:     gh.Login,
		Email:     gh.Email,
		AvatarURL: gh.AvatarURL,
	}

	if err := s.users.Upsert(ctx, user); err != nil {
		return nil, fmt.Errorf("upserting user for github id %d: %w", gh.ID, err)
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, fmt.Errorf("generating token for user %s: %w", user.ID, err)
	}

	s.logger.Info("user logged in",
		slog.String("user_id", user.ID),
		slog.String("login", user.Login),
	)

	return &AuthResult{User: user, Token: token}, nil
}

// GetUserByID loads an account by its internal ID.
func (s *AuthService) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	return s.users.GetUserByID(ctx, id)
}

// ValidateToken verifies a session token and returns the userID it carries.
func (s *AuthService) ValidateToken(token string) (string, error) {
	return s.tokens.Validate(token)
}

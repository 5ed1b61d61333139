package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akarim/code-notebook/internal/apperror"
	"github.com/akarim/code-notebook/internal/auth"
	"github.com/akarim/code-notebook/internal/model"
)

// fakeUserRepo keys users by GitHub ID like the real upsert does.
type fakeUserRepo struct {
	byGitHubID map[int64]*model.User
	upsertErr  error
	nextID     int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byGitHubID: make(map[int64]*model.User)}
}

func (f *fakeUserRepo) Upsert(_ context.Context, user *model.User) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	if existing, ok := f.byGitHubID[user.GitHubID]; ok {
		user.ID = existing.ID
	} else {
		f.nextID++
		user.ID = fmt.Sprintf("user-%d", f.nextID)
	}
	cp := *user
	f.byGitHubID[user.GitHubID] = &cp
	return nil
}

func (f *fakeUserRepo) GetUserByID(_ context.Context, id string) (*model.User, error) {
	for _, u := range f.byGitHubID {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperror.NotFound("user", id)
}

func newTestAuthService(t *testing.T, users *fakeUserRepo) *AuthService {
	t.Helper()

	tokens, err := auth.NewTokenService("test-secret-at-least-16-chars")
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	return NewAuthService(users, tokens, auth.NewPasswordServiceForTest(4), logger)
}

func TestAuthService_LoginOrRegisterGitHub_NewUser(t *testing.T) {
	users := newFakeUserRepo()
	svc := newTestAuthService(t, users)

	result, err := svc.LoginOrRegisterGitHub(context.Background(), &auth.GitHubUser{
		ID:        4242,
		Login:     "octocat",
		Email:     "octo@example.com",
		AvatarURL: "https://example.com/octo.png",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, result.User.ID)
	assert.Equal(t, "octocat", result.User.Login)
	assert.NotEmpty(t, result.Token)

	userID, err := svc.ValidateToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, userID)
}

func TestAuthService_LoginOrRegisterGitHub_ExistingUserKeepsID(t *testing.T) {
	users := newFakeUserRepo()
	svc := newTestAuthService(t, users)

	first, err := svc.LoginOrRegisterGitHub(context.Background(), &auth.GitHubUser{
		ID:    4242,
		Login: "octocat",
	})
	require.NoError(t, err)

	second, err := svc.LoginOrRegisterGitHub(context.Background(), &auth.GitHubUser{
		ID:    4242,
		Login: "octocat-renamed",
	})
	require.NoError(t, err)

	assert.Equal(t, first.User.ID, second.User.ID)
	assert.Equal(t, "octocat-renamed", second.User.Login)
}

func TestAuthService_LoginOrRegisterGitHub_RepoFailure(t *testing.T) {
	users := newFakeUserRepo()
	users.upsertErr = errors.New("disk full")
	svc := newTestAuthService(t, users)

	_, err := svc.LoginOrRegisterGitHub(context.Background(), &auth.GitHubUser{ID: 1, Login: "x"})
	assert.Error(t, err)
}

func TestAuthService_GetUserByID_NotFound(t *testing.T) {
	svc := newTestAuthService(t, newFakeUserRepo())

	_, err := svc.GetUserByID(context.Background(), "missing")
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestAuthService_ValidateToken_Garbage(t *testing.T) {
	svc := newTestAuthService(t, newFakeUserRepo())

	_, err := svc.ValidateToken("nonsense")
	assert.Error(t, err)
}

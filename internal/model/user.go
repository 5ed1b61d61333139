package model

import "time"

// User represents a registered account. GitHub OAuth is the identity
// provider, so the stable external identifier is GitHub's numeric user ID;
// we still generate our own internal string ID (xid) so primary keys are not
// tied to a third party's numbering scheme.
type User struct {
	ID        string    `json:"id"`
	GitHubID  int64     `json:"githubId"`  // GitHub's numeric user ID, unique per account
	Login     string    `json:"login"`     // GitHub username
	Email     string    `json:"email"`     // primary public email, may be empty if hidden
	AvatarURL string    `json:"avatarUrl"` // profile picture URL
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

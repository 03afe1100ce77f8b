// Package credentials keeps the authenticated session of the current user:
// the user id and the access/refresh token pair issued by the backend.
//
// Credentials are created by login, overwritten on every successful token
// refresh and removed on logout. Stores are the single owner of this data;
// consumers read it on demand and do not cache it.
package credentials

import (
	"context"
)

// Credentials is the persisted session. Tokens are opaque to the client.
type Credentials struct {
	UserID       string
	AccessToken  string
	RefreshToken string
}

// Complete reports whether all three fields are present.
func (c Credentials) Complete() bool {
	return c.UserID != "" && c.AccessToken != "" && c.RefreshToken != ""
}

// Store persists Credentials.
//
// Get returns (nil, nil) when no complete session is stored. Save replaces
// the stored session. Clear removes it and is idempotent.
type Store interface {
	Get(ctx context.Context) (*Credentials, error)
	Save(ctx context.Context, c Credentials) error
	Clear(ctx context.Context) error
}

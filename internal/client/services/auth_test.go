package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dmitrijs2005/examhub/internal/client/client"
	"github.com/dmitrijs2005/examhub/internal/client/credentials"
	"github.com/dmitrijs2005/examhub/internal/client/models"
	"github.com/dmitrijs2005/examhub/internal/client/transport"
	"github.com/stretchr/testify/require"
)

// ---- helpers ----

type brokenStore struct{ err error }

func (b brokenStore) Get(ctx context.Context) (*credentials.Credentials, error) { return nil, b.err }
func (b brokenStore) Save(ctx context.Context, c credentials.Credentials) error { return b.err }
func (b brokenStore) Clear(ctx context.Context) error                           { return b.err }

func loggedIn(t *testing.T, userID string) *credentials.MemoryStore {
	t.Helper()
	s := credentials.NewMemoryStore()
	require.NoError(t, s.Save(context.Background(), credentials.Credentials{UserID: userID, AccessToken: "A", RefreshToken: "R"}))
	return s
}

// ---- TESTS ----

func TestLogin_PersistsSession(t *testing.T) {
	api := &fakeAPI{LoginRet: &models.Session{
		User:         models.User{ID: "u1", Name: "Ada"},
		AccessToken:  "A1",
		RefreshToken: "R1",
	}}
	store := credentials.NewMemoryStore()
	svc := NewAuthService(api, store)

	pw := []byte("secret")
	u, err := svc.Login(context.Background(), "ada@x.io", pw)
	require.NoError(t, err)
	require.Equal(t, "Ada", u.Name)
	require.Equal(t, "secret", api.LastPassword)
	require.Equal(t, make([]byte, len(pw)), pw, "password is wiped")

	got, err := store.Get(context.Background())
	require.NoError(t, err)
	require.Equal(t, &credentials.Credentials{UserID: "u1", AccessToken: "A1", RefreshToken: "R1"}, got)
}

func TestLogin_Errors(t *testing.T) {
	apiErr := &transport.Error{Kind: transport.ErrAPI, Message: "Invalid email or password"}

	tests := []struct {
		name     string
		email    string
		password string
		api      *fakeAPI
		store    credentials.Store
		wantIs   error
		prefix   string
	}{
		{"empty email", " ", "pw", &fakeAPI{}, credentials.NewMemoryStore(), ErrInvalidIdentity, ""},
		{"empty password", "a@x.io", "", &fakeAPI{}, credentials.NewMemoryStore(), ErrEmptyPassword, ""},
		{"backend rejects", "a@x.io", "pw", &fakeAPI{LoginErr: apiErr}, credentials.NewMemoryStore(), transport.ErrAPI, "login error:"},
		{
			"store fails", "a@x.io", "pw",
			&fakeAPI{LoginRet: &models.Session{User: models.User{ID: "u"}, AccessToken: "A", RefreshToken: "R"}},
			brokenStore{errors.New("disk full")}, nil, "credentials saving error:",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewAuthService(tt.api, tt.store).Login(context.Background(), tt.email, []byte(tt.password))
			require.Error(t, err)
			if tt.wantIs != nil {
				require.ErrorIs(t, err, tt.wantIs)
			}
			if tt.prefix != "" {
				require.True(t, strings.HasPrefix(err.Error(), tt.prefix), err.Error())
			}
		})
	}
}

func TestLogout_ClearsStore(t *testing.T) {
	store := loggedIn(t, "u1")
	svc := NewAuthService(&fakeAPI{}, store)

	require.NoError(t, svc.Logout(context.Background()))
	got, err := store.Get(context.Background())
	require.NoError(t, err)
	require.Nil(t, got)

	_, err = svc.CurrentUser(context.Background())
	require.ErrorIs(t, err, ErrNotLoggedIn)
}

func TestCurrentUser(t *testing.T) {
	api := &fakeAPI{UserRet: &models.User{ID: "u1", Name: "Ada"}}
	svc := NewAuthService(api, loggedIn(t, "u1"))

	u, err := svc.CurrentUser(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Ada", u.Name)
	require.Equal(t, "u1", api.LastUserID)

	_, err = NewAuthService(api, brokenStore{errors.New("locked")}).CurrentUser(context.Background())
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNotLoggedIn)
}

func TestRegister(t *testing.T) {
	api := &fakeAPI{SignupRet: &models.User{ID: "u2"}}
	svc := NewAuthService(api, credentials.NewMemoryStore())

	u, err := svc.Register(context.Background(), "Bob", "bob@x.io", []byte("pw"))
	require.NoError(t, err)
	require.Equal(t, "u2", u.ID)
	require.Equal(t, "pw", api.LastPassword)

	_, err = svc.Register(context.Background(), "Bob", "", []byte("pw"))
	require.ErrorIs(t, err, ErrInvalidIdentity)
}

func TestUpdateProfile(t *testing.T) {
	api := &fakeAPI{UpdateRet: &models.User{ID: "u1", Username: "ada"}}
	svc := NewAuthService(api, loggedIn(t, "u1"))

	u, err := svc.UpdateProfile(context.Background(), client.ProfileUpdate{Name: "Ada", Username: "ada"})
	require.NoError(t, err)
	require.Equal(t, "ada", u.Username)
	require.Equal(t, "u1", api.LastUserID)
	require.Equal(t, client.ProfileUpdate{Name: "Ada", Username: "ada"}, api.LastUpdate)
}

func TestChangePassword(t *testing.T) {
	api := &fakeAPI{}
	svc := NewAuthService(api, loggedIn(t, "u1"))

	require.NoError(t, svc.ChangePassword(context.Background(), []byte("old"), []byte("new")))
	require.Equal(t, "old", api.LastOldPassword)
	require.Equal(t, "new", api.LastPassword)

	require.ErrorIs(t, svc.ChangePassword(context.Background(), []byte("old"), nil), ErrEmptyPassword)

	loggedOut := NewAuthService(api, credentials.NewMemoryStore())
	require.ErrorIs(t, loggedOut.ChangePassword(context.Background(), []byte("a"), []byte("b")), ErrNotLoggedIn)
}

func TestPasswordResetFlow(t *testing.T) {
	api := &fakeAPI{OTPStudentID: "s-1"}
	svc := NewAuthService(api, credentials.NewMemoryStore())
	ctx := context.Background()

	id, err := svc.RequestPasswordReset(ctx, "ada@x.io")
	require.NoError(t, err)
	require.Equal(t, "s-1", id)

	require.NoError(t, svc.VerifyOTP(ctx, id, " 123456 "))
	require.Equal(t, "123456", api.LastOTP)

	require.NoError(t, svc.ResetPassword(ctx, id, []byte("fresh")))
	require.Equal(t, "s-1", api.LastStudentID)
	require.Equal(t, "fresh", api.LastPassword)

	_, err = svc.RequestPasswordReset(ctx, "")
	require.ErrorIs(t, err, ErrInvalidIdentity)
	require.ErrorIs(t, svc.ResetPassword(ctx, id, nil), ErrEmptyPassword)
}

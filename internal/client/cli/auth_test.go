package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/examhub/internal/client/client"
	"github.com/dmitrijs2005/examhub/internal/client/models"
	"github.com/dmitrijs2005/examhub/internal/client/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ada = &models.User{ID: "stu-1", Name: "Ada Lovelace", Email: "ada@examhub.dev"}

func TestLogin(t *testing.T) {
	stubInputs(t, []string{"ada@examhub.dev"}, "password123")
	auth := &fakeAuth{user: ada}
	a, out := newTestApp(auth, nil, nil)

	require.NoError(t, a.Login(context.Background()))
	assert.Equal(t, "ada@examhub.dev", auth.email)
	assert.Equal(t, "password123", auth.password)
	assert.True(t, a.isLoggedIn())
	assert.Equal(t, "(Ada Lovelace)", a.getStatus())
	assert.Contains(t, out.String(), "Logged in as Ada Lovelace")
}

func TestLogin_Errors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "api",
			err:  &transport.Error{Kind: transport.ErrAPI, Message: "Invalid email or password", StatusCode: 400},
			want: "Invalid email or password\n",
		},
		{
			name: "network",
			err:  &transport.Error{Kind: transport.ErrNetwork, Message: transport.MessageNetwork},
			want: transport.MessageNetwork + "\n",
		},
		{
			name: "local validation",
			err:  errors.New("email must not be empty"),
			want: "Error: email must not be empty\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubInputs(t, []string{"ada@examhub.dev"}, "nope")
			a, out := newTestApp(&fakeAuth{err: tt.err}, nil, nil)

			err := a.Login(context.Background())
			require.ErrorIs(t, err, tt.err)
			assert.False(t, a.isLoggedIn())
			assert.Equal(t, tt.want, out.String())
		})
	}
}

func TestLogin_InputError(t *testing.T) {
	stubInputs(t, nil)
	a, _ := newTestApp(&fakeAuth{user: ada}, nil, nil)
	require.Error(t, a.Login(context.Background()))
	assert.False(t, a.isLoggedIn())
}

func TestSessionExpiredAsksForLogin(t *testing.T) {
	expired := &transport.Error{Kind: transport.ErrSessionExpired, Message: transport.MessageSessionExpired}
	a, out := newTestApp(&fakeAuth{}, &fakeContent{err: expired}, nil)
	a.user = ada

	err := a.Questions(context.Background())
	require.ErrorIs(t, err, transport.ErrSessionExpired)
	assert.False(t, a.isLoggedIn())
	assert.Equal(t, transport.MessageSessionExpired+"\nType 'login' to start a new session.\n", out.String())
}

func TestRegister(t *testing.T) {
	stubInputs(t, []string{"Grace Hopper", "grace@examhub.dev"}, "cobol")
	auth := &fakeAuth{}
	a, out := newTestApp(auth, nil, nil)

	require.NoError(t, a.Register(context.Background()))
	assert.Equal(t, "grace@examhub.dev", auth.email)
	assert.Equal(t, "cobol", auth.password)
	assert.False(t, a.isLoggedIn())
	assert.Contains(t, out.String(), "Registered grace@examhub.dev")
}

func TestLogout(t *testing.T) {
	auth := &fakeAuth{}
	a, _ := newTestApp(auth, nil, nil)
	a.user = ada

	require.NoError(t, a.Logout(context.Background()))
	assert.True(t, auth.loggedOut)
	assert.False(t, a.isLoggedIn())
}

func TestRestoreSession(t *testing.T) {
	a, out := newTestApp(&fakeAuth{user: ada}, nil, nil)
	a.restoreSession(context.Background())
	assert.True(t, a.isLoggedIn())
	assert.Contains(t, out.String(), "Welcome back, Ada Lovelace")

	a, out = newTestApp(&fakeAuth{err: errors.New("not logged in")}, nil, nil)
	a.restoreSession(context.Background())
	assert.False(t, a.isLoggedIn())
	assert.Empty(t, out.String())
}

func TestWhoAmIAndRename(t *testing.T) {
	auth := &fakeAuth{user: ada}
	a, out := newTestApp(auth, nil, nil)

	require.NoError(t, a.WhoAmI(context.Background()))
	assert.Contains(t, out.String(), "Ada Lovelace <ada@examhub.dev>")

	require.NoError(t, a.Rename(context.Background(), "countess"))
	assert.Equal(t, client.ProfileUpdate{Username: "countess"}, auth.upd)
	assert.Equal(t, "(countess)", a.getStatus())
}

func TestChangePassword(t *testing.T) {
	stubInputs(t, nil, "old", "new")
	auth := &fakeAuth{}
	a, out := newTestApp(auth, nil, nil)

	require.NoError(t, a.ChangePassword(context.Background()))
	assert.Equal(t, []string{"old", "new"}, auth.passwords)
	assert.Contains(t, out.String(), "Password changed")
}

func TestResetPassword(t *testing.T) {
	stubInputs(t, []string{"alan@examhub.dev", " 123456 "}, "enigma")
	auth := &fakeAuth{}
	a, out := newTestApp(auth, nil, nil)

	require.NoError(t, a.ResetPassword(context.Background()))
	assert.Equal(t, "alan@examhub.dev", auth.email)
	assert.Equal(t, " 123456 ", auth.otp)
	assert.Equal(t, "enigma", auth.password)
	assert.Contains(t, out.String(), "Password reset")
}

func TestResetPassword_WrongCode(t *testing.T) {
	stubInputs(t, []string{"alan@examhub.dev", "000000"}, "enigma")
	auth := &fakeAuth{}
	a, out := newTestApp(auth, nil, nil)

	a.authService = &otpRejectingAuth{fakeAuth: auth}

	require.Error(t, a.ResetPassword(context.Background()))
	assert.Empty(t, auth.password)
	assert.Contains(t, out.String(), "Invalid OTP")
}

type otpRejectingAuth struct {
	*fakeAuth
}

func (f *otpRejectingAuth) VerifyOTP(context.Context, string, string) error {
	return &transport.Error{Kind: transport.ErrAPI, Message: "Invalid OTP", StatusCode: 400}
}

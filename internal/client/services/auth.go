// Package services contains application services for the examhub client.
// This file defines the authentication service: login/logout, registration,
// password changes and the reset-by-OTP flow.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/examhub/internal/client/client"
	"github.com/dmitrijs2005/examhub/internal/client/credentials"
	"github.com/dmitrijs2005/examhub/internal/client/models"
	"github.com/dmitrijs2005/examhub/internal/common"
)

var (
	ErrNotLoggedIn     = errors.New("not logged in")
	ErrEmptyPassword   = errors.New("password must not be empty")
	ErrInvalidIdentity = errors.New("email must not be empty")
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login: authenticate against the backend and persist the session.
//   - Register: create a new student account.
//   - Logout: drop the stored session. It never calls the backend.
//   - CurrentUser: fetch the profile of the stored session's user.
//   - ChangePassword: change the password of the logged-in user.
//   - RequestPasswordReset / VerifyOTP / ResetPassword: the forgotten
//     password flow.
//
// Password arguments are wiped once sent. All methods must honor context
// cancellation/timeouts.
type AuthService interface {
	Login(ctx context.Context, email string, password []byte) (*models.User, error)
	Register(ctx context.Context, name, email string, password []byte) (*models.User, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*models.User, error)
	UpdateProfile(ctx context.Context, upd client.ProfileUpdate) (*models.User, error)
	ChangePassword(ctx context.Context, oldPassword, newPassword []byte) error
	RequestPasswordReset(ctx context.Context, email string) (string, error)
	VerifyOTP(ctx context.Context, studentID, otp string) error
	ResetPassword(ctx context.Context, studentID string, newPassword []byte) error
}

type authService struct {
	api   client.API
	store credentials.Store
}

func NewAuthService(api client.API, store credentials.Store) AuthService {
	return &authService{api: api, store: store}
}

// currentUserID returns the id of the stored session or ErrNotLoggedIn.
func currentUserID(ctx context.Context, store credentials.Store) (string, error) {
	creds, err := store.Get(ctx)
	if err != nil {
		return "", fmt.Errorf("read credentials: %w", err)
	}
	if creds == nil {
		return "", ErrNotLoggedIn
	}
	return creds.UserID, nil
}

func (a *authService) Login(ctx context.Context, email string, password []byte) (*models.User, error) {
	defer common.WipeByteArray(password)

	if strings.TrimSpace(email) == "" {
		return nil, ErrInvalidIdentity
	}
	if len(password) == 0 {
		return nil, ErrEmptyPassword
	}

	s, err := a.api.Login(ctx, email, string(password))
	if err != nil {
		return nil, fmt.Errorf("login error: %w", err)
	}

	err = a.store.Save(ctx, credentials.Credentials{
		UserID:       s.User.ID,
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
	})
	if err != nil {
		return nil, fmt.Errorf("credentials saving error: %w", err)
	}
	return &s.User, nil
}

func (a *authService) Register(ctx context.Context, name, email string, password []byte) (*models.User, error) {
	defer common.WipeByteArray(password)

	if strings.TrimSpace(email) == "" {
		return nil, ErrInvalidIdentity
	}
	if len(password) == 0 {
		return nil, ErrEmptyPassword
	}
	return a.api.Signup(ctx, name, email, string(password))
}

func (a *authService) Logout(ctx context.Context) error {
	return a.store.Clear(ctx)
}

func (a *authService) CurrentUser(ctx context.Context) (*models.User, error) {
	id, err := currentUserID(ctx, a.store)
	if err != nil {
		return nil, err
	}
	return a.api.GetUserDetails(ctx, id)
}

func (a *authService) UpdateProfile(ctx context.Context, upd client.ProfileUpdate) (*models.User, error) {
	id, err := currentUserID(ctx, a.store)
	if err != nil {
		return nil, err
	}
	return a.api.UpdateProfile(ctx, id, upd)
}

func (a *authService) ChangePassword(ctx context.Context, oldPassword, newPassword []byte) error {
	defer common.WipeByteArray(oldPassword)
	defer common.WipeByteArray(newPassword)

	if _, err := currentUserID(ctx, a.store); err != nil {
		return err
	}
	if len(newPassword) == 0 {
		return ErrEmptyPassword
	}
	return a.api.ChangePassword(ctx, string(oldPassword), string(newPassword))
}

func (a *authService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	if strings.TrimSpace(email) == "" {
		return "", ErrInvalidIdentity
	}
	return a.api.GenerateOTP(ctx, email)
}

func (a *authService) VerifyOTP(ctx context.Context, studentID, otp string) error {
	return a.api.VerifyOTP(ctx, studentID, strings.TrimSpace(otp))
}

func (a *authService) ResetPassword(ctx context.Context, studentID string, newPassword []byte) error {
	defer common.WipeByteArray(newPassword)

	if len(newPassword) == 0 {
		return ErrEmptyPassword
	}
	return a.api.ResetPassword(ctx, studentID, string(newPassword))
}

package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/examhub/internal/client/client"
	"github.com/dmitrijs2005/examhub/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for name, email and password and creates an account.
// It does not log the new student in.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.authService.Register(ctx, name, email, password)
	if err != nil {
		return a.report(err)
	}

	fmt.Fprintf(a.out, "Registered %s. You can log in now.\n", u.Email)
	return nil
}

// Login prompts for credentials and starts a session. The session is
// persisted in the encrypted store and survives restarts.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.authService.Login(ctx, email, password)
	if err != nil {
		return a.report(err)
	}

	a.user = u
	fmt.Fprintf(a.out, "Logged in as %s\n", u.DisplayName())
	return nil
}

// Logout drops the stored session.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return a.report(err)
	}
	a.user = nil
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	u, err := a.authService.CurrentUser(ctx)
	if err != nil {
		return a.report(err)
	}
	a.user = u
	printUser(a.out, u)
	return nil
}

// Rename changes the username of the logged-in student.
func (a *App) Rename(ctx context.Context, username string) error {
	u, err := a.authService.UpdateProfile(ctx, client.ProfileUpdate{Username: username})
	if err != nil {
		return a.report(err)
	}
	a.user = u
	fmt.Fprintf(a.out, "Username set to %s\n", u.Username)
	return nil
}

func (a *App) ChangePassword(ctx context.Context) error {
	fmt.Fprintln(a.out, "Current password")
	oldPassword, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(oldPassword)

	fmt.Fprintln(a.out, "New password")
	newPassword, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(newPassword)

	if err := a.authService.ChangePassword(ctx, oldPassword, newPassword); err != nil {
		return a.report(err)
	}
	fmt.Fprintln(a.out, "Password changed")
	return nil
}

// ResetPassword runs the forgotten-password flow: request a one-time code
// by email, confirm it, then choose a new password.
func (a *App) ResetPassword(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	studentID, err := a.authService.RequestPasswordReset(ctx, email)
	if err != nil {
		return a.report(err)
	}

	otp, err := getSimpleText(a.reader, "Enter the code sent to your email", a.out)
	if err != nil {
		return err
	}
	if err := a.authService.VerifyOTP(ctx, studentID, otp); err != nil {
		return a.report(err)
	}

	fmt.Fprintln(a.out, "New password")
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.authService.ResetPassword(ctx, studentID, password); err != nil {
		return a.report(err)
	}
	fmt.Fprintln(a.out, "Password reset. You can log in now.")
	return nil
}

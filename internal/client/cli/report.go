package cli

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/examhub/internal/client/transport"
)

// report prints err for the user. Transport failures carry a ready message;
// anything else is a local validation error.
func (a *App) report(err error) error {
	var te *transport.Error
	if !errors.As(err, &te) {
		fmt.Fprintln(a.out, "Error:", err.Error())
		return err
	}

	fmt.Fprintln(a.out, transport.UserMessage(err))
	if errors.Is(err, transport.ErrSessionExpired) {
		a.user = nil
		fmt.Fprintln(a.out, "Type 'login' to start a new session.")
	}
	return err
}

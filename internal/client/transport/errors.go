package transport

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/examhub/internal/client/errmap"
)

// Error kinds. Match them with errors.Is on any error returned by Client.
var (
	ErrTimeout         = errors.New("timeout")
	ErrNetwork         = errors.New("network error")
	ErrSessionExpired  = errors.New("session expired")
	ErrAPI             = errors.New("api error")
	ErrCredentialStore = errors.New("credential store error")
)

var (
	ErrNoRefreshToken     = errors.New("no refresh token available")
	ErrEmptyAccessToken   = errors.New("refresh returned no access token")
	ErrRefreshRejected    = errors.New("refresh rejected")
	ErrInvalidBaseURL     = errors.New("invalid base url")
	ErrUnsupportedRequest = errors.New("unsupported request")
)

const (
	MessageTimeout        = "Request timed out. Please try again."
	MessageNetwork        = "Network error. Please check your connection."
	MessageSessionExpired = "Session expired. Please log in again."
	MessageCredentials    = "Could not access stored credentials."
	MessageGeneric        = errmap.GenericMessage
)

// Error is the normalized failure returned by Client. Message is meant for
// the end user; Err keeps the underlying cause for logs.
type Error struct {
	Kind       error
	Message    string
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%v: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%v: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

func timeoutError(err error) *Error {
	return &Error{Kind: ErrTimeout, Message: MessageTimeout, Err: err}
}

func networkError(err error) *Error {
	return &Error{Kind: ErrNetwork, Message: MessageNetwork, Err: err}
}

func sessionExpiredError(err error) *Error {
	return &Error{Kind: ErrSessionExpired, Message: MessageSessionExpired, Err: err}
}

func credentialStoreError(err error) *Error {
	return &Error{Kind: ErrCredentialStore, Message: MessageCredentials, Err: err}
}

func apiError(status int, message string, err error) *Error {
	if message == "" {
		message = MessageGeneric
	}
	return &Error{Kind: ErrAPI, Message: message, StatusCode: status, Err: err}
}

// UserMessage returns the text to show for err: the normalized message
// when err came from Client, the generic message otherwise.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return MessageGeneric
}

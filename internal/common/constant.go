// Package common contains shared constants and sentinel errors used across
// examhub components.
package common

const (
	// AuthorizationHeaderName carries the bearer access token on outbound requests.
	AuthorizationHeaderName = "Authorization"

	// BearerPrefix precedes the access token in the Authorization header.
	BearerPrefix = "Bearer "

	// RequestIDHeaderName carries a per-request correlation id.
	RequestIDHeaderName = "X-Request-ID"

	// RefreshPath is the backend endpoint that exchanges a refresh token
	// for a new token pair. It is relative to the API base URL.
	RefreshPath = "/student/auth/refresh/"
)

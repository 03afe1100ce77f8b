package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"net/http"

	"github.com/dmitrijs2005/examhub/internal/common"
	"github.com/dmitrijs2005/examhub/internal/server/services"
)

// Error codes shown in error pages. Clients map them to user-facing text.
const (
	CodeUnauthorized        = "Unauthorized request"
	CodeInvalidAccessToken  = "Invalid access token"
	CodeJWTExpired          = "jwt expired"
	CodeInvalidRefreshToken = "Invalid refresh token"
	CodeRefreshExpired      = "Refresh token is expired or used"
	CodeEmailExists         = "Email already exists"
	CodeInvalidCredentials  = "Invalid email or password"
	CodeMissingFields       = "All fields are required"
	CodeStudentNotFound     = "Student not found"
	CodeWrongPassword       = "Invalid old password"
	CodeInvalidOTP          = "Invalid OTP"
	CodeOTPExpired          = "OTP expired"
	CodeOTPNotVerified      = "OTP not verified"
	CodeQuestionNotFound    = "Question not found"
	CodeSubjectNotFound     = "Subject not found"
	CodeInvalidMarks        = "Marks must not be negative"
	CodeForbidden           = "Forbidden"
	CodeBadRequest          = "Invalid request body"
	CodeNotFound            = "Not Found"
	CodeMethodNotAllowed    = "Method Not Allowed"
	CodeInternal            = "Internal Server Error"
)

type envelope struct {
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

func writeJSON(w http.ResponseWriter, status int, data any, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{StatusCode: status, Data: data, Message: message, Success: true})
}

const errorPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Error</title>
</head>
<body>
<pre>Error: %s<br> &nbsp; &nbsp;at %s %s</pre>
</body>
</html>
`

func writeErrorPage(w http.ResponseWriter, r *http.Request, status int, code string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = fmt.Fprintf(w, errorPage, html.EscapeString(code), html.EscapeString(r.Method), html.EscapeString(r.URL.Path))
}

// statusOf maps a service error to the HTTP status and error code it is
// reported with.
func statusOf(err error) (int, string) {
	switch {
	case errors.Is(err, errBadRequest):
		return http.StatusBadRequest, CodeBadRequest
	case errors.Is(err, services.ErrMissingFields):
		return http.StatusBadRequest, CodeMissingFields
	case errors.Is(err, services.ErrEmailExists):
		return http.StatusConflict, CodeEmailExists
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusBadRequest, CodeInvalidCredentials
	case errors.Is(err, services.ErrStudentNotFound):
		return http.StatusNotFound, CodeStudentNotFound
	case errors.Is(err, services.ErrWrongPassword):
		return http.StatusBadRequest, CodeWrongPassword
	case errors.Is(err, services.ErrInvalidOTP):
		return http.StatusBadRequest, CodeInvalidOTP
	case errors.Is(err, services.ErrOTPExpired):
		return http.StatusBadRequest, CodeOTPExpired
	case errors.Is(err, services.ErrOTPNotVerified):
		return http.StatusBadRequest, CodeOTPNotVerified
	case errors.Is(err, services.ErrQuestionNotFound):
		return http.StatusNotFound, CodeQuestionNotFound
	case errors.Is(err, services.ErrSubjectNotFound):
		return http.StatusNotFound, CodeSubjectNotFound
	case errors.Is(err, services.ErrInvalidMarks):
		return http.StatusBadRequest, CodeInvalidMarks
	case errors.Is(err, services.ErrForbidden):
		return http.StatusForbidden, CodeForbidden
	case errors.Is(err, common.ErrInvalidToken):
		return http.StatusUnauthorized, CodeInvalidRefreshToken
	case errors.Is(err, common.ErrRefreshTokenExpired):
		return http.StatusUnauthorized, CodeRefreshExpired
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}

// fail reports err. Unexpected errors are logged, their text never reaches
// the client.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, code := statusOf(err)
	if status == http.StatusInternalServerError {
		s.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	}
	writeErrorPage(w, r, status, code)
}

// decode reads a JSON request body into v.
func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}

var errBadRequest = errors.New("bad request")

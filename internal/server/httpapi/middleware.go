package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/examhub/internal/common"
	"github.com/dmitrijs2005/examhub/internal/logging"
	"github.com/dmitrijs2005/examhub/internal/server/auth"
)

type ctxKey string

const userIDKey ctxKey = "userID"

// userID returns the authenticated student id stored by authenticate.
func userID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

// authenticate requires a valid bearer access token.
func (s *Server) authenticate(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get(common.AuthorizationHeaderName), common.BearerPrefix)
		if !ok || strings.TrimSpace(token) == "" {
			writeErrorPage(w, r, http.StatusUnauthorized, CodeUnauthorized)
			return
		}

		id, err := auth.GetUserIDFromToken(strings.TrimSpace(token), s.jwtSecret)
		if err != nil {
			code := CodeInvalidAccessToken
			if errors.Is(err, common.ErrTokenExpired) {
				code = CodeJWTExpired
			}
			s.logger.Debug(r.Context(), "rejected access token", "path", r.URL.Path, "auth", logging.Token(token), "reason", err)
			writeErrorPage(w, r, http.StatusUnauthorized, code)
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userIDKey, id)))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// logRequests logs every request with its status and duration and echoes
// the caller's request id.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := r.Header.Get(common.RequestIDHeaderName)
		if requestID != "" {
			w.Header().Set(common.RequestIDHeaderName, requestID)
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		s.logger.Info(r.Context(), "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"request_id", requestID,
			"duration", time.Since(start),
		)
	})
}

// recoverPanics turns a handler panic into a 500 page.
func (s *Server) recoverPanics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if p := recover(); p != nil {
				if p == http.ErrAbortHandler {
					panic(p)
				}
				s.logger.Error(r.Context(), "handler panic", "path", r.URL.Path, "panic", p)
				writeErrorPage(w, r, http.StatusInternalServerError, CodeInternal)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

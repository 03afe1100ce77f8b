package transport

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/examhub/internal/client/credentials"
	"github.com/dmitrijs2005/examhub/internal/logging"
)

const DefaultRefreshTimeout = 10 * time.Second

// Session coordinates token refresh for every Client that shares it.
//
// At most one refresh is outstanding at a time. The caller that finds no
// refresh running becomes the driver; callers arriving while it runs are
// queued and settled in arrival order with the driver's outcome.
type Session struct {
	store     credentials.Store
	refresher Refresher
	log       logging.Logger
	timeout   time.Duration

	mu         sync.Mutex
	refreshing bool
	queue      []*waiter
}

type waiter struct {
	requestID string
	done      chan refreshResult
}

type refreshResult struct {
	token string
	err   error
}

type SessionOption func(*Session)

func WithSessionLogger(l logging.Logger) SessionOption {
	return func(s *Session) { s.log = l }
}

// WithRefreshTimeout bounds a single refresh call.
func WithRefreshTimeout(d time.Duration) SessionOption {
	return func(s *Session) { s.timeout = d }
}

func NewSession(store credentials.Store, refresher Refresher, opts ...SessionOption) *Session {
	s := &Session{
		store:     store,
		refresher: refresher,
		log:       logging.Nop(),
		timeout:   DefaultRefreshTimeout,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Refreshing reports whether a refresh is in flight.
func (s *Session) Refreshing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refreshing
}

// Pending reports how many callers are waiting on the refresh in flight.
func (s *Session) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// Refresh returns a fresh access token, either by driving a refresh or by
// waiting for the one in flight. Errors are *Error of kind
// ErrSessionExpired or ErrCredentialStore. A waiter whose ctx ends leaves
// the queue and gets the context error; the refresh itself carries on.
func (s *Session) Refresh(ctx context.Context, requestID string) (string, error) {
	s.mu.Lock()
	return s.join(ctx, requestID)
}

// Renew is Refresh for a request that was rejected while carrying sent.
// When no refresh is running and the store already holds another access
// token, a refresh settled after the request went out; that token is
// returned without rotating again.
func (s *Session) Renew(ctx context.Context, requestID, sent string) (string, error) {
	s.mu.Lock()
	if !s.refreshing {
		creds, err := s.store.Get(ctx)
		if err == nil && creds != nil && creds.AccessToken != "" && creds.AccessToken != sent {
			s.mu.Unlock()
			s.log.Debug(ctx, "token already refreshed", "request_id", requestID)
			return creds.AccessToken, nil
		}
	}
	return s.join(ctx, requestID)
}

// join is called with s.mu held and releases it.
func (s *Session) join(ctx context.Context, requestID string) (string, error) {
	if s.refreshing {
		w := &waiter{requestID: requestID, done: make(chan refreshResult, 1)}
		s.queue = append(s.queue, w)
		position := len(s.queue)
		s.mu.Unlock()

		s.log.Debug(ctx, "waiting for token refresh", "request_id", requestID, "position", position)

		select {
		case r := <-w.done:
			return r.token, r.err
		case <-ctx.Done():
			s.leave(w)
			return "", ctx.Err()
		}
	}
	s.refreshing = true
	s.mu.Unlock()

	return s.drive(ctx, requestID)
}

// leave drops w from the queue unless settle already released it.
func (s *Session) leave(w *waiter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := slices.Index(s.queue, w); i >= 0 {
		s.queue = slices.Delete(s.queue, i, i+1)
	}
}

func (s *Session) drive(ctx context.Context, requestID string) (token string, err error) {
	// shared with the waiters: detached from the driver's cancellation
	rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()

	defer func() {
		p := recover()
		if p != nil {
			err = sessionExpiredError(fmt.Errorf("refresh panicked: %v", p))
		}
		s.settle(ctx, token, err)
		if p != nil {
			panic(p)
		}
	}()

	s.log.Info(ctx, "token refresh started", "request_id", requestID)
	token, err = s.refresh(rctx)
	if err != nil {
		s.log.Warn(ctx, "token refresh failed", "request_id", requestID, "error", err)
		return "", err
	}
	s.log.Info(ctx, "token refresh succeeded", "request_id", requestID, "access_token", logging.Token(token))
	return token, nil
}

func (s *Session) refresh(ctx context.Context) (string, error) {
	creds, err := s.store.Get(ctx)
	if err != nil {
		return "", credentialStoreError(err)
	}
	if creds == nil || creds.RefreshToken == "" {
		return "", sessionExpiredError(ErrNoRefreshToken)
	}

	tokens, err := s.refresher.Refresh(ctx, creds.RefreshToken, creds.UserID)
	if err != nil {
		return "", sessionExpiredError(err)
	}
	if tokens.AccessToken == "" {
		return "", sessionExpiredError(ErrEmptyAccessToken)
	}
	if tokens.RefreshToken == "" {
		tokens.RefreshToken = creds.RefreshToken
	}

	err = s.store.Save(ctx, credentials.Credentials{
		UserID:       creds.UserID,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	})
	if err != nil {
		return "", credentialStoreError(err)
	}
	return tokens.AccessToken, nil
}

// settle hands the outcome to every queued waiter, oldest first, and clears
// the in-progress flag in the same critical section.
func (s *Session) settle(ctx context.Context, token string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, w := range s.queue {
		w.done <- refreshResult{token: token, err: err}
		s.log.Debug(ctx, "released waiter", "request_id", w.requestID, "position", i+1, "ok", err == nil)
	}
	s.queue = nil
	s.refreshing = false
}

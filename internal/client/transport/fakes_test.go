package transport

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/dmitrijs2005/examhub/internal/client/credentials"
	"github.com/dmitrijs2005/examhub/internal/common"
)

// ---- fake backend ----

const expiredPage = `<!DOCTYPE html><html><body><pre>Error: jwt expired<br> &nbsp; &nbsp;at verify (/app/middleware/auth.js:12:9)</pre></body></html>`

type backend struct {
	mu          sync.Mutex
	validToken  string
	nextAccess  string
	nextRefresh string

	refreshStatus int
	refreshGate   chan struct{}
	refreshCalls  atomic.Int32
	refreshBodies []refreshRequest

	requests []seenRequest
	srv      *httptest.Server
}

type seenRequest struct {
	Method    string
	Path      string
	Query     string
	Auth      string
	RequestID string
	Body      string
}

func newBackend(t *testing.T, validToken, nextAccess, nextRefresh string) *backend {
	t.Helper()
	b := &backend{
		validToken:    validToken,
		nextAccess:    nextAccess,
		nextRefresh:   nextRefresh,
		refreshStatus: http.StatusOK,
	}
	b.srv = httptest.NewServer(http.HandlerFunc(b.serve))
	t.Cleanup(b.srv.Close)
	return b
}

func (b *backend) URL() string { return b.srv.URL + "/api/v1" }

func (b *backend) serve(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v1")
	if path == common.RefreshPath {
		b.serveRefresh(w, r)
		return
	}

	body, _ := io.ReadAll(r.Body)

	b.mu.Lock()
	b.requests = append(b.requests, seenRequest{
		Method:    r.Method,
		Path:      path,
		Query:     r.URL.RawQuery,
		Auth:      r.Header.Get(common.AuthorizationHeaderName),
		RequestID: r.Header.Get(common.RequestIDHeaderName),
		Body:      string(body),
	})
	valid := b.validToken
	b.mu.Unlock()

	switch {
	case strings.HasPrefix(path, "/public"):
	case r.Header.Get(common.AuthorizationHeaderName) != common.BearerPrefix+valid:
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(expiredPage))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"data": map[string]string{"path": path}})
}

func (b *backend) serveRefresh(w http.ResponseWriter, r *http.Request) {
	b.refreshCalls.Add(1)

	var in refreshRequest
	_ = json.NewDecoder(r.Body).Decode(&in)

	b.mu.Lock()
	b.refreshBodies = append(b.refreshBodies, in)
	gate := b.refreshGate
	status := b.refreshStatus
	b.mu.Unlock()

	if gate != nil {
		<-gate
	}

	if status != http.StatusOK {
		w.WriteHeader(status)
		return
	}

	b.mu.Lock()
	b.validToken = b.nextAccess
	out := map[string]any{"accessToken": b.nextAccess}
	if b.nextRefresh != "" {
		out["refreshToken"] = b.nextRefresh
	}
	b.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"data": out})
}

func (b *backend) set(fn func(b *backend)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	fn(b)
}

func (b *backend) openGate() {
	b.mu.Lock()
	gate := b.refreshGate
	b.mu.Unlock()
	close(gate)
}

func (b *backend) refreshed() []refreshRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]refreshRequest(nil), b.refreshBodies...)
}

func (b *backend) seen() []seenRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]seenRequest(nil), b.requests...)
}

// ---- fake stores ----

type recordingStore struct {
	*credentials.MemoryStore
	mu    sync.Mutex
	saves []credentials.Credentials
}

func newRecordingStore(c *credentials.Credentials) *recordingStore {
	s := &recordingStore{MemoryStore: credentials.NewMemoryStore()}
	if c != nil {
		_ = s.MemoryStore.Save(context.Background(), *c)
	}
	return s
}

func (s *recordingStore) Save(ctx context.Context, c credentials.Credentials) error {
	s.mu.Lock()
	s.saves = append(s.saves, c)
	s.mu.Unlock()
	return s.MemoryStore.Save(ctx, c)
}

func (s *recordingStore) saved() []credentials.Credentials {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]credentials.Credentials(nil), s.saves...)
}

type failingStore struct {
	creds   *credentials.Credentials
	getErr  error
	saveErr error
}

func (s *failingStore) Get(ctx context.Context) (*credentials.Credentials, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.creds, nil
}

func (s *failingStore) Save(ctx context.Context, c credentials.Credentials) error {
	return s.saveErr
}

func (s *failingStore) Clear(ctx context.Context) error { return nil }

// ---- fake refresher ----

type fakeRefresher struct {
	calls  atomic.Int32
	gate   chan struct{}
	tokens Tokens
	err    error
	panic  any

	mu   sync.Mutex
	args []string
	ctxs []context.Context
}

func (f *fakeRefresher) Refresh(ctx context.Context, refreshToken, userID string) (Tokens, error) {
	f.calls.Add(1)
	f.mu.Lock()
	f.args = append(f.args, refreshToken+"|"+userID)
	f.ctxs = append(f.ctxs, ctx)
	f.mu.Unlock()

	if f.gate != nil {
		<-f.gate
	}
	if f.panic != nil {
		panic(f.panic)
	}
	return f.tokens, f.err
}

func stored(userID, access, refresh string) *credentials.Credentials {
	return &credentials.Credentials{UserID: userID, AccessToken: access, RefreshToken: refresh}
}

func mustNew(t *testing.T, baseURL string, store credentials.Store, opts ...Option) *Client {
	t.Helper()
	c, err := New(baseURL, store, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

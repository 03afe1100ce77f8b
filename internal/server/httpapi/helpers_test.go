package httpapi

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/examhub/internal/common"
	"github.com/dmitrijs2005/examhub/internal/logging"
	"github.com/dmitrijs2005/examhub/internal/server/config"
	"github.com/dmitrijs2005/examhub/internal/server/migrations"
	"github.com/dmitrijs2005/examhub/internal/server/models"
	"github.com/dmitrijs2005/examhub/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/examhub/internal/server/services"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

const testSecret = "test-secret"

type testEnv struct {
	srv          *httptest.Server
	server       *Server
	db           *sql.DB
	m            repomanager.RepositoryManager
	codes        map[string]string
	refreshCalls atomic.Int32
}

func newEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := sql.Open("sqlite", "file:"+t.TempDir()+"/api.db")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, migrations.Up(context.Background(), db))

	env := &testEnv{db: db, m: repomanager.NewSQLiteRepositoryManager(), codes: map[string]string{}}
	cfg := &config.Config{
		SecretKey:                    testSecret,
		AccessTokenValidityDuration:  time.Minute,
		RefreshTokenValidityDuration: time.Hour,
	}
	us := services.NewUserService(db, env.m, cfg, logging.Nop(), services.WithOTPNotifier(
		func(_ context.Context, st *models.Student, code string) { env.codes[st.ID] = code }))
	cs := services.NewContentService(db, env.m)
	require.NoError(t, services.Seed(context.Background(), db, env.m, us))

	env.server = NewServer(":0", logging.Nop(), us, cs, testSecret)
	handler := env.server.Handler()
	env.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == APIPrefix+common.RefreshPath {
			env.refreshCalls.Add(1)
		}
		handler.ServeHTTP(w, r)
	}))
	t.Cleanup(env.srv.Close)
	return env
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) (*http.Response, []byte) {
	t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, e.srv.URL+APIPrefix+path, rd)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}

	resp, err := e.srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

type testEnvelope[T any] struct {
	StatusCode int    `json:"statusCode"`
	Data       T      `json:"data"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

func decodeData[T any](t *testing.T, body []byte) T {
	t.Helper()
	var env testEnvelope[T]
	require.NoError(t, json.Unmarshal(body, &env), string(body))
	require.True(t, env.Success)
	return env.Data
}

func (e *testEnv) login(t *testing.T, email string) sessionView {
	t.Helper()
	resp, body := e.do(t, http.MethodPost, "/student/login/", "", map[string]string{"email": email, "password": services.DemoPassword})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	return decodeData[sessionView](t, body)
}

// errorCode pulls the code out of an error page.
func errorCode(t *testing.T, resp *http.Response, body []byte) string {
	t.Helper()
	require.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "text/html"), resp.Header.Get("Content-Type"))
	s := string(body)
	start := strings.Index(s, "<pre>Error: ")
	end := strings.Index(s, "<br>")
	require.True(t, start >= 0 && end > start, s)
	return s[start+len("<pre>Error: ") : end]
}

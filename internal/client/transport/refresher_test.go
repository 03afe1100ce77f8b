package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmitrijs2005/examhub/internal/common"
	"github.com/stretchr/testify/require"
)

func TestEndpointRefresher_Refresh(t *testing.T) {
	var got refreshRequest
	var gotPath, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get(common.AuthorizationHeaderName)
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(`{"data":{"accessToken":"new-A","refreshToken":"new-R"}}`))
	}))
	t.Cleanup(srv.Close)

	r := NewEndpointRefresher(srv.URL+"/api/v1/", srv.Client())
	tokens, err := r.Refresh(context.Background(), "old-R", "u1")
	require.NoError(t, err)
	require.Equal(t, Tokens{AccessToken: "new-A", RefreshToken: "new-R"}, tokens)
	require.Equal(t, "/api/v1/student/auth/refresh/", gotPath)
	require.Equal(t, refreshRequest{RefreshToken: "old-R", StudentID: "u1"}, got)
	require.Empty(t, gotAuth, "refresh bypasses credential attachment")
}

func TestEndpointRefresher_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"rejected", http.StatusUnauthorized, `<pre>Error: invalid refresh token</pre>`, ErrRefreshRejected},
		{"server error", http.StatusInternalServerError, ``, ErrRefreshRejected},
		{"malformed", http.StatusOK, `{"data":`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			t.Cleanup(srv.Close)

			_, err := NewEndpointRefresher(srv.URL, nil).Refresh(context.Background(), "R", "u1")
			require.Error(t, err)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

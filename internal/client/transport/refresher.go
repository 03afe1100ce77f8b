package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/dmitrijs2005/examhub/internal/common"
)

// Tokens is the outcome of a successful refresh. RefreshToken may be empty
// when the backend does not rotate it.
type Tokens struct {
	AccessToken  string
	RefreshToken string
}

// Refresher exchanges a refresh token for a new token pair.
type Refresher interface {
	Refresh(ctx context.Context, refreshToken, userID string) (Tokens, error)
}

// EndpointRefresher calls the backend refresh endpoint directly, outside
// the interceptor pipeline, so a failing refresh can never recurse into
// another refresh.
type EndpointRefresher struct {
	baseURL    string
	httpClient *http.Client
}

func NewEndpointRefresher(baseURL string, httpClient *http.Client) *EndpointRefresher {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &EndpointRefresher{baseURL: baseURL, httpClient: httpClient}
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
	StudentID    string `json:"studentId"`
}

type refreshResponse struct {
	Data struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
	} `json:"data"`
}

func (r *EndpointRefresher) Refresh(ctx context.Context, refreshToken, userID string) (Tokens, error) {
	payload, err := json.Marshal(refreshRequest{RefreshToken: refreshToken, StudentID: userID})
	if err != nil {
		return Tokens{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, joinURL(r.baseURL, common.RefreshPath), bytes.NewReader(payload))
	if err != nil {
		return Tokens{}, err
	}
	req.Header.Set("Content-Type", contentTypeJSON)
	req.Header.Set("Accept", contentTypeJSON)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return Tokens{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Tokens{}, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Tokens{}, fmt.Errorf("%w: status %d", ErrRefreshRejected, resp.StatusCode)
	}

	var out refreshResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return Tokens{}, fmt.Errorf("decode refresh response: %w", err)
	}

	return Tokens{AccessToken: out.Data.AccessToken, RefreshToken: out.Data.RefreshToken}, nil
}

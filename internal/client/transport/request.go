package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

const contentTypeJSON = "application/json"

// Request is one logical call. The pipeline works on a copy per attempt,
// so interceptors may change Header freely.
type Request struct {
	// ID is sent as X-Request-ID and stays the same across the resend.
	ID      string
	Method  string
	Path    string
	Header  http.Header
	Query   url.Values
	Body    []byte
	Retried bool
}

// Response is what the pipeline hands back before classification.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

func (r *Request) clone() *Request {
	c := *r
	c.Header = r.Header.Clone()
	if c.Header == nil {
		c.Header = http.Header{}
	}
	if r.Query != nil {
		c.Query = make(url.Values, len(r.Query))
		for k, v := range r.Query {
			c.Query[k] = append([]string(nil), v...)
		}
	}
	if r.Body != nil {
		c.Body = append([]byte(nil), r.Body...)
	}
	return &c
}

// RequestOption adjusts a single call.
type RequestOption func(*Request)

// WithHeader sets a header on the request. Setting Authorization
// disables credential attachment for the first attempt.
func WithHeader(key, value string) RequestOption {
	return func(r *Request) {
		if r.Header == nil {
			r.Header = http.Header{}
		}
		r.Header.Set(key, value)
	}
}

// WithQuery adds a query parameter.
func WithQuery(key, value string) RequestOption {
	return func(r *Request) {
		if r.Query == nil {
			r.Query = url.Values{}
		}
		r.Query.Add(key, value)
	}
}

// encodeBody turns a call body into bytes that can be replayed on resend.
// nil means no body; []byte, json.RawMessage and io.Reader are sent as is;
// anything else, a string included, is encoded as JSON.
func encodeBody(body any) ([]byte, error) {
	switch b := body.(type) {
	case nil:
		return nil, nil
	case []byte:
		return b, nil
	case json.RawMessage:
		return b, nil
	case io.Reader:
		data, err := io.ReadAll(b)
		if err != nil {
			return nil, fmt.Errorf("read request body: %w", err)
		}
		return data, nil
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, fmt.Errorf("%w: encode body: %v", ErrUnsupportedRequest, err)
		}
		return data, nil
	}
}

func newHTTPRequest(ctx context.Context, r *Request, baseURL string) (*http.Request, error) {
	u, err := url.Parse(joinURL(baseURL, r.Path))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedRequest, err)
	}
	if len(r.Query) > 0 {
		q := u.Query()
		for k, v := range r.Query {
			for _, s := range v {
				q.Add(k, s)
			}
		}
		u.RawQuery = q.Encode()
	}

	var body io.Reader
	if r.Body != nil {
		body = bytes.NewReader(r.Body)
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedRequest, err)
	}
	for k, v := range r.Header {
		req.Header[k] = append([]string(nil), v...)
	}
	if req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", contentTypeJSON)
	}
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", contentTypeJSON)
	}
	return req, nil
}

func joinURL(base, path string) string {
	for len(base) > 0 && base[len(base)-1] == '/' {
		base = base[:len(base)-1]
	}
	for len(path) > 0 && path[0] == '/' {
		path = path[1:]
	}
	return base + "/" + path
}

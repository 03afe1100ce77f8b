package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/examhub/internal/client/credentials"
	"github.com/dmitrijs2005/examhub/internal/client/errmap"
	"github.com/dmitrijs2005/examhub/internal/common"
	"github.com/dmitrijs2005/examhub/internal/logging"
	"github.com/google/uuid"
)

const DefaultTimeout = 10 * time.Second

// ErrorMapper derives the user-facing message of a failed response.
type ErrorMapper interface {
	Map(status int, body []byte) string
}

type Client struct {
	baseURL      string
	httpClient   *http.Client
	timeout      time.Duration
	store        credentials.Store
	session      *Session
	mapper       ErrorMapper
	log          logging.Logger
	interceptors []Interceptor

	invoke Invoker
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.httpClient = c }
}

// WithTimeout sets the per-attempt timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

func WithLogger(l logging.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithSession shares a refresh coordinator between clients. Without it
// each client gets its own Session refreshing through the backend endpoint.
func WithSession(s *Session) Option {
	return func(c *Client) { c.session = s }
}

func WithErrorMapper(m ErrorMapper) Option {
	return func(c *Client) { c.mapper = m }
}

// WithInterceptors appends interceptors after the built-in ones.
func WithInterceptors(ics ...Interceptor) Option {
	return func(c *Client) { c.interceptors = append(c.interceptors, ics...) }
}

func New(baseURL string, store credentials.Store, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, baseURL)
	}

	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{},
		timeout:    DefaultTimeout,
		store:      store,
		log:        logging.Nop(),
	}
	for _, o := range opts {
		o(c)
	}
	if c.mapper == nil {
		c.mapper = errmap.New()
	}
	if c.session == nil {
		c.session = NewSession(store, NewEndpointRefresher(baseURL, c.httpClient),
			WithSessionLogger(c.log), WithRefreshTimeout(c.timeout))
	}

	builtins := []Interceptor{
		RequestIDInterceptor(),
		CredentialsInterceptor(store),
		LoggingInterceptor(c.log),
	}
	c.invoke = chain(append(builtins, c.interceptors...), c.send)

	return c, nil
}

// Session returns the refresh coordinator used by c.
func (c *Client) Session() *Session {
	return c.session
}

// Request sends one call and returns the raw response body.
func (c *Client) Request(ctx context.Context, method, path string, body any, opts ...RequestOption) (json.RawMessage, error) {
	data, err := encodeBody(body)
	if err != nil {
		return nil, err
	}

	req := &Request{
		ID:     uuid.NewString(),
		Method: method,
		Path:   path,
		Header: http.Header{},
		Body:   data,
	}
	for _, o := range opts {
		o(req)
	}

	resp, err := c.do(ctx, req)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// Do is Request followed by decoding the body into out. A nil out or an
// empty body skips decoding.
func (c *Client) Do(ctx context.Context, method, path string, body, out any, opts ...RequestOption) error {
	raw, err := c.Request(ctx, method, path, body, opts...)
	if err != nil {
		return err
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return apiError(http.StatusOK, MessageGeneric, fmt.Errorf("decode response: %w", err))
	}
	return nil
}

func (c *Client) Get(ctx context.Context, path string, out any, opts ...RequestOption) error {
	return c.Do(ctx, http.MethodGet, path, nil, out, opts...)
}

func (c *Client) Post(ctx context.Context, path string, body, out any, opts ...RequestOption) error {
	return c.Do(ctx, http.MethodPost, path, body, out, opts...)
}

func (c *Client) Put(ctx context.Context, path string, body, out any, opts ...RequestOption) error {
	return c.Do(ctx, http.MethodPut, path, body, out, opts...)
}

func (c *Client) Patch(ctx context.Context, path string, body, out any, opts ...RequestOption) error {
	return c.Do(ctx, http.MethodPatch, path, body, out, opts...)
}

func (c *Client) Delete(ctx context.Context, path string, out any, opts ...RequestOption) error {
	return c.Do(ctx, http.MethodDelete, path, nil, out, opts...)
}

// do runs one attempt and classifies its outcome. A first 401 goes through
// the session and is resent once with the new token. The session skips the
// refresh when the rejected token is already stale.
func (c *Client) do(ctx context.Context, req *Request) (*Response, error) {
	attempt := req.clone()
	resp, err := c.invoke(ctx, attempt)
	if err != nil {
		return nil, c.classify(ctx, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized && !req.Retried:
		sent := strings.TrimPrefix(attempt.Header.Get(common.AuthorizationHeaderName), common.BearerPrefix)
		token, err := c.session.Renew(ctx, req.ID, sent)
		if err != nil {
			var e *Error
			if errors.As(err, &e) {
				return nil, err
			}
			return nil, fmt.Errorf("waiting for token refresh: %w", err)
		}

		retry := req.clone()
		retry.Retried = true
		retry.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
		return c.do(ctx, retry)

	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, apiError(resp.StatusCode, c.mapper.Map(resp.StatusCode, resp.Body), nil)
	}

	return resp, nil
}

func (c *Client) classify(ctx context.Context, err error) error {
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	if errors.Is(err, ErrUnsupportedRequest) {
		return err
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("request canceled: %w", ctxErr)
	}

	var ne net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout()) {
		return timeoutError(err)
	}
	return networkError(err)
}

// send is the end of the pipeline. Each attempt gets its own timeout.
func (c *Client) send(ctx context.Context, req *Request) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	hreq, err := newHTTPRequest(ctx, req, c.baseURL)
	if err != nil {
		return nil, err
	}

	hresp, err := c.httpClient.Do(hreq)
	if err != nil {
		return nil, err
	}
	defer hresp.Body.Close()

	body, err := io.ReadAll(hresp.Body)
	if err != nil {
		return nil, err
	}

	return &Response{StatusCode: hresp.StatusCode, Header: hresp.Header, Body: body}, nil
}

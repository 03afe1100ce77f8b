package transport

import (
	"context"
	"time"

	"github.com/dmitrijs2005/examhub/internal/client/credentials"
	"github.com/dmitrijs2005/examhub/internal/common"
	"github.com/dmitrijs2005/examhub/internal/logging"
	"github.com/google/uuid"
)

// Invoker sends a request further down the pipeline.
type Invoker func(ctx context.Context, req *Request) (*Response, error)

// Interceptor wraps an Invoker. It may change req before calling next,
// inspect the response after, or short-circuit by not calling next.
type Interceptor func(ctx context.Context, req *Request, next Invoker) (*Response, error)

// chain builds an Invoker that runs interceptors in list order and ends
// in final.
func chain(interceptors []Interceptor, final Invoker) Invoker {
	invoker := final
	for i := len(interceptors) - 1; i >= 0; i-- {
		ic, next := interceptors[i], invoker
		invoker = func(ctx context.Context, req *Request) (*Response, error) {
			return ic(ctx, req, next)
		}
	}
	return invoker
}

// RequestIDInterceptor puts the request id on the X-Request-ID header,
// generating one when the request has none.
func RequestIDInterceptor() Interceptor {
	return func(ctx context.Context, req *Request, next Invoker) (*Response, error) {
		if req.ID == "" {
			req.ID = uuid.NewString()
		}
		if req.Header.Get(common.RequestIDHeaderName) == "" {
			req.Header.Set(common.RequestIDHeaderName, req.ID)
		}
		return next(ctx, req)
	}
}

// CredentialsInterceptor reads the store before every attempt and attaches
// the access token as a bearer credential. A request without a stored
// token goes out unauthenticated. A failing store aborts the request.
func CredentialsInterceptor(store credentials.Store) Interceptor {
	return func(ctx context.Context, req *Request, next Invoker) (*Response, error) {
		if req.Header.Get(common.AuthorizationHeaderName) != "" {
			return next(ctx, req)
		}

		creds, err := store.Get(ctx)
		if err != nil {
			return nil, credentialStoreError(err)
		}
		if creds != nil && creds.AccessToken != "" {
			req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+creds.AccessToken)
		}
		return next(ctx, req)
	}
}

// LoggingInterceptor logs every attempt at debug level. Tokens are masked.
func LoggingInterceptor(log logging.Logger) Interceptor {
	return func(ctx context.Context, req *Request, next Invoker) (*Response, error) {
		start := time.Now()
		auth := "none"
		if h := req.Header.Get(common.AuthorizationHeaderName); h != "" {
			auth = logging.Token(h[min(len(h), len(common.BearerPrefix)):])
		}

		resp, err := next(ctx, req)

		args := []any{
			"method", req.Method,
			"path", req.Path,
			"request_id", req.ID,
			"retried", req.Retried,
			"auth", auth,
			"duration", time.Since(start),
		}
		if err != nil {
			log.Debug(ctx, "request failed", append(args, "error", err)...)
			return nil, err
		}
		log.Debug(ctx, "request completed", append(args, "status", resp.StatusCode)...)
		return resp, nil
	}
}

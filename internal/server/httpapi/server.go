// Package httpapi exposes the development backend over HTTP under /api/v1.
//
// Successful responses are JSON envelopes carrying the payload under
// "data". Failures are rendered as small HTML pages with the error code in
// a <pre> block, the way an Express backend reports unhandled errors.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/examhub/internal/logging"
	"github.com/dmitrijs2005/examhub/internal/server/services"
)

// APIPrefix is the path every route is mounted under.
const APIPrefix = "/api/v1"

const shutdownTimeout = 5 * time.Second

type Server struct {
	address   string
	users     *services.UserService
	content   *services.ContentService
	logger    logging.Logger
	jwtSecret []byte
	handler   http.Handler
}

func NewServer(a string, l logging.Logger, us *services.UserService, cs *services.ContentService, secretKey string) *Server {
	s := &Server{
		address:   a,
		logger:    l.With("module", "http_server"),
		users:     us,
		content:   cs,
		jwtSecret: []byte(secretKey),
	}
	s.handler = s.routes()
	return s
}

// Handler returns the router, for use with httptest or a custom server.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, listen net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown failed", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	<-done
	return nil
}

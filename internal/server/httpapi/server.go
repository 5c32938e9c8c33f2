package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/promptdesk/internal/logging"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	address      string
	handler      http.Handler
	logger       logging.Logger
	writeTimeout time.Duration
}

// NewServer wraps handler in an http.Server bound to address. writeTimeout
// must leave room for the slowest chat completion.
func NewServer(address string, handler http.Handler, l logging.Logger, writeTimeout time.Duration) *Server {
	return &Server{
		address:      address,
		handler:      handler,
		logger:       l.With("module", "http_server"),
		writeTimeout: writeTimeout,
	}
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.serve(ctx, listen)
}

func (s *Server) serve(ctx context.Context, listen net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      s.writeTimeout,
		IdleTimeout:       2 * time.Minute,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

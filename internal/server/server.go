package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-rest-lite/internal/logger"
)

// Server serves one handler on one address.
type Server struct {
	addr       string
	httpServer *httpServer
	logger     *logger.Logger
}

// NewServer returns a server for handler listening on addr.
func NewServer(handler http.Handler, addr string, logger *logger.Logger) *Server {
	logger.Debug().Str("addr", addr).Msg("creating new server...")
	return &Server{
		addr:       addr,
		httpServer: newHTTPServer(handler, addr),
		logger:     logger,
	}
}

// RunServer listens on the server address and serves until ctx is done or
// the process receives SIGTERM, SIGINT or SIGQUIT.
func (s *Server) RunServer(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("%w %s: %w", ErrListen, s.addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is RunServer on an already open listener. The listener is closed on
// return.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	ctx, stop := signal.NotifyContext(ctx,
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	served := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", ln.Addr().String()).Msg("launching HTTP server")
		served <- s.httpServer.serve(ln)
	}()

	select {
	case err := <-served:
		// listener failed before any shutdown was requested
		return err
	case <-ctx.Done():
	}

	s.logger.Info().Msg("shutting down HTTP server")
	if err := s.httpServer.shutdown(); err != nil {
		<-served
		return fmt.Errorf("%w: %w", ErrShutdown, err)
	}
	if err := <-served; err != nil {
		return err
	}

	s.logger.Info().Msg("server Shutdown gracefully")
	return nil
}

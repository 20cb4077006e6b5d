// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package restlite

import (
	"context"
	"io"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/MKhiriev/go-rest-lite/internal/gateway"
	httphandler "github.com/MKhiriev/go-rest-lite/internal/handler/http"
	"github.com/MKhiriev/go-rest-lite/internal/logger"
	"github.com/MKhiriev/go-rest-lite/internal/metrics"
	"github.com/MKhiriev/go-rest-lite/internal/proxy"
	"github.com/MKhiriev/go-rest-lite/internal/router"
	"github.com/MKhiriev/go-rest-lite/internal/server"
	"github.com/rs/zerolog"
)

// Server holds the route, guard and forward tables and dispatches requests
// against them. Build one with [New].
type Server struct {
	cfg     Config
	logMode logger.Mode

	logger     *logger.Logger
	ownsLogger bool
	metrics    *metrics.Recorder
	relayer    proxy.Forwarder

	routes       *router.Table[*Controller]
	guards       *router.Table[*guardEntry]
	whitelist    map[string]struct{}
	methodGuards []Predicate
	forwards     *gateway.Table
	fallbacks    map[int]*FallbackAction
	headers      http.Header

	frozen  atomic.Bool
	once    sync.Once
	handler http.Handler
}

// Option customizes a [Server] in [New].
type Option func(*Server)

// WithLogger makes the server log through l instead of building its own
// logger from Config.Logging and Config.LogFile.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Server) {
		s.logger = &logger.Logger{Logger: l}
		s.ownsLogger = false
	}
}

func withForwarder(f proxy.Forwarder) Option {
	return func(s *Server) {
		s.relayer = f
	}
}

// New returns an empty server for cfg. It fails when cfg names an unknown
// logging or gateway match mode, or when the log file cannot be opened.
func New(cfg Config, opts ...Option) (*Server, error) {
	cfg = cfg.withDefaults()

	mode, err := gateway.ParseMatchMode(cfg.GatewayMatch)
	if err != nil {
		return nil, err
	}
	logMode, err := logger.ParseMode(cfg.Logging)
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:       cfg,
		logMode:   logMode,
		metrics:   metrics.NewRecorder(),
		routes:    router.NewTable[*Controller](),
		guards:    router.NewTable[*guardEntry](),
		whitelist: make(map[string]struct{}),
		forwards:  gateway.NewTable(mode),
		fallbacks: make(map[int]*FallbackAction),
		headers:   make(http.Header),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		l, err := logger.New(logger.Options{
			Role: "server",
			Mode: logMode,
			File: cfg.LogFile,
		})
		if err != nil {
			return nil, err
		}
		s.logger = l
		s.ownsLogger = true
	}

	return s, nil
}

// Config returns the effective configuration, defaults applied.
func (s *Server) Config() Config {
	return s.cfg
}

// Frozen reports whether the server stopped accepting registrations.
func (s *Server) Frozen() bool {
	return s.frozen.Load()
}

func (s *Server) ensureOpen() error {
	if s.frozen.Load() {
		return ErrServerFrozen
	}
	return nil
}

func (s *Server) mustBeOpen(what string) {
	if s.frozen.Load() {
		panic("restlite: cannot call " + what + " after the server started")
	}
}

// denialLog returns l when the logging mode records access denials and a
// discarding logger otherwise.
func (s *Server) denialLog(l *logger.Logger) *logger.Logger {
	if !s.logMode.LogsDenials() {
		return logger.Nop()
	}
	return l
}

// SetLogOutput adds w as a log sink next to stdout and the log file. Writes
// to w are serialized.
func (s *Server) SetLogOutput(w io.Writer) error {
	if err := s.ensureOpen(); err != nil {
		return err
	}
	if !s.ownsLogger {
		return ErrExternalLogger
	}

	l, err := logger.New(logger.Options{
		Role:   "server",
		Mode:   s.logMode,
		File:   s.cfg.LogFile,
		Output: w,
	})
	if err != nil {
		return err
	}

	old := s.logger
	s.logger = l
	return old.Close()
}

// SetHeader sets a header on every response, OPTIONS included.
func (s *Server) SetHeader(key, value string) error {
	if err := s.ensureOpen(); err != nil {
		return err
	}
	s.headers.Set(key, value)
	return nil
}

// SetHeaders calls SetHeader for every entry of headers.
func (s *Server) SetHeaders(headers map[string]string) error {
	for k, v := range headers {
		if err := s.SetHeader(k, v); err != nil {
			return err
		}
	}
	return nil
}

// Handler freezes the server and returns its http.Handler: the dispatcher
// behind panic recovery, trace ids, the access log and, when
// Config.MetricsPath is set, the metrics endpoint.
func (s *Server) Handler() http.Handler {
	s.once.Do(func() {
		s.frozen.Store(true)

		if s.relayer == nil {
			timeout := s.cfg.ProxyTimeout
			if timeout < 0 {
				timeout = 0
			}
			s.relayer = proxy.NewRelay(timeout, s.cfg.TempDir, s.logger)
		}

		var metricsHandler http.Handler
		if s.cfg.MetricsPath != "" {
			metricsHandler = s.metrics.Handler()
		}

		s.handler = httphandler.NewHandler(
			http.HandlerFunc(s.dispatch),
			s.cfg.MetricsPath,
			metricsHandler,
			s.logger,
		).Init()
	})
	return s.handler
}

// ServeHTTP lets the server be mounted as an http.Handler. The first call
// freezes it.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Handler().ServeHTTP(w, r)
}

// Serve freezes the server and listens on Config.Addr until ctx is done or
// the process receives SIGINT, SIGTERM or SIGQUIT, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context) error {
	h := s.Handler()

	s.logger.Log().
		Str("service", s.cfg.ServiceName).
		Str("host", s.cfg.Host).
		Int("port", s.cfg.Port).
		Str("logging", string(s.logMode)).
		Msg("server started")

	err := server.NewServer(h, s.cfg.Addr(), s.logger).RunServer(ctx)

	if s.ownsLogger {
		if cerr := s.logger.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

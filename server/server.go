package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bluele/gcache"

	"github.com/theoremus-urban-solutions/transit-arrivals/aggregator"
	"github.com/theoremus-urban-solutions/transit-arrivals/config"
	"github.com/theoremus-urban-solutions/transit-arrivals/formatter"
	"github.com/theoremus-urban-solutions/transit-arrivals/internal"
)

const shutdownTimeout = 10 * time.Second

// ArrivalsService is the query the server exposes.
type ArrivalsService interface {
	GetAllArrivals(ctx context.Context) (*aggregator.Result, error)
}

// Server serves arrivals over HTTP.
type Server struct {
	svc       ArrivalsService
	logger    *internal.Logger
	builder   *formatter.ResponseBuilder
	cache     gcache.Cache
	staticDir string
	port      int
	now       func() time.Time

	httpServer *http.Server
	listener   net.Listener
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(l *internal.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// WithClock replaces time.Now for the health timestamp.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

// New creates a Server. A positive cfg.CacheTTLSeconds keeps a successful
// arrivals payload for that long; zero disables the cache.
func New(cfg config.ServerConfig, svc ArrivalsService, opts ...Option) *Server {
	s := &Server{
		svc:       svc,
		logger:    internal.NewLogger(),
		builder:   formatter.NewResponseBuilder(),
		staticDir: cfg.StaticDir,
		port:      cfg.Port,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if cfg.CacheTTLSeconds > 0 {
		s.cache = gcache.New(1).
			LRU().
			Expiration(time.Duration(cfg.CacheTTLSeconds) * time.Second).
			Build()
	}
	return s
}

// Start listens on the configured port and serves in the background.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	s.listener = ln
	s.httpServer = &http.Server{
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	go func() {
		if err := s.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.logger.Printf("server error: %v", err)
		}
	}()
	s.logger.Printf("server listening on %s", ln.Addr())
	return nil
}

// Addr returns the bound address once Start has succeeded.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Shutdown stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

// HandleGracefulShutdown blocks until SIGINT, SIGTERM or ctx is done, then
// shuts the server down.
func (s *Server) HandleGracefulShutdown(ctx context.Context) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	select {
	case <-sigs:
		s.logger.Printf("shutdown signal received")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		s.logger.Printf("server shutdown error: %v", err)
	} else {
		s.logger.Printf("server shut down successfully")
	}
}

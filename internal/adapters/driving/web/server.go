package web

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/custodia-labs/sitemap/internal/core/ports/driving"
	"github.com/custodia-labs/sitemap/internal/logger"
)

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = ":8888"

// Options configures a Server.
type Options struct {
	// Addr is the listen address. Port 0 picks a free port.
	Addr string

	// Root is the directory read routes serve files from.
	Root string

	// Rate is the sustained request rate per second. Zero disables throttling.
	Rate float64

	// Burst is the token bucket size when throttling.
	Burst int
}

// Server serves sitemap routes over HTTP.
type Server struct {
	mu       sync.Mutex
	opts     Options
	match    driving.MatchService
	limiter  *Limiter
	server   *http.Server
	listener net.Listener
	port     atomic.Int32
	errChan  chan error
}

// NewServer creates a new sitemap HTTP server.
func NewServer(match driving.MatchService, opts Options) *Server {
	if opts.Addr == "" {
		opts.Addr = DefaultAddr
	}
	if opts.Root == "" {
		opts.Root = "."
	}
	return &Server{
		opts:    opts,
		match:   match,
		limiter: NewLimiter(opts.Rate, opts.Burst),
		errChan: make(chan error, 1),
	}
}

// Handler returns the server's HTTP handler with its middleware applied.
func (s *Server) Handler() http.Handler {
	var h http.Handler = &routeHandler{match: s.match, root: s.opts.Root}
	h = s.limiter.Middleware(h)
	h = logRequests(h)
	h = withRequestID(h)
	return h
}

// Start starts listening on the configured address.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.server = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	listener, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.opts.Addr, err)
	}
	s.listener = listener
	if tcpAddr, ok := listener.Addr().(*net.TCPAddr); ok {
		s.port.Store(int32(tcpAddr.Port))
	}

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			select {
			case s.errChan <- err:
			default:
			}
		}
	}()

	logger.Info("Serving sitemap on %s (root %s)", s.URL(), s.opts.Root)
	return nil
}

// Run starts the server and blocks until ctx is cancelled or serving fails.
func (s *Server) Run(ctx context.Context) error {
	if err := s.Start(); err != nil {
		return err
	}
	select {
	case <-ctx.Done():
		return s.Stop()
	case err := <-s.errChan:
		_ = s.Stop()
		return err
	}
}

// Stop shuts down the server, waiting up to five seconds for open requests.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.server.Shutdown(ctx)
	}
	return nil
}

// Err reports a failure of the serve loop started by Start.
func (s *Server) Err() <-chan error {
	return s.errChan
}

// Port returns the port the server is listening on, or 0 before Start.
func (s *Server) Port() int {
	return int(s.port.Load())
}

// URL returns the base URL of the running server.
func (s *Server) URL() string {
	return fmt.Sprintf("http://localhost:%d/", s.Port())
}

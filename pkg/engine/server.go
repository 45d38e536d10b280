// Package engine provides the calcd HTTP service: arithmetic routes over
// two path-supplied integers, plus health and metrics endpoints.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/getcalcd/calcd/pkg/config"
	"github.com/getcalcd/calcd/pkg/logging"
)

// shutdownTimeout is the maximum time Stop waits for in-flight requests.
const shutdownTimeout = 5 * time.Second

// Server is the calcd HTTP server.
type Server struct {
	cfg        *config.Config
	log        *slog.Logger
	handler    *Handler
	httpServer *http.Server
	listener   net.Listener
	mu         sync.RWMutex
	running    bool
	startTime  time.Time
}

// ServerOption is a functional option for configuring a Server.
type ServerOption func(*Server)

// WithLogger sets the operational logger for the server.
func WithLogger(log *slog.Logger) ServerOption {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// NewServer creates a new Server with the given configuration.
// A nil configuration uses defaults.
func NewServer(cfg *config.Config, opts ...ServerOption) *Server {
	if cfg == nil {
		cfg = config.Default()
	}

	s := &Server{
		cfg: cfg,
		log: logging.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.handler = NewHandler()
	s.handler.SetLogger(s.log)

	return s
}

// Handler returns the server's HTTP handler. Useful for driving the routes
// directly in tests without binding a port.
func (s *Server) Handler() *Handler {
	return s.handler
}

// Start binds the listen address and serves HTTP in the background.
// Bind errors (port in use, bad address) are returned synchronously.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("server is already running")
	}

	ln, err := net.Listen("tcp", s.cfg.Addr())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Addr(), err)
	}
	s.listener = ln

	s.httpServer = &http.Server{
		Handler:      s.handler,
		ReadTimeout:  time.Duration(s.cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.cfg.WriteTimeout) * time.Second,
	}

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.log.Error("HTTP server error", "error", err)
		}
	}()

	s.running = true
	s.startTime = time.Now()
	s.log.Info("engine started", "addr", ln.Addr().String())
	return nil
}

// Stop gracefully shuts down the server, draining in-flight requests.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := s.httpServer.Shutdown(ctx)
	s.running = false
	s.log.Info("engine stopped")
	if err != nil {
		return fmt.Errorf("HTTP shutdown: %w", err)
	}
	return nil
}

// IsRunning reports whether the server is currently running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// Uptime returns the server uptime in seconds, or 0 when stopped.
func (s *Server) Uptime() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.running {
		return 0
	}
	return int(time.Since(s.startTime).Seconds())
}

// Port returns the bound listen port, or 0 before Start.
// When configured with port 0 this is the port the kernel assigned.
func (s *Server) Port() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.listener == nil {
		return 0
	}
	addr, ok := s.listener.Addr().(*net.TCPAddr)
	if !ok {
		return 0
	}
	return addr.Port
}

// URL returns a dialable base URL for the running server.
func (s *Server) URL() string {
	host := s.cfg.Host
	if host == "0.0.0.0" || host == "::" || host == "" {
		host = "127.0.0.1"
	}
	return "http://" + net.JoinHostPort(host, strconv.Itoa(s.Port()))
}

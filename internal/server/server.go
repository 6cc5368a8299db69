// Package server exposes the pipeline over HTTP.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"paladin/internal/agent"
	"paladin/internal/logging"
	"paladin/internal/ratelimit"
)

const (
	// ServiceName is reported by /health.
	ServiceName = "paladin-ai"

	// DefaultAddr is the listen address of `paladin serve`.
	DefaultAddr = ":8000"

	maxBodyBytes    = 1 << 20
	shutdownTimeout = 5 * time.Second
)

// TurnRunner runs one full turn. *agent.Pipeline satisfies it.
type TurnRunner interface {
	RunOnce(ctx context.Context, task string) (agent.Result, error)
}

// Server serves /health and /chat. Chat turns are serialized: the
// pipeline never runs two turns at once.
type Server struct {
	runner  TurnRunner
	limiter *ratelimit.Limiter
	mux     *http.ServeMux
	mu      sync.Mutex
}

// Option configures a Server.
type Option func(*Server)

// WithLimiter throttles /chat. A nil limiter admits every request.
func WithLimiter(l *ratelimit.Limiter) Option {
	return func(s *Server) {
		s.limiter = l
	}
}

// New creates a server around runner.
func New(runner TurnRunner, opts ...Option) *Server {
	s := &Server{
		runner: runner,
		mux:    http.NewServeMux(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("POST /chat", s.handleChat)
}

// Handler returns the HTTP handler with CORS applied.
func (s *Server) Handler() http.Handler {
	return withCORS(s.mux)
}

// ListenAndServe listens on addr and serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully. The listener is closed on return.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logging.Info("server listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logging.Info("server shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// runTurn serializes calls into the pipeline.
func (s *Server) runTurn(ctx context.Context, task string) (agent.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runner.RunOnce(ctx, task)
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	gokitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/louisbranch/cgpa/internal/platform/timeouts"
	"github.com/louisbranch/cgpa/internal/session"
)

// Config defines the inputs for the web server.
type Config struct {
	HTTPAddr string
	// Store persists profile snapshots.
	Store session.SnapshotStore
	// ProfileKey signs profile cookies. Empty selects a random per-process key.
	ProfileKey []byte
	// SecureCookies forces the Secure attribute on the profile cookie.
	SecureCookies bool
	// TrustForwardedProto honours X-Forwarded-Proto behind a TLS proxy.
	TrustForwardedProto bool
	Logger              gokitlog.Logger
}

// Server hosts the web HTTP server.
type Server struct {
	httpAddr   string
	httpServer *http.Server
	logger     gokitlog.Logger
}

// NewServer builds a server bound to cfg.HTTPAddr.
func NewServer(cfg Config) (*Server, error) {
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	handler, err := NewHandler(cfg)
	if err != nil {
		return nil, fmt.Errorf("build handler: %w", err)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = gokitlog.NewNopLogger()
	}
	return &Server{
		httpAddr: httpAddr,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
			IdleTimeout:       timeouts.Idle,
		},
		logger: logger,
	}, nil
}

// ListenAndServe runs the HTTP server until the context ends.
//
// On cancellation, it performs a bounded shutdown so in-flight requests
// are drained before hard close.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("web server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	_ = level.Info(s.logger).Log("msg", "web listening", "addr", s.httpAddr)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

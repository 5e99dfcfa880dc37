package service

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	gokitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/louisbranch/cgpa/internal/platform/timeouts"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	defaultHTTPAddr = "localhost:8091"
	mcpPath         = "/mcp"
	healthPath      = "/mcp/health"
)

// HTTPTransport serves the MCP streamable HTTP transport.
type HTTPTransport struct {
	addr         string
	server       *Server
	allowedHosts map[string]struct{}
	logger       gokitlog.Logger
}

// NewHTTPTransport creates an HTTP transport for server. Loopback hosts are
// always accepted; extra hosts widen the allowlist.
func NewHTTPTransport(addr string, server *Server, extraHosts ...string) *HTTPTransport {
	if strings.TrimSpace(addr) == "" {
		addr = defaultHTTPAddr
	}
	allowed := map[string]struct{}{
		"localhost": {},
		"127.0.0.1": {},
		"::1":       {},
	}
	for _, host := range extraHosts {
		host = strings.ToLower(strings.TrimSpace(host))
		if host != "" {
			allowed[host] = struct{}{}
		}
	}
	logger := gokitlog.Logger(gokitlog.NewNopLogger())
	if server != nil && server.logger != nil {
		logger = server.logger
	}
	return &HTTPTransport{
		addr:         addr,
		server:       server,
		allowedHosts: allowed,
		logger:       logger,
	}
}

// Handler returns the HTTP routes of the transport.
func (t *HTTPTransport) Handler() http.Handler {
	streamable := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return t.server.mcpServer
	}, nil)

	mux := http.NewServeMux()
	mux.Handle(mcpPath, streamable)
	mux.HandleFunc(http.MethodGet+" "+healthPath, t.handleHealth)
	return t.requireAllowedHost(mux)
}

// Start serves HTTP until ctx ends, then shuts down within the shared
// timeout.
func (t *HTTPTransport) Start(ctx context.Context) error {
	if t == nil || t.server == nil || t.server.mcpServer == nil {
		return errors.New("MCP server is not configured")
	}
	httpServer := &http.Server{
		Addr:              t.addr,
		Handler:           t.Handler(),
		ReadHeaderTimeout: timeouts.ReadHeader,
		IdleTimeout:       timeouts.Idle,
	}

	listener, err := net.Listen("tcp", t.addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", t.addr, err)
	}
	_ = level.Info(t.logger).Log("msg", "mcp http listening", "addr", listener.Addr().String())

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- httpServer.Serve(listener)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown HTTP server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve HTTP: %w", err)
	}
}

func (t *HTTPTransport) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// requireAllowedHost rejects requests whose Host is not allowlisted, which
// blocks DNS rebinding against a local server.
func (t *HTTPTransport) requireAllowedHost(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !t.hostAllowed(r.Host) {
			_ = level.Warn(t.logger).Log("msg", "mcp host rejected", "host", r.Host)
			http.Error(w, "host not allowed", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (t *HTTPTransport) hostAllowed(hostport string) bool {
	host := strings.TrimSpace(hostport)
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	host = strings.ToLower(strings.Trim(host, "[]"))
	_, ok := t.allowedHosts[host]
	return ok
}

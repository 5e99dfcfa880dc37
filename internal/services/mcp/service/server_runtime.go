package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-kit/log/level"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Run is the service entrypoint for MCP and blocks until context cancellation.
// Stdio serves local assistants; HTTP serves remote clients.
func Run(ctx context.Context, cfg Config) error {
	if cfg.Transport == "" {
		cfg.Transport = TransportStdio
	}

	switch cfg.Transport {
	case TransportStdio:
		server, err := New(cfg.Logger)
		if err != nil {
			return err
		}
		return server.Serve(ctx)
	case TransportHTTP:
		server, err := New(cfg.Logger)
		if err != nil {
			return err
		}
		transport := NewHTTPTransport(cfg.HTTPAddr, server, cfg.AllowedHosts...)
		return transport.Start(ctx)
	default:
		return fmt.Errorf("transport %q is not supported", cfg.Transport)
	}
}

// Serve starts the MCP server on stdio and blocks until it stops or the
// context ends.
func (s *Server) Serve(ctx context.Context) error {
	return s.serveWithTransport(ctx, &mcp.StdioTransport{})
}

// serveWithTransport runs the MCP server over transport. Cancellation is a
// clean exit.
func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return errors.New("MCP server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	_ = level.Info(s.logger).Log("msg", "mcp serving", "transport", fmt.Sprintf("%T", transport))
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		err = nil
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}

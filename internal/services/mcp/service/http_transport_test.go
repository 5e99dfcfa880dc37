package service

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel/trace/noop"
)

func newTestTransport(t *testing.T, extraHosts ...string) *HTTPTransport {
	t.Helper()
	server, err := newServer(nil, noop.NewTracerProvider().Tracer("test"))
	if err != nil {
		t.Fatalf("newServer() = %v", err)
	}
	return NewHTTPTransport("", server, extraHosts...)
}

func TestNewHTTPTransportDefaultsAddress(t *testing.T) {
	transport := newTestTransport(t)
	if transport.addr != defaultHTTPAddr {
		t.Fatalf("addr = %q, want %q", transport.addr, defaultHTTPAddr)
	}
}

func TestHTTPTransportHostAllowlist(t *testing.T) {
	transport := newTestTransport(t, "Grades.Example.com")
	tests := []struct {
		host string
		want bool
	}{
		{host: "localhost:8091", want: true},
		{host: "127.0.0.1", want: true},
		{host: "[::1]:8091", want: true},
		{host: "grades.example.com", want: true},
		{host: "evil.example.com:8091", want: false},
		{host: "", want: false},
	}
	for _, tt := range tests {
		if got := transport.hostAllowed(tt.host); got != tt.want {
			t.Errorf("hostAllowed(%q) = %v, want %v", tt.host, got, tt.want)
		}
	}
}

func TestHTTPTransportRejectsForeignHost(t *testing.T) {
	transport := newTestTransport(t)
	req := httptest.NewRequest(http.MethodGet, healthPath, nil)
	req.Host = "evil.example.com"
	rr := httptest.NewRecorder()
	transport.Handler().ServeHTTP(rr, req)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusForbidden)
	}
}

func TestHTTPTransportHealth(t *testing.T) {
	transport := newTestTransport(t)
	req := httptest.NewRequest(http.MethodGet, healthPath, nil)
	req.Host = "localhost"
	rr := httptest.NewRecorder()
	transport.Handler().ServeHTTP(rr, req)
	if rr.Code != http.StatusOK || rr.Body.String() != "ok" {
		t.Fatalf("health = %d %q", rr.Code, rr.Body.String())
	}
}

func TestHTTPTransportServesStreamableClient(t *testing.T) {
	transport := newTestTransport(t)
	srv := httptest.NewServer(transport.Handler())
	defer srv.Close()

	client := mcp.NewClient(&mcp.Implementation{Name: "client", Version: "v0.0.1"}, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	session, err := client.Connect(ctx, &mcp.StreamableClientTransport{Endpoint: srv.URL + mcpPath}, nil)
	if err != nil {
		t.Fatalf("connect client: %v", err)
	}
	defer session.Close()

	result, err := session.CallTool(ctx, &mcp.CallToolParams{Name: "describe_grade_formula"})
	if err != nil {
		t.Fatalf("call tool: %v", err)
	}
	if result.IsError {
		t.Fatalf("tool returned error: %+v", result.Content)
	}
}

func TestHTTPTransportStartStopsOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := ln.Addr().String()
	_ = ln.Close()

	transport := newTestTransport(t)
	transport.addr = addr
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- transport.Start(ctx)
	}()

	client := &http.Client{Timeout: time.Second}
	deadline := time.Now().Add(5 * time.Second)
	for {
		resp, err := client.Get("http://" + addr + healthPath)
		if err == nil {
			resp.Body.Close()
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("transport never came up: %v", err)
		}
		time.Sleep(20 * time.Millisecond)
	}
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Start() = %v, want nil", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("transport did not stop after cancel")
	}
}

func TestHTTPTransportStartRequiresServer(t *testing.T) {
	transport := NewHTTPTransport("127.0.0.1:0", nil)
	if err := transport.Start(context.Background()); err == nil {
		t.Fatal("expected error for missing server")
	}
}

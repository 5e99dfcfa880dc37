package service

import (
	"fmt"

	gokitlog "github.com/go-kit/log"
	"github.com/louisbranch/cgpa/internal/platform/otel"
	"github.com/louisbranch/cgpa/internal/services/mcp/domain"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel/trace"
)

const (
	serverName    = "CGPA Calculator MCP"
	serverVersion = "0.1.0"

	serverInstructions = "Use calculate_cgpa with IA1, IA2, assignment and SEE marks keyed by subject code. " +
		"Call describe_grade_formula or read " + domain.FormulaResourceURI + " for the weights and denominators."
)

// TransportKind identifies the MCP transport implementation.
type TransportKind string

const (
	// TransportStdio uses standard input/output for MCP.
	TransportStdio TransportKind = "stdio"
	// TransportHTTP serves the streamable HTTP transport.
	TransportHTTP TransportKind = "http"
)

// ParseTransport resolves a transport name. Blank selects stdio.
func ParseTransport(value string) (TransportKind, error) {
	switch TransportKind(value) {
	case "", TransportStdio:
		return TransportStdio, nil
	case TransportHTTP:
		return TransportHTTP, nil
	default:
		return "", fmt.Errorf("transport %q is not supported", value)
	}
}

// Config configures the MCP server.
type Config struct {
	Transport TransportKind
	// HTTPAddr is used by the HTTP transport. Defaults to localhost:8091.
	HTTPAddr string
	// AllowedHosts extends the loopback hosts accepted by the HTTP transport.
	AllowedHosts []string
	Logger       gokitlog.Logger
}

// Server hosts the MCP server.
type Server struct {
	mcpServer *mcp.Server
	logger    gokitlog.Logger
}

// New creates an MCP server with every grade tool and resource registered.
func New(logger gokitlog.Logger) (*Server, error) {
	return newServer(logger, otel.Tracer())
}

func newServer(logger gokitlog.Logger, tracer trace.Tracer) (*Server, error) {
	if logger == nil {
		logger = gokitlog.NewNopLogger()
	}
	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, &mcp.ServerOptions{
		Instructions: serverInstructions,
	})
	for _, module := range newRegistrationModules(tracer) {
		if err := module.register(mcpServer); err != nil {
			return nil, fmt.Errorf("register MCP module %q: %w", module.name, err)
		}
	}
	return &Server{mcpServer: mcpServer, logger: logger}, nil
}

// Package mcp parses MCP command flags and selects stdio or HTTP transport.
package mcp

import (
	"context"
	"flag"
	"os"
	"strings"

	entrypoint "github.com/louisbranch/cgpa/internal/platform/cmd"
	"github.com/louisbranch/cgpa/internal/platform/logging"
	mcpservice "github.com/louisbranch/cgpa/internal/services/mcp/service"
)

// Config holds MCP command configuration.
type Config struct {
	HTTPAddr     string `env:"CGPA_MCP_HTTP_ADDR"     envDefault:"localhost:8091"`
	Transport    string `env:"CGPA_MCP_TRANSPORT"     envDefault:"stdio"`
	AllowedHosts string `env:"CGPA_MCP_ALLOWED_HOSTS"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP server address (for HTTP transport)")
	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "Transport type: stdio or http")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if _, err := mcpservice.ParseTransport(cfg.Transport); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the MCP protocol adapter. Logs go to stderr so stdio stays
// reserved for the protocol.
func Run(ctx context.Context, cfg Config) error {
	logger := logging.New(os.Stderr, entrypoint.ServiceMCP, logging.LevelFromEnv())
	return entrypoint.RunWithTelemetryAndOptions(ctx, entrypoint.ServiceMCP, entrypoint.RunOptions{Logger: logger}, func(ctx context.Context) error {
		transport, err := mcpservice.ParseTransport(cfg.Transport)
		if err != nil {
			return err
		}
		return mcpservice.Run(ctx, mcpservice.Config{
			Transport:    transport,
			HTTPAddr:     cfg.HTTPAddr,
			AllowedHosts: splitHosts(cfg.AllowedHosts),
			Logger:       logger,
		})
	})
}

func splitHosts(value string) []string {
	var hosts []string
	for _, host := range strings.Split(value, ",") {
		if host = strings.TrimSpace(host); host != "" {
			hosts = append(hosts, host)
		}
	}
	return hosts
}

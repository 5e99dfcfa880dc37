package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	mcpcmd "github.com/louisbranch/cgpa/internal/cmd/mcp"
	"github.com/louisbranch/cgpa/internal/platform/config"
)

// main starts the MCP server on stdio or HTTP.
func main() {
	if err := config.LoadDotEnv(); err != nil {
		config.Exitf("load .env: %v", err)
	}
	cfg, err := mcpcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := mcpcmd.Run(ctx, cfg); err != nil {
		config.Exitf("failed to serve MCP: %v", err)
	}
}

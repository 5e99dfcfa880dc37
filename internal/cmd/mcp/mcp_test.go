package mcp

import (
	"bytes"
	"flag"
	"strings"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.HTTPAddr != "localhost:8091" {
		t.Fatalf("expected default http addr, got %q", cfg.HTTPAddr)
	}
	if cfg.Transport != "stdio" {
		t.Fatalf("expected stdio transport, got %q", cfg.Transport)
	}
}

func TestParseConfigOverrides(t *testing.T) {
	t.Setenv("CGPA_MCP_HTTP_ADDR", "env-addr")
	t.Setenv("CGPA_MCP_TRANSPORT", "http")
	t.Setenv("CGPA_MCP_ALLOWED_HOSTS", "grades.example.com")

	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-http-addr", "flag-addr"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.HTTPAddr != "flag-addr" {
		t.Fatalf("expected flag http addr, got %q", cfg.HTTPAddr)
	}
	if cfg.Transport != "http" {
		t.Fatalf("expected env transport, got %q", cfg.Transport)
	}
	if cfg.AllowedHosts != "grades.example.com" {
		t.Fatalf("expected env allowed hosts, got %q", cfg.AllowedHosts)
	}
}

func TestParseConfigRejectsUnknownTransport(t *testing.T) {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	if _, err := ParseConfig(fs, []string{"-transport", "websocket"}); err == nil {
		t.Fatal("expected error for unknown transport")
	}
}

func TestParseConfigBadArgs(t *testing.T) {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	fs.SetOutput(&bytes.Buffer{})
	if _, err := ParseConfig(fs, []string{"-invalid"}); err == nil {
		t.Fatal("expected error for unknown flag")
	}
}

func TestSplitHosts(t *testing.T) {
	got := splitHosts(" a.example.com, ,b.example.com ")
	if strings.Join(got, "|") != "a.example.com|b.example.com" {
		t.Fatalf("splitHosts() = %v", got)
	}
	if splitHosts("") != nil {
		t.Fatal("expected nil for empty value")
	}
}

package otel_test

import (
	"context"
	"testing"

	"github.com/louisbranch/cgpa/internal/platform/otel"
)

func TestConfigActive(t *testing.T) {
	t.Parallel()

	tests := []struct {
		cfg  otel.Config
		want bool
	}{
		{otel.Config{}, false},
		{otel.Config{Endpoint: "http://localhost:4318"}, true},
		{otel.Config{Endpoint: "http://localhost:4318", Enabled: "FALSE"}, false},
		{otel.Config{Endpoint: "  ", Enabled: "true"}, false},
	}
	for _, tt := range tests {
		if got := tt.cfg.Active(); got != tt.want {
			t.Fatalf("%+v.Active() = %v, want %v", tt.cfg, got, tt.want)
		}
	}
}

func TestSetup_NoopWhenEndpointEmpty(t *testing.T) {
	t.Setenv("CGPA_OTEL_ENDPOINT", "")
	t.Setenv("CGPA_OTEL_ENABLED", "")

	shutdown, err := otel.Setup(context.Background(), "test-service")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetup_NoopWhenExplicitlyDisabled(t *testing.T) {
	t.Setenv("CGPA_OTEL_ENDPOINT", "http://localhost:4318")
	t.Setenv("CGPA_OTEL_ENABLED", "false")

	shutdown, err := otel.Setup(context.Background(), "test-service")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := shutdown(ctx); err != nil {
		t.Fatalf("noop shutdown should not error: %v", err)
	}
}

func TestSetupWithConfig_CreatesProvider(t *testing.T) {
	// Non-routable address so no export happens before shutdown.
	shutdown, err := otel.SetupWithConfig(context.Background(), "web", otel.Config{Endpoint: "http://192.0.2.1:4318"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
	if otel.Tracer() == nil {
		t.Fatal("expected tracer")
	}
}

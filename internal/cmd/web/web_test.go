package web

import (
	"bytes"
	"context"
	"flag"
	"path/filepath"
	"testing"

	"github.com/louisbranch/cgpa/internal/platform/logging"
	"github.com/louisbranch/cgpa/internal/session"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("web", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.HTTPAddr != "localhost:8090" {
		t.Fatalf("HTTPAddr = %q, want %q", cfg.HTTPAddr, "localhost:8090")
	}
	if cfg.StorageDriver != "sqlite" {
		t.Fatalf("StorageDriver = %q, want %q", cfg.StorageDriver, "sqlite")
	}
	if cfg.DBPath != "data/cgpa-web.db" {
		t.Fatalf("DBPath = %q, want %q", cfg.DBPath, "data/cgpa-web.db")
	}
	if cfg.SecureCookies || cfg.TrustForwardedProto {
		t.Fatalf("cookie flags = %t/%t, want false", cfg.SecureCookies, cfg.TrustForwardedProto)
	}
}

func TestParseConfigEnvAndFlags(t *testing.T) {
	t.Setenv("CGPA_WEB_HTTP_ADDR", "env-addr")
	t.Setenv("CGPA_WEB_STORAGE_DRIVER", "bolt")
	t.Setenv("CGPA_WEB_PROFILE_KEY", "env-key")
	t.Setenv("CGPA_WEB_SECURE_COOKIES", "true")

	fs := flag.NewFlagSet("web", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-http-addr", "127.0.0.1:9002", "-db-path", "/tmp/cgpa.bolt"})
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.HTTPAddr != "127.0.0.1:9002" {
		t.Fatalf("HTTPAddr = %q, want flag value", cfg.HTTPAddr)
	}
	if cfg.StorageDriver != "bolt" {
		t.Fatalf("StorageDriver = %q, want env value", cfg.StorageDriver)
	}
	if cfg.DBPath != "/tmp/cgpa.bolt" {
		t.Fatalf("DBPath = %q, want flag value", cfg.DBPath)
	}
	if cfg.ProfileKey != "env-key" || !cfg.SecureCookies {
		t.Fatalf("cfg = %+v, want env profile key and secure cookies", cfg)
	}
}

func TestParseConfigRejectsUnknownDriver(t *testing.T) {
	fs := flag.NewFlagSet("web", flag.ContinueOnError)
	if _, err := ParseConfig(fs, []string{"-storage-driver", "postgres"}); err == nil {
		t.Fatal("expected unknown driver error")
	}
}

func TestParseConfigBadArgs(t *testing.T) {
	fs := flag.NewFlagSet("web", flag.ContinueOnError)
	fs.SetOutput(&bytes.Buffer{})
	if _, err := ParseConfig(fs, []string{"-invalid"}); err == nil {
		t.Fatal("expected error for unknown flag")
	}
}

func TestOpenStoreDrivers(t *testing.T) {
	for _, driver := range []string{"sqlite", "bolt"} {
		t.Run(driver, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", "snapshots.db")
			store, err := OpenStore(driver, path)
			if err != nil {
				t.Fatalf("OpenStore(%q) error = %v", driver, err)
			}
			defer store.Close()

			ctx := context.Background()
			if err := store.Save(ctx, "profile-1", session.StorageKey, []byte(`{"cgpa":null}`)); err != nil {
				t.Fatalf("Save() error = %v", err)
			}
			got, found, err := store.Load(ctx, "profile-1", session.StorageKey)
			if err != nil || !found {
				t.Fatalf("Load() = %q, %t, %v", got, found, err)
			}
			if string(got) != `{"cgpa":null}` {
				t.Fatalf("Load() = %q, want saved payload", got)
			}
		})
	}
}

func TestOpenStoreRejectsUnknownDriver(t *testing.T) {
	if _, err := OpenStore("mysql", filepath.Join(t.TempDir(), "x.db")); err == nil {
		t.Fatal("expected unknown driver error")
	}
}

func TestRunStopsWhenContextEnds(t *testing.T) {
	t.Setenv("CGPA_OTEL_ENDPOINT", "")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := run(ctx, Config{
		HTTPAddr:      "127.0.0.1:0",
		StorageDriver: "sqlite",
		DBPath:        filepath.Join(t.TempDir(), "web.db"),
	}, logging.Nop())
	if err != nil {
		t.Fatalf("run() = %v, want nil", err)
	}
}

func TestRunReportsStoreFailure(t *testing.T) {
	t.Setenv("CGPA_OTEL_ENDPOINT", "")
	err := run(context.Background(), Config{
		HTTPAddr:      "127.0.0.1:0",
		StorageDriver: "sqlite",
	}, logging.Nop())
	if err == nil {
		t.Fatal("expected error for missing db path")
	}
}

// Package web parses web command flags and composes the calculator server.
package web

import (
	"context"
	"flag"
	"fmt"
	"os"

	gokitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	entrypoint "github.com/louisbranch/cgpa/internal/platform/cmd"
	"github.com/louisbranch/cgpa/internal/platform/logging"
	"github.com/louisbranch/cgpa/internal/services/web"
	"github.com/louisbranch/cgpa/internal/session/storage"
	boltstore "github.com/louisbranch/cgpa/internal/session/storage/bolt"
	sqlitestore "github.com/louisbranch/cgpa/internal/session/storage/sqlite"
)

// Config holds web command configuration.
type Config struct {
	HTTPAddr            string `env:"CGPA_WEB_HTTP_ADDR"             envDefault:"localhost:8090"`
	StorageDriver       string `env:"CGPA_WEB_STORAGE_DRIVER"        envDefault:"sqlite"`
	DBPath              string `env:"CGPA_WEB_DB_PATH"               envDefault:"data/cgpa-web.db"`
	ProfileKey          string `env:"CGPA_WEB_PROFILE_KEY"`
	SecureCookies       bool   `env:"CGPA_WEB_SECURE_COOKIES"        envDefault:"false"`
	TrustForwardedProto bool   `env:"CGPA_WEB_TRUST_FORWARDED_PROTO" envDefault:"false"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.StorageDriver, "storage-driver", cfg.StorageDriver, "snapshot store: sqlite or bolt")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "snapshot database path")
	fs.BoolVar(&cfg.SecureCookies, "secure-cookies", cfg.SecureCookies, "always mark the profile cookie Secure")
	fs.BoolVar(&cfg.TrustForwardedProto, "trust-forwarded-proto", cfg.TrustForwardedProto, "honour X-Forwarded-Proto from a TLS proxy")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if _, err := storage.ParseDriver(cfg.StorageDriver); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run opens the snapshot store and serves the calculator until ctx ends.
func Run(ctx context.Context, cfg Config) error {
	logger := logging.New(os.Stderr, entrypoint.ServiceWeb, logging.LevelFromEnv())
	return run(ctx, cfg, logger)
}

func run(ctx context.Context, cfg Config, logger gokitlog.Logger) error {
	return entrypoint.RunWithTelemetryAndOptions(ctx, entrypoint.ServiceWeb, entrypoint.RunOptions{Logger: logger}, func(ctx context.Context) error {
		store, err := OpenStore(cfg.StorageDriver, cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open snapshot store: %w", err)
		}
		defer func() {
			if err := store.Close(); err != nil {
				_ = level.Warn(logger).Log("msg", "close snapshot store", "err", err)
			}
		}()
		_ = level.Info(logger).Log("msg", "snapshot store ready", "driver", cfg.StorageDriver, "path", cfg.DBPath)
		if cfg.ProfileKey == "" {
			_ = level.Warn(logger).Log("msg", "CGPA_WEB_PROFILE_KEY is empty, profiles reset on restart")
		}

		server, err := web.NewServer(web.Config{
			HTTPAddr:            cfg.HTTPAddr,
			Store:               store,
			ProfileKey:          []byte(cfg.ProfileKey),
			SecureCookies:       cfg.SecureCookies,
			TrustForwardedProto: cfg.TrustForwardedProto,
			Logger:              logger,
		})
		if err != nil {
			return fmt.Errorf("init web server: %w", err)
		}
		if err := server.ListenAndServe(ctx); err != nil {
			return fmt.Errorf("serve web: %w", err)
		}
		return nil
	})
}

// OpenStore opens the snapshot store named by driver at path.
func OpenStore(driver, path string) (storage.Store, error) {
	kind, err := storage.ParseDriver(driver)
	if err != nil {
		return nil, err
	}
	switch kind {
	case storage.DriverBolt:
		store, err := boltstore.Open(path)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		store, err := sqlitestore.Open(path)
		if err != nil {
			return nil, err
		}
		return store, nil
	}
}

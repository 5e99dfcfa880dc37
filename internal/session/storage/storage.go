// Package storage declares persistence for snapshot documents.
//
// A store keeps one opaque payload per (profile, key) pair and never
// interprets it; decoding and fallback rules live in the session package.
package storage

import (
	"context"
	"fmt"
	"strings"
)

// Driver names a snapshot store backend.
type Driver string

const (
	DriverSQLite Driver = "sqlite"
	DriverBolt   Driver = "bolt"
)

// ParseDriver resolves a driver name. Blank input selects SQLite.
func ParseDriver(value string) (Driver, error) {
	switch Driver(strings.ToLower(strings.TrimSpace(value))) {
	case "", DriverSQLite:
		return DriverSQLite, nil
	case DriverBolt, "bbolt":
		return DriverBolt, nil
	default:
		return "", fmt.Errorf("unknown storage driver %q", value)
	}
}

// Store persists snapshot documents.
type Store interface {
	Load(ctx context.Context, profileID, key string) ([]byte, bool, error)
	Save(ctx context.Context, profileID, key string, payload []byte) error
	Close() error
}

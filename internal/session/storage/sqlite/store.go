package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	sqlitemigrate "github.com/louisbranch/cgpa/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/cgpa/internal/session/storage"
	"github.com/louisbranch/cgpa/internal/session/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

var _ storage.Store = (*Store)(nil)

// Store provides SQLite-backed snapshot persistence.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

// Open opens and migrates a snapshot store at path, creating parent
// directories as needed.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}

	dsn := cleanPath + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// One writer at a time; the driver does not wait on a locked file.
	sqlDB.SetMaxOpenConns(1)
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	if _, err := sqlitemigrate.ApplyMigrations(context.Background(), sqlDB, migrations.FS, "."); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB, now: time.Now}, nil
}

// Close releases the underlying SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Load returns the payload stored for profileID and key.
func (s *Store) Load(ctx context.Context, profileID, key string) ([]byte, bool, error) {
	if s == nil || s.sqlDB == nil {
		return nil, false, errors.New("storage is not configured")
	}
	profileID, key, err := normalizeIDs(profileID, key)
	if err != nil {
		return nil, false, err
	}

	var payload []byte
	err = s.sqlDB.QueryRowContext(ctx,
		`SELECT payload_json FROM snapshots WHERE profile_id = ? AND storage_key = ?`,
		profileID, key,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load snapshot: %w", err)
	}
	return payload, true, nil
}

// Save overwrites the payload stored for profileID and key.
func (s *Store) Save(ctx context.Context, profileID, key string, payload []byte) error {
	if s == nil || s.sqlDB == nil {
		return errors.New("storage is not configured")
	}
	profileID, key, err := normalizeIDs(profileID, key)
	if err != nil {
		return err
	}
	if payload == nil {
		payload = []byte{}
	}

	now := s.now().UTC().UnixMilli()
	_, err = s.sqlDB.ExecContext(ctx,
		`INSERT INTO snapshots (profile_id, storage_key, payload_json, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(profile_id, storage_key) DO UPDATE SET
		    payload_json = excluded.payload_json,
		    updated_at = excluded.updated_at`,
		profileID, key, payload, now, now,
	)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func normalizeIDs(profileID, key string) (string, string, error) {
	profileID = strings.TrimSpace(profileID)
	if profileID == "" {
		return "", "", errors.New("profile id is required")
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", "", errors.New("storage key is required")
	}
	return profileID, key, nil
}

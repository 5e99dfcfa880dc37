// Package bolt provides the snapshot store backed by a bbolt file.
//
// Each storage key owns a bucket; profile ids are the record keys inside it.
package bolt

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/cgpa/internal/session/storage"
	bbolt "go.etcd.io/bbolt"
)

var _ storage.Store = (*Store)(nil)

// Store provides bbolt-backed snapshot persistence.
type Store struct {
	db *bbolt.DB
}

// Open opens (or creates) the bbolt file at path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	db, err := bbolt.Open(cleanPath, 0o600, &bbolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt db: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the bbolt file lock.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Load returns the payload stored for profileID and key.
func (s *Store) Load(ctx context.Context, profileID, key string) ([]byte, bool, error) {
	if s == nil || s.db == nil {
		return nil, false, errors.New("storage is not configured")
	}
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	profileID, key, err := normalizeIDs(profileID, key)
	if err != nil {
		return nil, false, err
	}

	var (
		payload []byte
		found   bool
	)
	err = s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(key))
		if bucket == nil {
			return nil
		}
		if value := bucket.Get([]byte(profileID)); value != nil {
			// Values are only valid for the life of the transaction.
			payload = append([]byte{}, value...)
			found = true
		}
		return nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("load snapshot: %w", err)
	}
	return payload, found, nil
}

// Save overwrites the payload stored for profileID and key.
func (s *Store) Save(ctx context.Context, profileID, key string, payload []byte) error {
	if s == nil || s.db == nil {
		return errors.New("storage is not configured")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	profileID, key, err := normalizeIDs(profileID, key)
	if err != nil {
		return err
	}
	err = s.db.Update(func(tx *bbolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists([]byte(key))
		if err != nil {
			return err
		}
		return bucket.Put([]byte(profileID), payload)
	})
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

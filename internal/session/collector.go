package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/louisbranch/cgpa/internal/grade"
)

// ErrUnknownField reports a category or subject outside the fixed form.
var ErrUnknownField = errors.New("unknown mark field")

// SnapshotStore persists one raw snapshot document per profile and key.
type SnapshotStore interface {
	Load(ctx context.Context, profileID, key string) ([]byte, bool, error)
	Save(ctx context.Context, profileID, key string, payload []byte) error
}

// Collector owns the mark fields of one browser profile and keeps the
// persisted snapshot in step with every change.
type Collector struct {
	mu        sync.Mutex
	store     SnapshotStore
	profileID string
	logger    log.Logger
	snapshot  Snapshot
}

// Option configures a Collector.
type Option func(*Collector)

// WithLogger sets the logger used for fallback and persistence messages.
func WithLogger(logger log.Logger) Option {
	return func(c *Collector) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewCollector loads the profile snapshot from store.
//
// Absent or malformed documents start from empty defaults. Only a failing
// store read is returned as an error.
func NewCollector(ctx context.Context, store SnapshotStore, profileID string, opts ...Option) (*Collector, error) {
	if store == nil {
		return nil, errors.New("snapshot store is required")
	}
	profileID = strings.TrimSpace(profileID)
	if profileID == "" {
		return nil, errors.New("profile id is required")
	}
	c := &Collector{
		store:     store,
		profileID: profileID,
		logger:    log.NewNopLogger(),
		snapshot:  DefaultSnapshot(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	payload, found, err := store.Load(ctx, profileID, StorageKey)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	if !found {
		return c, nil
	}
	snapshot, ok := DecodeSnapshot(payload)
	if !ok {
		_ = level.Warn(c.logger).Log("msg", "stored snapshot is malformed, using defaults", "profile_id", profileID, "bytes", len(payload))
	}
	c.snapshot = snapshot
	return c, nil
}

// ProfileID returns the profile this collector belongs to.
func (c *Collector) ProfileID() string {
	return c.profileID
}

// Snapshot returns a copy of the current state.
func (c *Collector) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot.Clone()
}

// Value returns the current text of one field.
func (c *Collector) Value(f Field) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot.Marks().Value(f.Category, f.Subject)
}

// Result returns the last calculated result, if any.
func (c *Collector) Result() (float64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.snapshot.CGPA == nil {
		return 0, false
	}
	return *c.snapshot.CGPA, true
}

// Update stores the digits of text in one field and persists the snapshot.
// It returns the value that was kept.
func (c *Collector) Update(ctx context.Context, f Field, text string) (string, error) {
	return c.UpdateMany(ctx, map[Field]string{f: text})
}

// UpdateMany stores several fields and persists the snapshot once. The kept
// value of the last field in focus order is returned.
func (c *Collector) UpdateMany(ctx context.Context, values map[Field]string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for f := range values {
		if !f.Valid() {
			return "", fmt.Errorf("%w: %s", ErrUnknownField, f.Name())
		}
	}
	marks := c.snapshot.Marks()
	kept := ""
	for _, f := range Fields() {
		text, ok := values[f]
		if !ok {
			continue
		}
		kept = DigitsOnly(text)
		marks.Set(f.Category, f.Subject, kept)
	}
	c.snapshot = FromMarks(marks, c.snapshot.CGPA)
	if err := c.persistLocked(ctx); err != nil {
		return kept, err
	}
	return kept, nil
}

// Submit runs the grade engine over the current fields, records the result
// and persists the snapshot.
func (c *Collector) Submit(ctx context.Context) (float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	result := grade.Calculate(c.snapshot.Marks())
	c.snapshot = FromMarks(c.snapshot.Marks(), &result)
	if err := c.persistLocked(ctx); err != nil {
		return result, err
	}
	_ = level.Debug(c.logger).Log("msg", "grade calculated", "profile_id", c.profileID, "cgpa", grade.FormatResult(result))
	return result, nil
}

func (c *Collector) persistLocked(ctx context.Context) error {
	payload, err := c.snapshot.Encode()
	if err != nil {
		return err
	}
	if err := c.store.Save(ctx, c.profileID, StorageKey, payload); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

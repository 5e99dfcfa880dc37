// Package session holds the mark collector state for one browser profile and
// the persisted snapshot document it reads and writes.
//
// A snapshot is one JSON document stored under StorageKey. It is overwritten
// wholesale on every change and falls back silently to empty defaults when
// absent or malformed.
package session

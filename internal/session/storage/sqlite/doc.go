// Package sqlite provides the snapshot store backed by SQLite.
package sqlite

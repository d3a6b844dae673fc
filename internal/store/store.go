// Package store is the persistent key/value layer. Each collection lives
// under its own key as a single JSON document that is read in full before
// an operation and rewritten in full after it. Drivers exist for memory,
// local files, Redis, and Postgres.
package store

import "context"

// Collection keys. Each key is the sole source of truth for its record set.
const (
	KeyAuth       = "auth"
	KeyUsers      = "users"
	KeyStudents   = "students"
	KeyAttendance = "attendance"
)

// Store reads and writes whole JSON documents by key.
type Store interface {
	// Read unmarshals the document at key into dest. The boolean reports
	// whether the key existed; a missing key is not an error.
	Read(ctx context.Context, key string, dest any) (bool, error)
	// Write marshals value and replaces the document at key.
	Write(ctx context.Context, key string, value any) error
	// Close releases any underlying connections.
	Close() error
}

package storage

import (
	"context"
	"log"
)

// Store is durable key/value byte storage. There is no transactional
// guarantee across keys, and callers must expect every write to fail.
type Store interface {
	// Read returns the bytes stored under key or ErrNotFound
	Read(ctx context.Context, key string) ([]byte, error)

	// Write replaces the bytes stored under key
	Write(ctx context.Context, key string, value []byte) error

	// Remove deletes key; removing an absent key is not an error
	Remove(ctx context.Context, key string) error
}

// FailureHandler receives storage failures that were swallowed instead of returned
type FailureHandler func(op, key string, err error)

// LogFailure is the default FailureHandler
func LogFailure(op, key string, err error) {
	log.Printf("[ERROR] storage %s of %q failed: %v", op, key, err)
}

// Stats provides statistics about store usage
type Stats struct {
	Reads    int64
	Writes   int64
	Removes  int64
	Failures int64
	Keys     int64
	Size     int64
	MaxSize  int64
}

// StatsProvider interface for stores that provide statistics
type StatsProvider interface {
	Stats() Stats
}

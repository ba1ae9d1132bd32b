package storage

import (
	"errors"
	"fmt"
	"regexp"
)

var (
	// ErrNotFound is returned when no value is stored under a key
	ErrNotFound = errors.New("storage key not found")

	// ErrUnavailable is returned when the storage medium cannot be reached
	ErrUnavailable = errors.New("storage unavailable")

	// ErrQuotaExceeded is returned when a write would exceed the store's capacity
	ErrQuotaExceeded = errors.New("storage quota exceeded")

	// ErrInvalidKey is returned for empty keys or keys unusable as file names
	ErrInvalidKey = errors.New("invalid storage key")
)

var keyPattern = regexp.MustCompile(`^[A-Za-z0-9_-][A-Za-z0-9_.-]*$`)

// validateKey rejects keys that cannot be stored safely by every backend
func validateKey(key string) error {
	if !keyPattern.MatchString(key) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}

// unavailable wraps a backend error so callers can match ErrUnavailable
func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrUnavailable, err)
}

package storage

import (
	"context"
	"sync"
	"sync/atomic"
)

// MemoryStore implements an in-process Store with an optional byte quota.
// Unlike a cache it never evicts: a write that does not fit is refused.
type MemoryStore struct {
	mu          sync.RWMutex
	items       map[string][]byte
	quota       int64
	currentSize int64
	unavailable atomic.Bool
	stats       Stats
}

// NewMemoryStore creates a new in-memory store. A quota of zero or less means unlimited.
func NewMemoryStore(quotaBytes int64) *MemoryStore {
	return &MemoryStore{
		items: make(map[string][]byte),
		quota: quotaBytes,
	}
}

// SetUnavailable makes every subsequent operation fail with ErrUnavailable
// until it is called again with false
func (ms *MemoryStore) SetUnavailable(down bool) {
	ms.unavailable.Store(down)
}

// Read returns a copy of the value stored under key
func (ms *MemoryStore) Read(ctx context.Context, key string) ([]byte, error) {
	if err := ms.check(key); err != nil {
		return nil, err
	}
	atomic.AddInt64(&ms.stats.Reads, 1)

	ms.mu.RLock()
	value, exists := ms.items[key]
	ms.mu.RUnlock()

	if !exists {
		return nil, ErrNotFound
	}
	return append([]byte(nil), value...), nil
}

// Write stores a copy of value under key
func (ms *MemoryStore) Write(ctx context.Context, key string, value []byte) error {
	if err := ms.check(key); err != nil {
		return err
	}

	size := int64(len(key) + len(value))

	ms.mu.Lock()
	defer ms.mu.Unlock()

	current := ms.currentSize
	if old, exists := ms.items[key]; exists {
		current -= int64(len(key) + len(old))
	}
	if ms.quota > 0 && current+size > ms.quota {
		atomic.AddInt64(&ms.stats.Failures, 1)
		return ErrQuotaExceeded
	}

	ms.items[key] = append([]byte(nil), value...)
	ms.currentSize = current + size
	atomic.AddInt64(&ms.stats.Writes, 1)
	return nil
}

// Remove deletes key from the store
func (ms *MemoryStore) Remove(ctx context.Context, key string) error {
	if err := ms.check(key); err != nil {
		return err
	}

	ms.mu.Lock()
	if old, exists := ms.items[key]; exists {
		delete(ms.items, key)
		ms.currentSize -= int64(len(key) + len(old))
	}
	ms.mu.Unlock()

	atomic.AddInt64(&ms.stats.Removes, 1)
	return nil
}

// Stats returns store statistics
func (ms *MemoryStore) Stats() Stats {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	return Stats{
		Reads:    atomic.LoadInt64(&ms.stats.Reads),
		Writes:   atomic.LoadInt64(&ms.stats.Writes),
		Removes:  atomic.LoadInt64(&ms.stats.Removes),
		Failures: atomic.LoadInt64(&ms.stats.Failures),
		Keys:     int64(len(ms.items)),
		Size:     ms.currentSize,
		MaxSize:  ms.quota,
	}
}

func (ms *MemoryStore) check(key string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if ms.unavailable.Load() {
		atomic.AddInt64(&ms.stats.Failures, 1)
		return ErrUnavailable
	}
	return nil
}

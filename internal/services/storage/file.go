package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gofrs/flock"
)

const (
	entryExt     = ".entry"
	lockFileName = ".lock"
)

// FileStore keeps one file per key inside a directory. Writes go through a
// temporary file and a rename so a reader never sees a partial value. A
// lock file guards the directory against other processes.
type FileStore struct {
	dir   string
	quota int64
	mu    sync.RWMutex
	lock  *flock.Flock
}

// NewFileStore creates the directory if needed and returns a store rooted at it.
// A quota of zero or less means unlimited.
func NewFileStore(dir string, quotaBytes int64) (*FileStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("file store directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, unavailable("create directory", err)
	}

	return &FileStore{
		dir:   dir,
		quota: quotaBytes,
		lock:  flock.New(filepath.Join(dir, lockFileName)),
	}, nil
}

// Dir returns the directory backing the store
func (fs *FileStore) Dir() string {
	return fs.dir
}

// Read returns the contents of the file for key
func (fs *FileStore) Read(ctx context.Context, key string) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	fs.mu.RLock()
	defer fs.mu.RUnlock()

	if err := fs.lock.RLock(); err != nil {
		return nil, unavailable("lock", err)
	}
	defer func() { _ = fs.lock.Unlock() }()

	data, err := os.ReadFile(fs.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, unavailable("read", err)
	}
	return data, nil
}

// Write atomically replaces the file for key
func (fs *FileStore) Write(ctx context.Context, key string, value []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	if err := fs.lock.Lock(); err != nil {
		return unavailable("lock", err)
	}
	defer func() { _ = fs.lock.Unlock() }()

	if fs.quota > 0 {
		used, err := fs.usage(key)
		if err != nil {
			return unavailable("stat", err)
		}
		if used+int64(len(value)) > fs.quota {
			return ErrQuotaExceeded
		}
	}

	tmp, err := os.CreateTemp(fs.dir, "."+key+".tmp-*")
	if err != nil {
		return unavailable("write", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		return unavailable("write", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return unavailable("sync", err)
	}
	if err := tmp.Close(); err != nil {
		return unavailable("write", err)
	}
	if err := os.Rename(tmpName, fs.path(key)); err != nil {
		return unavailable("rename", err)
	}
	return nil
}

// Remove deletes the file for key
func (fs *FileStore) Remove(ctx context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	if err := fs.lock.Lock(); err != nil {
		return unavailable("lock", err)
	}
	defer func() { _ = fs.lock.Unlock() }()

	if err := os.Remove(fs.path(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return unavailable("remove", err)
	}
	return nil
}

// Stats returns the number of keys and bytes currently stored
func (fs *FileStore) Stats() Stats {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	stats := Stats{MaxSize: fs.quota}
	entries, err := os.ReadDir(fs.dir)
	if err != nil {
		return stats
	}
	for _, e := range entries {
		if !isEntryFile(e) {
			continue
		}
		if info, err := e.Info(); err == nil {
			stats.Keys++
			stats.Size += info.Size()
		}
	}
	return stats
}

func (fs *FileStore) path(key string) string {
	return filepath.Join(fs.dir, key+entryExt)
}

// usage sums the size of every stored value except the one under skip
func (fs *FileStore) usage(skip string) (int64, error) {
	entries, err := os.ReadDir(fs.dir)
	if err != nil {
		return 0, err
	}

	var total int64
	for _, e := range entries {
		if !isEntryFile(e) || e.Name() == skip+entryExt {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		total += info.Size()
	}
	return total, nil
}

func isEntryFile(e os.DirEntry) bool {
	return !e.IsDir() && !strings.HasPrefix(e.Name(), ".") && strings.HasSuffix(e.Name(), entryExt)
}

package storage

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"
)

const defaultFlushInterval = 500 * time.Millisecond

type pendingOp struct {
	value  []byte
	remove bool
	seq    uint64
}

// WriteBehind layers fire-and-forget writes over another Store. The latest
// write or remove per key is held in memory and served to readers until the
// backend accepts it; failed flushes are reported and retried on the next tick.
type WriteBehind struct {
	backend   Store
	interval  time.Duration
	onFailure FailureHandler

	mu      sync.Mutex
	pending map[string]pendingOp
	seq     uint64
	closed  bool

	flushMu  sync.Mutex
	wake     chan struct{}
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// WriteBehindOption is a functional option for configuring a WriteBehind store
type WriteBehindOption func(*WriteBehind)

// WithFlushInterval sets how often failed flushes are retried
func WithFlushInterval(d time.Duration) WriteBehindOption {
	return func(wb *WriteBehind) {
		if d > 0 {
			wb.interval = d
		}
	}
}

// WithFailureHandler sets the handler notified of every failed flush
func WithFailureHandler(h FailureHandler) WriteBehindOption {
	return func(wb *WriteBehind) {
		if h != nil {
			wb.onFailure = h
		}
	}
}

// NewWriteBehind wraps backend and starts the background flush loop
func NewWriteBehind(backend Store, opts ...WriteBehindOption) *WriteBehind {
	wb := &WriteBehind{
		backend:   backend,
		interval:  defaultFlushInterval,
		onFailure: LogFailure,
		pending:   make(map[string]pendingOp),
		wake:      make(chan struct{}, 1),
		stopChan:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(wb)
	}

	wb.wg.Add(1)
	go wb.run()

	return wb
}

// Read serves a pending write or remove before falling back to the backend
func (wb *WriteBehind) Read(ctx context.Context, key string) ([]byte, error) {
	wb.mu.Lock()
	op, ok := wb.pending[key]
	wb.mu.Unlock()

	if ok {
		if op.remove {
			return nil, ErrNotFound
		}
		return append([]byte(nil), op.value...), nil
	}
	return wb.backend.Read(ctx, key)
}

// Write records the value and returns immediately. Only an invalid key is
// reported to the caller; backend failures go to the failure handler.
func (wb *WriteBehind) Write(ctx context.Context, key string, value []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}
	return wb.enqueue(ctx, key, pendingOp{value: append([]byte(nil), value...)})
}

// Remove records the removal and returns immediately
func (wb *WriteBehind) Remove(ctx context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	return wb.enqueue(ctx, key, pendingOp{remove: true})
}

// Pending returns the number of keys not yet accepted by the backend
func (wb *WriteBehind) Pending() int {
	wb.mu.Lock()
	defer wb.mu.Unlock()
	return len(wb.pending)
}

// Backend returns the wrapped store
func (wb *WriteBehind) Backend() Store {
	return wb.backend
}

// Flush pushes every pending operation to the backend and returns the
// failures joined together. Failed operations stay pending.
func (wb *WriteBehind) Flush(ctx context.Context) error {
	return wb.flush(ctx)
}

// Close stops the flush loop after a final flush attempt. Operations after
// Close go straight to the backend.
func (wb *WriteBehind) Close() error {
	wb.mu.Lock()
	wb.closed = true
	wb.mu.Unlock()

	wb.stopOnce.Do(func() {
		close(wb.stopChan)
	})
	wb.wg.Wait()

	wb.mu.Lock()
	remaining := len(wb.pending)
	wb.mu.Unlock()

	if remaining > 0 {
		log.Printf("[WARNING] storage closed with %d unflushed key(s)", remaining)
	}
	return nil
}

func (wb *WriteBehind) enqueue(ctx context.Context, key string, op pendingOp) error {
	wb.mu.Lock()
	if wb.closed {
		wb.mu.Unlock()
		return wb.applyDirect(ctx, key, op)
	}
	wb.seq++
	op.seq = wb.seq
	wb.pending[key] = op
	wb.mu.Unlock()

	select {
	case wb.wake <- struct{}{}:
	default:
	}
	return nil
}

func (wb *WriteBehind) run() {
	defer wb.wg.Done()

	ticker := time.NewTicker(wb.interval)
	defer ticker.Stop()

	for {
		select {
		case <-wb.stopChan:
			_ = wb.flush(context.Background())
			return
		case <-wb.wake:
			_ = wb.flush(context.Background())
		case <-ticker.C:
			if wb.Pending() > 0 {
				_ = wb.flush(context.Background())
			}
		}
	}
}

func (wb *WriteBehind) flush(ctx context.Context) error {
	wb.flushMu.Lock()
	defer wb.flushMu.Unlock()

	wb.mu.Lock()
	batch := make(map[string]pendingOp, len(wb.pending))
	for key, op := range wb.pending {
		batch[key] = op
	}
	wb.mu.Unlock()

	var errs []error
	for key, op := range batch {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		if err := wb.apply(ctx, key, op); err != nil {
			errs = append(errs, err)
			continue
		}

		wb.mu.Lock()
		if current, ok := wb.pending[key]; ok && current.seq == op.seq {
			delete(wb.pending, key)
		}
		wb.mu.Unlock()
	}
	return errors.Join(errs...)
}

// applyDirect writes through after Close. Holding flushMu keeps a
// concurrent flush from replaying an older pending op for key over it.
func (wb *WriteBehind) applyDirect(ctx context.Context, key string, op pendingOp) error {
	wb.flushMu.Lock()
	defer wb.flushMu.Unlock()

	if err := wb.apply(ctx, key, op); err != nil {
		return err
	}
	wb.mu.Lock()
	delete(wb.pending, key)
	wb.mu.Unlock()
	return nil
}

func (wb *WriteBehind) apply(ctx context.Context, key string, op pendingOp) error {
	var err error
	opName := "write"
	if op.remove {
		opName = "remove"
		err = wb.backend.Remove(ctx, key)
	} else {
		err = wb.backend.Write(ctx, key, op.value)
	}
	if err != nil {
		wb.onFailure(opName, key, err)
	}
	return err
}

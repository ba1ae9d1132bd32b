package marathons

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/killallgit/marathon-api/internal/models"
	"github.com/killallgit/marathon-api/internal/services/storage"
	"github.com/stretchr/testify/assert"
)

// fakeClock advances one second on every call
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 1, 2, 3, 4, 5, 123456789, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Second)
	return c.t
}

// stubEnricher fills in runtime, release date and genres. With a release
// channel it blocks until the channel yields or the context ends.
type stubEnricher struct {
	release chan struct{}
	runtime int
	fail    bool
	calls   atomic.Int64
}

func (s *stubEnricher) Enrich(ctx context.Context, partial models.MovieRecord) models.MovieRecord {
	s.calls.Add(1)
	if s.release != nil {
		select {
		case <-s.release:
		case <-ctx.Done():
			return partial
		}
	}
	if s.fail {
		return partial
	}

	out := partial.Clone()
	out.Runtime = s.runtime
	out.ReleaseDate = "1999-03-31"
	out.GenreIDs = []int{28, 878}
	return out
}

type failureLog struct {
	mu      sync.Mutex
	entries []string
}

func (f *failureLog) handle(op, key string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, op+":"+key)
}

func (f *failureLog) all() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.entries...)
}

// stateRecorder collects every state a listener receives
type stateRecorder struct {
	mu     sync.Mutex
	states []models.MarathonState
}

func (r *stateRecorder) listen(s models.MarathonState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, s)
}

func (r *stateRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.states)
}

func (r *stateRecorder) last() models.MarathonState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.states[len(r.states)-1]
}

func sequentialIDs() func() (string, error) {
	var n atomic.Int64
	return func() (string, error) {
		return fmt.Sprintf("marathon-%d", n.Add(1)), nil
	}
}

func completeMovie(id int64, title string) models.MovieRecord {
	return models.MovieRecord{
		ID:          id,
		Title:       title,
		PosterPath:  fmt.Sprintf("/poster-%d.jpg", id),
		VoteAverage: 7.5,
		ReleaseDate: "1980-05-23",
		GenreIDs:    []int{27},
		Overview:    "overview",
		Runtime:     100 + int(id),
		Popularity:  12.5,
	}
}

func partialMovie(id int64, title string) models.MovieRecord {
	return models.MovieRecord{ID: id, Title: title, GenreIDs: []int{}}
}

func newTestEngine(t *testing.T, store storage.Store, opts ...Option) *Engine {
	t.Helper()
	base := []Option{WithClock(newFakeClock().Now), WithIDGenerator(sequentialIDs())}
	engine := NewEngine(context.Background(), store, append(base, opts...)...)
	t.Cleanup(func() { _ = engine.Close() })
	return engine
}

func assertSameMovies(t *testing.T, want, got []models.MovieRecord) {
	t.Helper()
	if !assert.Len(t, got, len(want)) {
		return
	}
	for i := range want {
		assert.True(t, want[i].Equal(got[i]), "movie %d differs: want %+v, got %+v", i, want[i], got[i])
	}
}

func assertSameMarathon(t *testing.T, want, got models.Marathon) {
	t.Helper()
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.Name, got.Name)
	assert.True(t, want.CreatedAt.Equal(got.CreatedAt), "createdAt: want %v, got %v", want.CreatedAt, got.CreatedAt)
	assert.True(t, want.UpdatedAt.Equal(got.UpdatedAt), "updatedAt: want %v, got %v", want.UpdatedAt, got.UpdatedAt)
	assertSameMovies(t, want.Movies, got.Movies)
}

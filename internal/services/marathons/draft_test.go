package marathons

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/killallgit/marathon-api/internal/models"
	"github.com/killallgit/marathon-api/internal/services/catalog"
	"github.com/killallgit/marathon-api/internal/services/enrichment"
	"github.com/killallgit/marathon-api/internal/services/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingLookup struct{}

func (failingLookup) GetMovieDetails(ctx context.Context, movieID int64) (*models.MovieRecord, error) {
	return nil, catalog.ErrLookupFailed
}

func TestDraft_SaveEmptyDraftFails(t *testing.T) {
	engine := newTestEngine(t, storage.NewMemoryStore(0))

	_, err := engine.SaveDraft(context.Background(), "Horror Night")
	assert.ErrorIs(t, err, ErrEmptyDraft)

	list, err := engine.ListMarathons(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestDraft_AddIsIdempotent(t *testing.T) {
	engine := newTestEngine(t, storage.NewMemoryStore(0))
	draft := engine.Draft()

	rec := &stateRecorder{}
	draft.Subscribe(rec.listen)

	assert.True(t, draft.Add(completeMovie(1, "The Shining")))
	assert.False(t, draft.Add(completeMovie(1, "The Shining")))

	assert.Len(t, draft.Movies(), 1)
	assert.Equal(t, 2, rec.count())
}

func TestDraft_AddStampsAddedAt(t *testing.T) {
	clock := newFakeClock()
	draft := newTestEngine(t, storage.NewMemoryStore(0), WithClock(clock.Now)).Draft()

	movie := completeMovie(1, "The Shining")
	movie.AddedAt = time.Unix(0, 0)
	draft.Add(movie)

	got := draft.Movies()[0]
	assert.Equal(t, time.Date(2025, 1, 2, 3, 4, 6, 123456789, time.UTC), got.AddedAt)
}

func TestDraft_SaveClearsDraftAndTrimsName(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore(0)
	engine := newTestEngine(t, store)
	draft := engine.Draft()

	draft.Add(completeMovie(1, "The Shining"))
	draft.Add(completeMovie(2, "Halloween"))
	saved := draft.Movies()

	rec := &stateRecorder{}
	draft.Subscribe(rec.listen)

	id, err := engine.SaveDraft(ctx, "  Horror Night  ")
	require.NoError(t, err)

	assert.Empty(t, draft.Movies())
	assert.Empty(t, rec.last().Movies)
	_, err = store.Read(ctx, DraftKey)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	m, err := engine.GetMarathon(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Horror Night", m.Name)
	assertSameMovies(t, saved, m.Movies)
}

func TestDraft_SaveDuplicateNameLeavesDraft(t *testing.T) {
	ctx := context.Background()
	engine := newTestEngine(t, storage.NewMemoryStore(0))
	draft := engine.Draft()

	draft.Add(completeMovie(1, "The Shining"))
	_, err := engine.SaveDraft(ctx, "Horror Night")
	require.NoError(t, err)

	draft.Add(completeMovie(2, "Halloween"))
	_, err = engine.SaveDraft(ctx, "horror night")
	assert.ErrorIs(t, err, ErrDuplicateName)

	assert.Len(t, draft.Movies(), 1)
	list, err := engine.ListMarathons(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = engine.SaveDraft(ctx, "   ")
	assert.ErrorIs(t, err, ErrEmptyName)
	assert.Len(t, draft.Movies(), 1)
}

func TestDraft_EnrichmentSuccess(t *testing.T) {
	enricher := &stubEnricher{runtime: 120}
	draft := newTestEngine(t, storage.NewMemoryStore(0), WithEnricher(enricher)).Draft()

	rec := &stateRecorder{}
	draft.Subscribe(rec.listen)

	draft.Add(partialMovie(603, "The Matrix"))
	added := draft.Movies()[0]
	draft.Wait()

	got := draft.Movies()
	require.Len(t, got, 1)
	assert.Equal(t, 120, got[0].Runtime)
	assert.Equal(t, []int{28, 878}, got[0].GenreIDs)
	assert.True(t, got[0].AddedAt.Equal(added.AddedAt))

	// initial replay, the partial add, the completed record
	assert.Equal(t, 3, rec.count())
	assert.Equal(t, 120, rec.last().Movies[0].Runtime)
}

func TestDraft_EnrichmentFailureKeepsPartial(t *testing.T) {
	enricher := enrichment.NewEnricher(failingLookup{}, enrichment.WithFailureHandler(func(int64, error) {}))
	draft := newTestEngine(t, storage.NewMemoryStore(0), WithEnricher(enricher)).Draft()

	rec := &stateRecorder{}
	draft.Subscribe(rec.listen)

	draft.Add(partialMovie(603, "The Matrix"))
	draft.Wait()

	got := draft.Movies()
	require.Len(t, got, 1)
	assert.Equal(t, 0, got[0].Runtime)
	assert.Equal(t, "The Matrix", got[0].Title)

	// An unchanged result is not broadcast again
	assert.Equal(t, 2, rec.count())
}

func TestDraft_CompleteRecordSkipsEnrichment(t *testing.T) {
	enricher := &stubEnricher{runtime: 120}
	draft := newTestEngine(t, storage.NewMemoryStore(0), WithEnricher(enricher)).Draft()

	draft.Add(completeMovie(1, "The Shining"))
	draft.Wait()
	assert.Equal(t, int64(0), enricher.calls.Load())
}

func TestDraft_RemoveBeforeEnrichmentResolves(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore(0)
	enricher := &stubEnricher{runtime: 120, release: make(chan struct{})}
	draft := newTestEngine(t, store, WithEnricher(enricher)).Draft()

	rec := &stateRecorder{}
	draft.Subscribe(rec.listen)

	draft.Add(partialMovie(603, "The Matrix"))
	draft.Remove(603)
	close(enricher.release)
	draft.Wait()

	assert.Empty(t, draft.Movies())
	assert.Equal(t, 3, rec.count())
	assert.Empty(t, rec.last().Movies)

	data, err := store.Read(ctx, DraftKey)
	require.NoError(t, err)
	movies, err := decodeDraft(data)
	require.NoError(t, err)
	assert.Empty(t, movies)
}

func TestDraft_CloseCancelsEnrichment(t *testing.T) {
	enricher := &stubEnricher{runtime: 120, release: make(chan struct{})}
	engine := NewEngine(context.Background(), storage.NewMemoryStore(0), WithEnricher(enricher))
	draft := engine.Draft()

	draft.Add(partialMovie(603, "The Matrix"))

	done := make(chan struct{})
	go func() {
		_ = engine.Close()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Close did not return")
	}
	assert.Equal(t, 0, draft.Movies()[0].Runtime)
}

func TestDraft_RemoveClearAndMode(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore(0)
	draft := newTestEngine(t, store).Draft()

	draft.Add(completeMovie(1, "The Shining"))
	draft.Add(completeMovie(2, "Halloween"))

	draft.Remove(99)
	assert.Len(t, draft.Movies(), 2)

	draft.Remove(1)
	require.Len(t, draft.Movies(), 1)
	assert.Equal(t, int64(2), draft.Movies()[0].ID)

	draft.SetMode(true)
	assert.True(t, draft.MarathonMode())
	assert.Len(t, draft.Movies(), 1)

	draft.SetMode(false)
	assert.False(t, draft.MarathonMode())
	assert.Len(t, draft.Movies(), 1)

	draft.Clear()
	assert.Empty(t, draft.Movies())
	_, err := store.Read(ctx, DraftKey)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDraft_ExitMarathonMode(t *testing.T) {
	tests := []struct {
		name       string
		clearDraft bool
		wantMovies int
	}{
		{name: "keep draft", clearDraft: false, wantMovies: 1},
		{name: "clear draft", clearDraft: true, wantMovies: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := newTestEngine(t, storage.NewMemoryStore(0)).Draft()
			draft.Add(completeMovie(1, "The Shining"))
			draft.SetMode(true)

			rec := &stateRecorder{}
			draft.Subscribe(rec.listen)

			draft.ExitMarathonMode(tt.clearDraft)

			state := draft.State()
			assert.False(t, state.MarathonMode)
			assert.Len(t, state.Movies, tt.wantMovies)

			// one transition, one broadcast
			assert.Equal(t, 2, rec.count())
			assert.False(t, rec.last().MarathonMode)
		})
	}
}

func TestDraft_ListenerClearsOnModeOff(t *testing.T) {
	draft := newTestEngine(t, storage.NewMemoryStore(0)).Draft()

	draft.Subscribe(func(s models.MarathonState) {
		if !s.MarathonMode && len(s.Movies) > 0 {
			draft.Clear()
		}
	})
	rec := &stateRecorder{}
	draft.Subscribe(rec.listen)

	draft.SetMode(true)
	draft.Add(completeMovie(1, "The Shining"))

	done := make(chan struct{})
	go func() {
		draft.SetMode(false)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("SetMode(false) did not return while a listener cleared the draft")
	}

	assert.Empty(t, draft.Movies())
	assert.False(t, draft.MarathonMode())

	// initial, mode on, add, mode off, cleared
	require.Equal(t, 5, rec.count())
	rec.mu.Lock()
	modeOff := rec.states[3]
	rec.mu.Unlock()
	assert.False(t, modeOff.MarathonMode)
	assert.Len(t, modeOff.Movies, 1)
	assert.Empty(t, rec.last().Movies)
}

func TestDraft_RehydratesFromStore(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore(0)

	first := newTestEngine(t, store).Draft()
	first.Add(completeMovie(1, "The Shining"))
	first.Add(partialMovie(2, "Halloween"))
	want := first.Movies()

	second := NewDraft(ctx, store, NewRepository(store))
	assertSameMovies(t, want, second.Movies())
	assert.False(t, second.MarathonMode())
}

func TestDraft_RehydrateIgnoresBadData(t *testing.T) {
	ctx := context.Background()

	malformed := storage.NewMemoryStore(0)
	require.NoError(t, malformed.Write(ctx, DraftKey, []byte(`[{"id": "not a number"}]`)))
	assert.Empty(t, NewDraft(ctx, malformed, NewRepository(malformed)).Movies())

	down := storage.NewMemoryStore(0)
	down.SetUnavailable(true)
	draft := NewDraft(ctx, down, NewRepository(down))
	assert.Empty(t, draft.Movies())
	assert.NotNil(t, draft.Movies())
}

func TestDraft_PersistFailureKeepsMemoryState(t *testing.T) {
	store := storage.NewMemoryStore(0)
	failures := &failureLog{}
	draft := newTestEngine(t, store, WithFailureHandler(failures.handle)).Draft()

	store.SetUnavailable(true)
	draft.Add(completeMovie(1, "The Shining"))
	draft.Clear()

	assert.Empty(t, draft.Movies())
	assert.Equal(t, []string{"write:" + DraftKey, "remove:" + DraftKey}, failures.all())

	store.SetUnavailable(false)
	draft.Add(completeMovie(2, "Halloween"))
	assert.Len(t, draft.Movies(), 1)
	assert.Len(t, failures.all(), 2)
}

func TestDraft_SaveRejectedWriteKeepsDraft(t *testing.T) {
	ctx := context.Background()
	engine := newTestEngine(t, storage.NewMemoryStore(64))
	draft := engine.Draft()
	draft.Add(completeMovie(1, "The Shining"))

	id, err := engine.SaveDraft(ctx, "Horror Night")
	assert.ErrorIs(t, err, ErrStorageUnavailable)
	assert.Empty(t, id)
	assert.Len(t, draft.Movies(), 1)

	list, err := engine.ListMarathons(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestDraft_SaveWithUnavailableStorage(t *testing.T) {
	store := storage.NewMemoryStore(0)
	draft := newTestEngine(t, store).Draft()
	draft.Add(completeMovie(1, "The Shining"))

	store.SetUnavailable(true)
	_, err := draft.Save(context.Background(), "Horror Night")
	assert.True(t, errors.Is(err, ErrStorageUnavailable))
	assert.Len(t, draft.Movies(), 1)
}

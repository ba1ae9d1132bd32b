package marathons

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/killallgit/marathon-api/internal/models"
	"github.com/killallgit/marathon-api/internal/services/storage"
)

// Draft is the in-progress marathon. Every mutation is persisted under
// DraftKey and announced to subscribers; the in-memory list stays
// authoritative when persisting fails.
type Draft struct {
	mu     sync.Mutex
	movies []models.MovieRecord
	mode   bool
	seq    uint64

	store       storage.Store
	repo        *Repository
	broadcaster *Broadcaster
	opts        options

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewDraft creates a draft rehydrated from store. A missing or unreadable
// draft starts empty.
func NewDraft(ctx context.Context, store storage.Store, repo *Repository, opts ...Option) *Draft {
	o := buildOptions(opts)
	movies := rehydrate(ctx, store)

	enrichCtx, cancel := context.WithCancel(context.Background())
	return &Draft{
		movies:      movies,
		store:       store,
		repo:        repo,
		broadcaster: NewBroadcaster(models.MarathonState{Movies: movies}),
		opts:        o,
		ctx:         enrichCtx,
		cancel:      cancel,
	}
}

func rehydrate(ctx context.Context, store storage.Store) []models.MovieRecord {
	data, err := store.Read(ctx, DraftKey)
	if errors.Is(err, storage.ErrNotFound) {
		return []models.MovieRecord{}
	}
	if err != nil {
		log.Printf("[ERROR] Failed to load current marathon: %v", err)
		return []models.MovieRecord{}
	}

	movies, err := decodeDraft(data)
	if err != nil {
		log.Printf("[WARNING] Ignoring malformed %s: %v", DraftKey, err)
		return []models.MovieRecord{}
	}
	return movies
}

// Subscribe registers a listener for draft states; it is called at once
// with the current state. Listeners may mutate the draft: the resulting
// state reaches every listener after the current one has been delivered.
func (d *Draft) Subscribe(listener Listener) (unsubscribe func()) {
	return d.broadcaster.Subscribe(listener)
}

// Subscribers returns the number of registered listeners
func (d *Draft) Subscribers() int {
	return d.broadcaster.Subscribers()
}

// Add appends record unless its id is already in the draft and reports
// whether it was added. An incomplete record is added as is and completed
// in the background.
func (d *Draft) Add(record models.MovieRecord) bool {
	d.mu.Lock()
	if models.IndexOfMovie(d.movies, record.ID) >= 0 {
		d.mu.Unlock()
		debugf("Movie already in marathon: %s", record.Title)
		return false
	}

	rec := record.Clone()
	rec.AddedAt = d.opts.now()
	d.movies = append(d.movies, rec)
	d.persistLocked()
	seq, state := d.commitLocked()

	enrich := d.opts.enricher != nil && !rec.IsComplete()
	if enrich {
		d.wg.Add(1)
	}
	d.mu.Unlock()

	d.broadcaster.Publish(seq, state)
	debugf("Movie added to marathon: %s (runtime %d)", rec.Title, rec.Runtime)

	if enrich {
		go d.enrich(rec)
	}
	return true
}

// enrich completes rec and applies the result only if the movie is still
// in the draft when the lookup returns
func (d *Draft) enrich(rec models.MovieRecord) {
	defer d.wg.Done()

	enriched := d.opts.enricher.Enrich(d.ctx, rec)

	d.mu.Lock()
	idx := models.IndexOfMovie(d.movies, rec.ID)
	if idx < 0 {
		d.mu.Unlock()
		debugf("Discarding details for movie %d removed before lookup finished", rec.ID)
		return
	}

	current := d.movies[idx]
	merged := enriched.Clone()
	merged.ID = current.ID
	merged.AddedAt = current.AddedAt
	if merged.Equal(current) {
		d.mu.Unlock()
		return
	}

	d.movies[idx] = merged
	d.persistLocked()
	seq, state := d.commitLocked()
	d.mu.Unlock()

	d.broadcaster.Publish(seq, state)
	debugf("Movie details completed: %s (runtime %d)", merged.Title, merged.Runtime)
}

// Remove drops the movie with the given id; an unknown id is not an error
func (d *Draft) Remove(movieID int64) {
	d.mu.Lock()
	kept := make([]models.MovieRecord, 0, len(d.movies))
	for _, m := range d.movies {
		if m.ID != movieID {
			kept = append(kept, m)
		}
	}
	d.movies = kept
	d.persistLocked()
	seq, state := d.commitLocked()
	d.mu.Unlock()

	d.broadcaster.Publish(seq, state)
	debugf("Movie removed from marathon: %d", movieID)
}

// Clear empties the draft and removes its persisted copy
func (d *Draft) Clear() {
	d.mu.Lock()
	d.clearLocked()
	seq, state := d.commitLocked()
	d.mu.Unlock()

	d.broadcaster.Publish(seq, state)
}

// SetMode switches marathon mode without touching the movies
func (d *Draft) SetMode(active bool) {
	d.mu.Lock()
	d.mode = active
	seq, state := d.commitLocked()
	d.mu.Unlock()

	d.broadcaster.Publish(seq, state)
}

// ExitMarathonMode turns marathon mode off and, when clearDraft is set,
// empties the draft in the same transition
func (d *Draft) ExitMarathonMode(clearDraft bool) {
	d.mu.Lock()
	d.mode = false
	if clearDraft {
		d.clearLocked()
	}
	seq, state := d.commitLocked()
	d.mu.Unlock()

	d.broadcaster.Publish(seq, state)
}

// Save stores the draft as a new marathon named name and clears the draft.
// It returns the new marathon's id.
func (d *Draft) Save(ctx context.Context, name string) (string, error) {
	d.mu.Lock()

	if len(d.movies) == 0 {
		d.mu.Unlock()
		return "", ErrEmptyDraft
	}
	trimmed := models.NormalizeName(name)
	if trimmed == "" {
		d.mu.Unlock()
		return "", ErrEmptyName
	}

	taken, err := d.repo.NameTaken(ctx, trimmed, "")
	if err != nil {
		d.mu.Unlock()
		return "", err
	}
	if taken {
		d.mu.Unlock()
		return "", DuplicateNameError{Name: trimmed}
	}

	m, err := d.repo.Create(ctx, trimmed, d.movies)
	if err != nil {
		d.mu.Unlock()
		return "", err
	}

	d.clearLocked()
	seq, state := d.commitLocked()
	d.mu.Unlock()

	d.broadcaster.Publish(seq, state)
	log.Printf("[INFO] Marathon saved and draft cleared: %s with %d movies", m.Name, len(m.Movies))
	return m.ID, nil
}

// Replace overwrites the draft with movies; the marathon mode is kept
func (d *Draft) Replace(movies []models.MovieRecord) {
	d.mu.Lock()
	d.movies = models.CloneMovies(movies)
	d.persistLocked()
	seq, state := d.commitLocked()
	d.mu.Unlock()

	d.broadcaster.Publish(seq, state)
}

// Movies returns a copy of the draft's movies in order
func (d *Draft) Movies() []models.MovieRecord {
	d.mu.Lock()
	defer d.mu.Unlock()
	return models.CloneMovies(d.movies)
}

// MarathonMode reports whether marathon mode is active
func (d *Draft) MarathonMode() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.mode
}

// State returns a snapshot of the draft
func (d *Draft) State() models.MarathonState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return models.MarathonState{Movies: models.CloneMovies(d.movies), MarathonMode: d.mode}
}

// Wait blocks until every in-flight enrichment has finished
func (d *Draft) Wait() {
	d.wg.Wait()
}

// Close cancels in-flight enrichments and waits for them to return
func (d *Draft) Close() {
	d.cancel()
	d.wg.Wait()
}

func (d *Draft) clearLocked() {
	d.movies = []models.MovieRecord{}
	if err := d.store.Remove(context.Background(), DraftKey); err != nil {
		d.opts.onFailure("remove", DraftKey, err)
	}
}

func (d *Draft) persistLocked() {
	data, err := encodeDraft(d.movies)
	if err != nil {
		d.opts.onFailure("encode", DraftKey, err)
		return
	}
	if err := d.store.Write(context.Background(), DraftKey, data); err != nil {
		d.opts.onFailure("write", DraftKey, err)
	}
}

// commitLocked numbers the new state so late deliveries can be dropped
func (d *Draft) commitLocked() (uint64, models.MarathonState) {
	d.seq++
	return d.seq, models.MarathonState{Movies: models.CloneMovies(d.movies), MarathonMode: d.mode}
}

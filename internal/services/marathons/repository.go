package marathons

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/killallgit/marathon-api/internal/models"
	"github.com/killallgit/marathon-api/internal/services/storage"
)

// Repository owns the collection of saved marathons. Every operation
// re-reads the store, so there is no in-memory copy to drift from it.
type Repository struct {
	mu    sync.Mutex // serializes read-modify-write cycles
	store storage.Store
	opts  options
}

// NewRepository creates a repository persisting to store
func NewRepository(store storage.Store, opts ...Option) *Repository {
	return &Repository{
		store: store,
		opts:  buildOptions(opts),
	}
}

// List returns every saved marathon in insertion order. Unreadable or
// malformed storage is logged and yields an empty list.
func (r *Repository) List(ctx context.Context) ([]models.Marathon, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.read(ctx)
	if err != nil {
		log.Printf("[ERROR] Failed to load saved marathons: %v", err)
		return []models.Marathon{}, nil
	}
	return list, nil
}

// Get returns the marathon with the given id
func (r *Repository) Get(ctx context.Context, id string) (*models.Marathon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.read(ctx)
	if err != nil {
		return nil, err
	}

	idx := indexOf(list, id)
	if idx < 0 {
		return nil, NotFoundError{ID: id}
	}
	m := list[idx].Clone()
	return &m, nil
}

// Load returns a copy of the movies of a saved marathon, AddedAt values preserved
func (r *Repository) Load(ctx context.Context, id string) ([]models.MovieRecord, error) {
	m, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return models.CloneMovies(m.Movies), nil
}

// NameTaken reports whether a marathon other than exceptID already uses name
func (r *Repository) NameTaken(ctx context.Context, name, exceptID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.read(ctx)
	if err != nil {
		return false, err
	}
	return nameTaken(list, name, exceptID), nil
}

// Create builds a marathon with a fresh id and timestamps and adds it
func (r *Repository) Create(ctx context.Context, name string, movies []models.MovieRecord) (*models.Marathon, error) {
	id, err := r.opts.newID()
	if err != nil {
		return nil, fmt.Errorf("generate marathon id: %w", err)
	}

	now := r.opts.now()
	m := models.Marathon{
		ID:        id,
		Name:      name,
		Movies:    models.CloneMovies(movies),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := r.Add(ctx, m); err != nil {
		return nil, err
	}

	m.Name = models.NormalizeName(name)
	return &m, nil
}

// Add appends a marathon. The name is trimmed and must not collide,
// case-insensitively, with any saved marathon.
func (r *Repository) Add(ctx context.Context, m models.Marathon) error {
	m = m.Clone()
	m.Name = models.NormalizeName(m.Name)
	if m.Name == "" {
		return ErrEmptyName
	}
	if id, dup := models.DuplicateMovieID(m.Movies); dup {
		return fmt.Errorf("%w: movie %d", ErrDuplicateMovie, id)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.read(ctx)
	if err != nil {
		return err
	}
	if nameTaken(list, m.Name, "") {
		return DuplicateNameError{Name: m.Name}
	}

	if m.ID == "" {
		if m.ID, err = r.opts.newID(); err != nil {
			return fmt.Errorf("generate marathon id: %w", err)
		}
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = r.opts.now()
	}
	if m.UpdatedAt.IsZero() {
		m.UpdatedAt = m.CreatedAt
	}

	if err := r.write(ctx, append(list, m)); err != nil {
		return err
	}
	debugf("Marathon saved: %s with %d movies", m.Name, len(m.Movies))
	return nil
}

// Update renames a marathon and, when movies is non-nil, replaces its movie
// list with it. CreatedAt is never changed; UpdatedAt always advances.
func (r *Repository) Update(ctx context.Context, id, name string, movies []models.MovieRecord) (*models.Marathon, error) {
	name = models.NormalizeName(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if movieID, dup := models.DuplicateMovieID(movies); dup {
		return nil, fmt.Errorf("%w: movie %d", ErrDuplicateMovie, movieID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.read(ctx)
	if err != nil {
		return nil, err
	}

	idx := indexOf(list, id)
	if idx < 0 {
		return nil, NotFoundError{ID: id}
	}
	if nameTaken(list, name, id) {
		return nil, DuplicateNameError{Name: name}
	}

	m := list[idx].Clone()
	m.Name = name
	if movies != nil {
		m.Movies = models.CloneMovies(movies)
	}
	now := r.opts.now()
	if !now.After(m.UpdatedAt) {
		now = m.UpdatedAt.Add(1)
	}
	m.UpdatedAt = now
	list[idx] = m

	if err := r.write(ctx, list); err != nil {
		return nil, err
	}
	debugf("Marathon updated: %s", m.Name)

	out := m.Clone()
	return &out, nil
}

// Delete removes a marathon. Deleting an unknown id is a no-op.
func (r *Repository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.read(ctx)
	if err != nil {
		return err
	}

	idx := indexOf(list, id)
	if idx < 0 {
		return nil
	}

	if err := r.write(ctx, append(list[:idx], list[idx+1:]...)); err != nil {
		return err
	}
	debugf("Marathon deleted: %s", id)
	return nil
}

// read decodes the stored collection. An absent key is an empty collection,
// malformed bytes are logged and treated as absent, and any other read
// failure is returned as ErrStorageUnavailable.
func (r *Repository) read(ctx context.Context) ([]models.Marathon, error) {
	data, err := r.store.Read(ctx, MarathonsKey)
	if errors.Is(err, storage.ErrNotFound) {
		return []models.Marathon{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	list, err := decodeMarathons(data)
	if err != nil {
		log.Printf("[WARNING] Ignoring malformed %s: %v", MarathonsKey, err)
		return []models.Marathon{}, nil
	}
	return list, nil
}

// write persists the collection. The repository keeps no copy of its own,
// so a rejected write is returned as ErrStorageUnavailable and the caller's
// change is not applied. A write-behind store accepts the write and owns
// any later retry.
func (r *Repository) write(ctx context.Context, list []models.Marathon) error {
	data, err := encodeMarathons(list)
	if err != nil {
		return fmt.Errorf("encode %s: %w", MarathonsKey, err)
	}
	if err := r.store.Write(ctx, MarathonsKey, data); err != nil {
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	return nil
}

func indexOf(list []models.Marathon, id string) int {
	for i, m := range list {
		if m.ID == id {
			return i
		}
	}
	return -1
}

func nameTaken(list []models.Marathon, name, exceptID string) bool {
	for _, m := range list {
		if m.ID != exceptID && models.SameName(m.Name, name) {
			return true
		}
	}
	return false
}

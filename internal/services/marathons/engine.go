package marathons

import (
	"context"

	"github.com/killallgit/marathon-api/internal/models"
	"github.com/killallgit/marathon-api/internal/services/storage"
)

// Engine ties one Repository and one Draft to a store
type Engine struct {
	repo  *Repository
	draft *Draft
}

// NewEngine creates the repository and rehydrates the draft from store
func NewEngine(ctx context.Context, store storage.Store, opts ...Option) *Engine {
	repo := NewRepository(store, opts...)
	return &Engine{
		repo:  repo,
		draft: NewDraft(ctx, store, repo, opts...),
	}
}

// Draft returns the current draft
func (e *Engine) Draft() *Draft {
	return e.draft
}

// Repository returns the saved marathon collection
func (e *Engine) Repository() *Repository {
	return e.repo
}

// SaveDraft saves the draft as a new marathon and returns its id
func (e *Engine) SaveDraft(ctx context.Context, name string) (string, error) {
	return e.draft.Save(ctx, name)
}

// LoadMarathon replaces the draft with the movies of a saved marathon.
// The draft is untouched when the marathon does not exist.
func (e *Engine) LoadMarathon(ctx context.Context, id string) error {
	movies, err := e.repo.Load(ctx, id)
	if err != nil {
		return err
	}
	e.draft.Replace(movies)
	debugf("Marathon loaded into draft: %s", id)
	return nil
}

// UpdateMarathon renames a marathon and optionally replaces its movies
func (e *Engine) UpdateMarathon(ctx context.Context, id, name string, movies []models.MovieRecord) (*models.Marathon, error) {
	return e.repo.Update(ctx, id, name, movies)
}

// DeleteMarathon removes a saved marathon; the draft is not affected
func (e *Engine) DeleteMarathon(ctx context.Context, id string) error {
	return e.repo.Delete(ctx, id)
}

// ListMarathons returns every saved marathon
func (e *Engine) ListMarathons(ctx context.Context) ([]models.Marathon, error) {
	return e.repo.List(ctx)
}

// GetMarathon returns one saved marathon
func (e *Engine) GetMarathon(ctx context.Context, id string) (*models.Marathon, error) {
	return e.repo.Get(ctx, id)
}

// Close stops background enrichment
func (e *Engine) Close() error {
	e.draft.Close()
	return nil
}

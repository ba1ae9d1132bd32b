package enrichment

import (
	"context"
	"log"
	"time"

	"github.com/killallgit/marathon-api/internal/models"
	"github.com/killallgit/marathon-api/internal/services/catalog"
)

const defaultTimeout = 15 * time.Second

// FailureHandler receives lookup failures; the partial record is kept when one occurs
type FailureHandler func(movieID int64, err error)

// Enricher completes partial movie records from the catalog
type Enricher struct {
	lookup    catalog.Lookup
	timeout   time.Duration
	onFailure FailureHandler
}

// Option is a functional option for configuring an Enricher
type Option func(*Enricher)

// WithTimeout bounds each catalog lookup
func WithTimeout(d time.Duration) Option {
	return func(e *Enricher) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// WithFailureHandler sets the handler notified of failed lookups
func WithFailureHandler(h FailureHandler) Option {
	return func(e *Enricher) {
		if h != nil {
			e.onFailure = h
		}
	}
}

// NewEnricher creates an Enricher backed by the given catalog
func NewEnricher(lookup catalog.Lookup, opts ...Option) *Enricher {
	e := &Enricher{
		lookup:  lookup,
		timeout: defaultTimeout,
		onFailure: func(movieID int64, err error) {
			log.Printf("[ERROR] Failed to enrich movie %d: %v", movieID, err)
		},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Enrich returns partial completed with catalog details. Complete records are
// returned unchanged without a lookup, and on failure partial is returned as is.
// The result always keeps partial's id and AddedAt.
func (e *Enricher) Enrich(ctx context.Context, partial models.MovieRecord) models.MovieRecord {
	if partial.IsComplete() || e.lookup == nil {
		return partial
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	details, err := e.lookup.GetMovieDetails(ctx, partial.ID)
	if err != nil {
		e.onFailure(partial.ID, err)
		return partial
	}
	return Merge(partial, *details)
}

// Merge overlays catalog details on a partial record. Empty catalog values
// never erase what the partial record already has.
func Merge(partial, details models.MovieRecord) models.MovieRecord {
	merged := partial.Clone()

	if details.Title != "" {
		merged.Title = details.Title
	}
	if details.PosterPath != "" {
		merged.PosterPath = details.PosterPath
	}
	if details.VoteAverage != 0 {
		merged.VoteAverage = details.VoteAverage
	}
	if details.ReleaseDate != "" {
		merged.ReleaseDate = details.ReleaseDate
	}
	if len(details.GenreIDs) > 0 {
		merged.GenreIDs = append([]int(nil), details.GenreIDs...)
	}
	if details.Overview != "" {
		merged.Overview = details.Overview
	}
	if details.Runtime > 0 {
		merged.Runtime = details.Runtime
	}
	if details.Popularity != 0 {
		merged.Popularity = details.Popularity
	}

	return merged
}

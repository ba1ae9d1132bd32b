package marathons

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/killallgit/marathon-api/internal/models"
	"github.com/killallgit/marathon-api/internal/services/storage"
	"github.com/killallgit/marathon-api/pkg/config"
)

// Enricher completes partial movie records. It never fails: on a lookup
// error the partial record is returned unchanged.
type Enricher interface {
	Enrich(ctx context.Context, partial models.MovieRecord) models.MovieRecord
}

// Listener receives every new draft state
type Listener func(state models.MarathonState)

type options struct {
	enricher  Enricher
	onFailure storage.FailureHandler
	now       func() time.Time
	newID     func() (string, error)
}

// Option is a functional option shared by the Repository, Draft and Engine
type Option func(*options)

// WithEnricher sets the enricher used for incomplete records added to the draft
func WithEnricher(e Enricher) Option {
	return func(o *options) {
		o.enricher = e
	}
}

// WithFailureHandler sets the handler notified of swallowed storage failures
func WithFailureHandler(h storage.FailureHandler) Option {
	return func(o *options) {
		if h != nil {
			o.onFailure = h
		}
	}
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithIDGenerator replaces the UUIDv7 marathon id generator
func WithIDGenerator(gen func() (string, error)) Option {
	return func(o *options) {
		if gen != nil {
			o.newID = gen
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{
		onFailure: storage.LogFailure,
		now:       func() time.Time { return time.Now().UTC() },
		newID:     newMarathonID,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// newMarathonID returns a UUIDv7: a millisecond timestamp prefix followed by random bits
func newMarathonID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

func debugf(format string, args ...any) {
	if config.DebugEnabled() {
		log.Printf("[DEBUG] "+format, args...)
	}
}
